package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilnpkg/kiln/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages in the catalog",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	for _, path := range catalog.Paths() {
		fmt.Println(path)
	}
	return nil
}
