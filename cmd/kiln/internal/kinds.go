package internal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilnpkg/kiln/pkgs/buildsys"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List build-system kinds",
	Long:  `Kinds lists the registered build-system kinds and their phases in order.`,
	RunE:  runKinds,
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}

func runKinds(cmd *cobra.Command, args []string) error {
	for _, name := range buildsys.Names() {
		k, _ := buildsys.Lookup(name)
		fmt.Printf("%-10s %s\n", name, strings.Join(k.PhaseNames(), " "))
	}
	return nil
}
