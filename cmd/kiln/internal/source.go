package internal

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilnpkg/kiln/catalog"
	"github.com/kilnpkg/kiln/internal/runner"
)

var sourceCmd = &cobra.Command{
	Use:   "source [module@version]",
	Short: "Fetch a module's source checkout",
	Long: `Source fetches the package source for a version into the shared
sources directory and prints the checkout path.`,
	Args: cobra.ExactArgs(1),
	RunE: runSource,
}

func init() {
	rootCmd.AddCommand(sourceCmd)
}

func runSource(cmd *cobra.Command, args []string) error {
	path, version := parseModuleArg(args[0])
	pkg, ok := catalog.Lookup(path)
	if !ok {
		return fmt.Errorf("no package %s in the catalog", path)
	}
	if version == "" {
		var err error
		if version, err = latestVersion(pkg); err != nil {
			return err
		}
	}
	if err := checkVersion(pkg, version); err != nil {
		return err
	}

	dir, err := runner.New().FetchSource(context.Background(), pkg, version)
	if err != nil {
		return err
	}
	fmt.Println(dir)
	return nil
}
