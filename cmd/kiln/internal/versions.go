package internal

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kilnpkg/kiln/catalog"
	"github.com/kilnpkg/kiln/internal/vcs"
)

var versionsCmd = &cobra.Command{
	Use:   "versions [module]",
	Short: "List released versions of a package",
	Long: `Versions lists the remote tags of the package's source repository as
versions, oldest first, starting at the definition's version floor.`,
	Args: cobra.ExactArgs(1),
	RunE: runVersions,
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	path, _ := parseModuleArg(args[0])
	pkg, ok := catalog.Lookup(path)
	if !ok {
		return fmt.Errorf("no package %s in the catalog", path)
	}
	scheme, err := schemeFor(pkg)
	if err != nil {
		return err
	}

	tags, err := vcs.NewGitVCS().Tags(context.Background(), pkg.SourceRepo())
	if err != nil {
		return fmt.Errorf("failed to list tags for %s: %w", pkg.SourceRepo(), err)
	}

	vers := vcs.Versions(tags)
	sort.Slice(vers, func(i, j int) bool {
		return scheme.Compare(vers[i], vers[j]) < 0
	})

	min := pkg.MinVersion()
	for _, v := range vers {
		if min != "" && scheme.Compare(v, min) < 0 {
			continue
		}
		fmt.Println(v)
	}
	return nil
}
