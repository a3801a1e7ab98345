package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilnpkg/kiln/catalog"
	"github.com/kilnpkg/kiln/formula"
	"github.com/kilnpkg/kiln/pkgs/strategy"
)

var planFlags configFlags

var planCmd = &cobra.Command{
	Use:   "plan [module@version]",
	Short: "Show how a module would be built",
	Long: `Plan resolves the configuration, picks the build system, and prints
the phases that a build would run, without building anything. Without a
version the newest released version is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	planFlags.register(planCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	b, _, err := planFor(&planFlags, args)
	if err != nil {
		return err
	}

	fmt.Println(b.Config)
	fmt.Printf("build system: %s\n", b.Strategy)
	fmt.Println("phases:")
	for _, p := range b.Phases {
		if p.Overridden {
			fmt.Printf("  %s (override)\n", p.Name)
		} else {
			fmt.Printf("  %s\n", p.Name)
		}
	}
	return nil
}

// planFor resolves the flags into a configuration and assembles the
// builder for it.
func planFor(f *configFlags, args []string) (*strategy.Builder, *formula.Package, error) {
	c, explicit, err := f.resolve(args)
	if err != nil {
		return nil, nil, err
	}
	d, err := catalog.Definition(c.Module.Path)
	if err != nil {
		return nil, nil, err
	}
	pkg := d.Package()
	if c.Module.Version == "" {
		v, err := latestVersion(pkg)
		if err != nil {
			return nil, nil, err
		}
		c = withVersion(c, v)
	}
	if err := checkVersion(pkg, c.Module.Version); err != nil {
		return nil, nil, err
	}
	c, err = applyMatrix(c, pkg)
	if err != nil {
		return nil, nil, err
	}
	eval, err := catalog.EvaluatorFor(pkg)
	if err != nil {
		return nil, nil, err
	}
	b, err := d.Plan(eval, c, explicit)
	if err != nil {
		return nil, nil, err
	}
	return b, pkg, nil
}
