package internal

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilnpkg/kiln/catalog"
)

var infoCmd = &cobra.Command{
	Use:   "info [module]",
	Short: "Show a package definition",
	Long:  `Info prints the declared build systems, overrides, and configuration space of a package.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	path, _ := parseModuleArg(args[0])
	d, err := catalog.Definition(path)
	if err != nil {
		return err
	}
	pkg := d.Package()

	fmt.Printf("path:    %s\n", pkg.Path())
	fmt.Printf("source:  %s\n", pkg.SourceRepo())
	if min := pkg.MinVersion(); min != "" {
		fmt.Printf("from:    %s\n", min)
	}
	if scheme := pkg.Scheme(); scheme != "" {
		fmt.Printf("scheme:  %s\n", scheme)
	}

	m := pkg.MatrixSpec()
	if n := m.CombinationCount(); n > 0 {
		fmt.Printf("matrix:  %d combinations\n", n)
	}
	if len(m.Options) > 0 {
		fmt.Println("variants:")
		defaults := m.Defaults()
		for _, name := range optionNames(m) {
			line := fmt.Sprintf("  %s: %s", name, strings.Join(m.Options[name], " "))
			if def, ok := defaults[name]; ok {
				line += fmt.Sprintf(" (default %s)", def)
			}
			fmt.Println(line)
		}
	}

	fmt.Println("build systems:")
	for _, decl := range d.Strategies() {
		if decl.Condition != "" {
			fmt.Printf("  %s when %s\n", decl.Name, decl.Condition)
		} else {
			fmt.Printf("  %s\n", decl.Name)
		}
	}

	if overrides := d.Overrides(); len(overrides) > 0 {
		fmt.Println("overrides:")
		for _, o := range overrides {
			fmt.Printf("  %s %s\n", o.Strategy, o.Phase)
		}
	}
	return nil
}
