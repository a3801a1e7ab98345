package internal

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilnpkg/kiln/catalog"
	"github.com/kilnpkg/kiln/internal/par"
	"github.com/kilnpkg/kiln/pkgs/conf"
	"github.com/kilnpkg/kiln/pkgs/mod/module"
	"github.com/kilnpkg/kiln/pkgs/strategy"
)

var (
	matrixOS   string
	matrixArch string
	matrixJobs int
)

var matrixCmd = &cobra.Command{
	Use:   "matrix [module@version]",
	Short: "Plan every configuration of a module",
	Long: `Matrix enumerates the package's configuration space and shows the
build system picked for each combination.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatrix,
}

func init() {
	matrixCmd.Flags().StringVar(&matrixOS, "os", runtime.GOOS, "Target operating system for axes the matrix leaves open")
	matrixCmd.Flags().StringVar(&matrixArch, "arch", runtime.GOARCH, "Target architecture for axes the matrix leaves open")
	matrixCmd.Flags().IntVar(&matrixJobs, "jobs", runtime.GOMAXPROCS(0), "Number of configurations to plan in parallel")
	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	path, version := parseModuleArg(args[0])
	d, err := catalog.Definition(path)
	if err != nil {
		return err
	}
	pkg := d.Package()
	if version == "" {
		if version, err = latestVersion(pkg); err != nil {
			return err
		}
	}
	if err := checkVersion(pkg, version); err != nil {
		return err
	}
	eval, err := catalog.EvaluatorFor(pkg)
	if err != nil {
		return err
	}

	assignments := pkg.MatrixSpec().Enumerate()
	if len(assignments) == 0 {
		assignments = []map[string]string{{}}
	}

	// The os and arch axes pick the platform; everything else is a
	// variant.
	confs := make([]conf.Resolved, len(assignments))
	labels := make([]string, len(assignments))
	for i, assignment := range assignments {
		platform := conf.Platform{OS: matrixOS, Arch: matrixArch}
		variants := make(map[string]string, len(assignment))
		keys := make([]string, 0, len(assignment))
		for k := range assignment {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			v := assignment[k]
			switch k {
			case "os":
				platform.OS = v
			case "arch":
				platform.Arch = v
			default:
				variants[k] = v
			}
			parts = append(parts, k+"="+v)
		}
		mod := module.Version{Path: path, Version: version}
		confs[i] = conf.New(mod, platform, variants)
		labels[i] = strings.Join(parts, " ")
		if labels[i] == "" {
			labels[i] = platform.String()
		}
	}

	jobs := matrixJobs
	if jobs < 1 {
		jobs = 1
	}
	builders := make([]*strategy.Builder, len(confs))
	errs := make([]error, len(confs))
	var w par.Work[int]
	for i := range confs {
		w.Add(i)
	}
	w.Do(jobs, func(i int) {
		builders[i], errs[i] = d.Plan(eval, confs[i], "")
	})

	for i := range confs {
		if errs[i] != nil {
			fmt.Printf("%s: %v\n", labels[i], errs[i])
			continue
		}
		fmt.Printf("%s: %s\n", labels[i], builders[i].Strategy)
	}
	return nil
}
