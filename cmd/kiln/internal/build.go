package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/kilnpkg/kiln/internal/runner"
)

var (
	buildFlags   configFlags
	buildVerbose bool
)

var buildCmd = &cobra.Command{
	Use:   "build [module@version]",
	Short: "Build a module for a configuration",
	Long: `Build fetches the module source, runs the selected build system's
phases, and prints the install directory. Finished builds are reused.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildFlags.register(buildCmd)
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Enable verbose build output")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	b, pkg, err := planFor(&buildFlags, args)
	if err != nil {
		return err
	}

	var opts []runner.Option
	if buildVerbose {
		log.SetOutputLevel(log.Ldebug)
	} else {
		opts = append(opts, runner.WithOutput(io.Discard, io.Discard))
	}
	r := runner.New(opts...)

	res, err := r.Run(context.Background(), pkg, b)
	if err != nil {
		return fmt.Errorf("failed to build %s: %w", b.Config.Module, err)
	}

	if res.Cached {
		fmt.Printf("cached %s\n", res.InstallDir)
	} else {
		fmt.Printf("installed %s\n", res.InstallDir)
	}
	printPkgConfigInfo(res.InstallDir)
	return nil
}

// printPkgConfigInfo uses pkg-config to print compile flags for the
// installed package, when it ships .pc files. Best effort only.
func printPkgConfigInfo(installDir string) {
	pkgconfigDir := filepath.Join(installDir, "lib", "pkgconfig")
	entries, err := os.ReadDir(pkgconfigDir)
	if err != nil {
		return
	}

	pkgConfigPath := pkgconfigDir
	if env := os.Getenv("PKG_CONFIG_PATH"); env != "" {
		pkgConfigPath = pkgconfigDir + string(os.PathListSeparator) + env
	}

	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".pc")
		if !ok {
			continue
		}
		cmd := exec.Command("pkg-config", "--libs", "--cflags", name)
		cmd.Env = append(os.Environ(), "PKG_CONFIG_PATH="+pkgConfigPath)
		if out, err := cmd.Output(); err == nil {
			if result := strings.TrimSpace(string(out)); result != "" {
				fmt.Printf("%s: %s\n", name, result)
			}
		}
	}
}
