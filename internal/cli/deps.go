package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devup-cli/devup/internal/config"
	"github.com/devup-cli/devup/internal/resolver"
	"github.com/devup-cli/devup/internal/ui"
)

var depsCmd = &cobra.Command{
	Use:   "deps [dir]",
	Short: "Resolve and list project dependencies in setup order",
	Long: `
Resolve the project's declared dependencies, including dependencies of
dependencies, and print the order they would be set up in. Remote
dependencies are cloned as part of resolution.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		if err := runDeps(dir); err != nil {
			handleError(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}

// runDeps resolves dependencies and prints the resulting setup order
func runDeps(dir string) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	deps, err := resolver.NewDefault().ResolveDependencies(context.Background(), cfg, dir)
	if err != nil {
		return err
	}

	if len(deps) == 0 {
		ui.Info(fmt.Sprintf("%s declares no dependencies", projectLabel(cfg, dir)))
		return nil
	}

	ui.Header(fmt.Sprintf("Setup order for %s", projectLabel(cfg, dir)))
	for i, dep := range deps {
		detail := dep.Path
		if dep.Config == nil {
			detail += ui.Dim(" (no dev config)")
		}
		ui.ListItem(fmt.Sprintf("%d.", i+1), fmt.Sprintf("%s %s", ui.Bold(dep.Name), ui.Dim(detail)))
	}
	return nil
}
