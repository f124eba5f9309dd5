package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devup-cli/devup/internal/config"
	"github.com/devup-cli/devup/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate a project's dev configuration without running it",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		cfg, err := config.Load(dir)
		if err != nil {
			handleError(err)
			os.Exit(1)
		}

		ui.Success(fmt.Sprintf("Configuration for %s is valid", projectLabel(cfg, dir)))
		ui.Info(fmt.Sprintf("%d setup steps, %d dependencies, %d post-setup actions",
			len(cfg.SetupSteps), len(cfg.Dependencies), len(cfg.PostSetup)))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
