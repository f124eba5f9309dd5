package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devup-cli/devup/internal/config"
	"github.com/devup-cli/devup/internal/docker"
	"github.com/devup-cli/devup/internal/engine"
	"github.com/devup-cli/devup/internal/resolver"
	"github.com/devup-cli/devup/internal/ui"
	"github.com/devup-cli/devup/pkg/utils"
)

// ============================================================================
// Cobra Command Definition
// ============================================================================

var upCmd = &cobra.Command{
	Use:   "up [dir]",
	Short: "Set up the project's development environment",
	Long: `
Set up a project's development environment from its dev.yml.

Project dependencies declared in the configuration are resolved and set up
first, bottom-up, then the project's own setup steps run in dependency order.`,
	Example: `
devup up                              Set up the project in the current directory
devup up ~/src/api                    Set up a project elsewhere
devup up --yes                        Run without confirmation prompts
devup up --choice database=postgres   Answer a choice step without prompting`,

	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		skipConfirm, _ := cmd.Flags().GetBool("yes")
		choicePairs, _ := cmd.Flags().GetStringArray("choice")

		if err := runUp(dir, skipConfirm, choicePairs); err != nil {
			handleError(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(upCmd)

	upCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompts")
	upCmd.Flags().StringArray("choice", nil, "Pre-specify a choice as name=value (repeatable)")
}

// ============================================================================
// Main Orchestrator
// ============================================================================

// runUp resolves dependencies, then runs one engine per dependency in
// resolution order, then one for the primary project
func runUp(dir string, skipConfirm bool, choicePairs []string) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	choices, err := parseChoices(choicePairs)
	if err != nil {
		return err
	}

	ui.Header(fmt.Sprintf("Setting up %s", projectLabel(cfg, dir)))

	ctx := context.Background()
	opts := engine.Options{SkipConfirm: skipConfirm, Choices: choices}

	// Dependencies are fully set up before the primary project
	deps, err := resolver.NewDefault().ResolveDependencies(ctx, cfg, dir)
	if err != nil {
		return err
	}

	warnIfDockerUnreachable(cfg, deps)

	for _, dep := range deps {
		if dep.Config == nil {
			ui.Info(fmt.Sprintf("Dependency %s has no dev config, nothing to set up", ui.Bold(dep.Name)))
			continue
		}

		ui.EmptyLine()
		ui.Info(fmt.Sprintf("%s Setting up dependency %s", ui.SymbolPackage, ui.Bold(dep.Name)))
		if err := engine.New(dep.Config, dep.Path, opts).Run(ctx); err != nil {
			return utils.Wrap(err, "up.dependency",
				fmt.Sprintf("Setup of dependency '%s' failed", dep.Name))
		}
	}

	ui.EmptyLine()
	if err := engine.New(cfg, dir, opts).Run(ctx); err != nil {
		return err
	}

	ui.EmptyLine()
	ui.SuccessBox(fmt.Sprintf("Development environment ready! %s", ui.SymbolRocket))
	return nil
}

// ============================================================================
// Private Helpers
// ============================================================================

// parseChoices converts repeated name=value flags into a choice map
func parseChoices(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	choices := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" || value == "" {
			return nil, utils.ValidationError("up.choices",
				fmt.Sprintf("Invalid --choice value '%s'", pair),
				"Use the form --choice name=value")
		}
		choices[name] = value
	}
	return choices, nil
}

// projectLabel prefers the configured project name over the directory
func projectLabel(cfg *config.Config, dir string) string {
	if cfg.ProjectName != "" {
		return cfg.ProjectName
	}
	return dir
}

// warnIfDockerUnreachable warns once when the plan contains docker steps but
// no daemon answers. The steps themselves still run and fail on their own
// terms; this only saves the user a surprise mid-run.
func warnIfDockerUnreachable(cfg *config.Config, deps []resolver.ResolvedDependency) {
	if !plansUseDocker(cfg, deps) {
		return
	}
	if docker.DaemonReachable() {
		return
	}
	ui.Warning("This setup contains docker steps but the Docker daemon is not reachable")
	ui.Hint("Start Docker before continuing, or expect those steps to fail")
}

// plansUseDocker reports whether any configuration in the run declares a
// docker or docker-compose step, at any nesting depth
func plansUseDocker(cfg *config.Config, deps []resolver.ResolvedDependency) bool {
	if stepsUseDocker(cfg.SetupSteps) {
		return true
	}
	for _, dep := range deps {
		if dep.Config != nil && stepsUseDocker(dep.Config.SetupSteps) {
			return true
		}
	}
	return false
}

// stepsUseDocker recursively scans a step tree for docker-type steps
func stepsUseDocker(steps []config.SetupStep) bool {
	for _, step := range steps {
		switch step.Type {
		case config.StepDocker, config.StepDockerCompose:
			return true
		case config.StepChoice:
			for _, choice := range step.Choices {
				if stepsUseDocker(choice.Actions) {
					return true
				}
			}
		}
	}
	return false
}

// handleError formats and displays errors with hints
func handleError(err error) {
	if devErr, ok := err.(*utils.DevError); ok {
		ui.ErrorBox(devErr.Message)
		if devErr.Hint != "" {
			ui.Hint(devErr.Hint)
		}
		if len(devErr.Details) > 0 {
			ui.EmptyLine()
			for _, detail := range devErr.Details {
				ui.List(detail)
			}
		}
		if len(devErr.Suggestions) > 0 {
			ui.EmptyLine()
			ui.Info("Valid values:")
			for _, suggestion := range devErr.Suggestions {
				ui.ListItem(ui.SymbolArrow, ui.Highlight(suggestion))
			}
		}
	} else {
		ui.Error(fmt.Sprintf("Error: %v", err))
	}
}
