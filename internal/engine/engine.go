package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/devup-cli/devup/internal/config"
	"github.com/devup-cli/devup/internal/ui"
	"github.com/devup-cli/devup/pkg/utils"
)

// ============================================================================
// Engine - Runs one project's setup plan end to end
// ============================================================================

// postSetupDefaultKey is the pre-specified lookup key for unnamed
// post-setup choice actions
const postSetupDefaultKey = "post-setup"

// Options control non-interactive behavior
type Options struct {
	// SkipConfirm suppresses confirmation prompts; every gated step runs
	SkipConfirm bool

	// Choices maps choice step names to pre-specified values, bypassing
	// interactive selection. Validated upfront against the whole step tree.
	Choices map[string]string
}

// Engine executes a validated configuration's setup steps in dependency
// order, then its post-setup actions. One engine handles one project.
type Engine struct {
	cfg      *config.Config
	dir      string
	opts     Options
	runner   Runner
	prompter ui.Prompter
	opener   Opener
}

// New creates an engine with the default collaborators
func New(cfg *config.Config, dir string, opts Options) *Engine {
	return &Engine{
		cfg:      cfg,
		dir:      dir,
		opts:     opts,
		runner:   NewProcessRunner(),
		prompter: ui.NewTerminalPrompter(),
		opener:   NewDesktopOpener(),
	}
}

// NewWithCollaborators creates an engine with injected collaborators
func NewWithCollaborators(cfg *config.Config, dir string, opts Options, runner Runner, prompter ui.Prompter, opener Opener) *Engine {
	return &Engine{
		cfg:      cfg,
		dir:      dir,
		opts:     opts,
		runner:   runner,
		prompter: prompter,
		opener:   opener,
	}
}

// ============================================================================
// Public API
// ============================================================================

// Run executes the whole plan. Pre-specified choices are validated against
// the entire step tree before any step executes, so a typo in an unattended
// invocation cannot leave partial state behind. A failing external command
// aborts the run; a declined confirmation only skips its step.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.validatePreSpecifiedChoices(); err != nil {
		return err
	}

	ordered, err := OrderSteps(e.cfg.SetupSteps)
	if err != nil {
		return err
	}

	e.bootstrapEnvironment()

	for _, step := range ordered {
		if err := e.executeStep(ctx, step); err != nil {
			return err
		}
	}

	return e.runPostSetup(ctx)
}

// ============================================================================
// Private Methods - Upfront Choice Validation
// ============================================================================

// validatePreSpecifiedChoices walks the entire setup-step tree and the
// post-setup tree, checking every pre-specified value against the legal
// values of the step it targets
func (e *Engine) validatePreSpecifiedChoices() error {
	if len(e.opts.Choices) == 0 {
		return nil
	}

	if err := e.validateChoicesInSteps(e.cfg.SetupSteps); err != nil {
		return err
	}

	for _, action := range e.cfg.PostSetup {
		if action.Type != config.PostChoice {
			continue
		}
		key := postSetupChoiceKey(action)
		if err := e.checkPreSpecified(key, action.Choices); err != nil {
			return err
		}
		if err := e.validateChoicesInBranches(action.Choices); err != nil {
			return err
		}
	}

	return nil
}

// validateChoicesInSteps recurses through a sibling step list
func (e *Engine) validateChoicesInSteps(steps []config.SetupStep) error {
	for _, step := range steps {
		if step.Type != config.StepChoice {
			continue
		}
		if err := e.checkPreSpecified(step.Name, step.Choices); err != nil {
			return err
		}
		if err := e.validateChoicesInBranches(step.Choices); err != nil {
			return err
		}
	}
	return nil
}

// validateChoicesInBranches recurses into every branch, not just the one
// that would be selected, so validation covers the whole tree
func (e *Engine) validateChoicesInBranches(choices []config.Choice) error {
	for _, choice := range choices {
		if err := e.validateChoicesInSteps(choice.Actions); err != nil {
			return err
		}
	}
	return nil
}

// checkPreSpecified verifies one pre-specified value against legal values
func (e *Engine) checkPreSpecified(key string, choices []config.Choice) error {
	value, ok := e.opts.Choices[key]
	if !ok {
		return nil
	}

	legal := make([]string, 0, len(choices))
	for _, choice := range choices {
		if choice.Value == value {
			return nil
		}
		legal = append(legal, choice.Value)
	}

	return utils.ErrInvalidChoice(key, value, legal)
}

// ============================================================================
// Private Methods - Environment Bootstrap
// ============================================================================

// bootstrapEnvironment prepares the project's .env before steps run.
// Problems here are warnings; the plan itself decides what is fatal.
func (e *Engine) bootstrapEnvironment() {
	missing, err := config.BootstrapEnvironment(e.dir, e.cfg.Environment)
	if err != nil {
		ui.Warning(fmt.Sprintf("Environment bootstrap: %v", err))
		return
	}
	for _, name := range missing {
		ui.Warning(fmt.Sprintf("Environment variable %s is not set", name))
	}
}

// ============================================================================
// Private Methods - Step Dispatch
// ============================================================================

// executeStep dispatches a single step by type. Choice branches re-enter
// this dispatch for each of their actions, at any nesting depth.
func (e *Engine) executeStep(ctx context.Context, step config.SetupStep) error {
	switch step.Type {
	case config.StepChoice:
		return e.executeChoice(ctx, step)

	case config.StepPackageManager:
		return e.executePackageManager(ctx, step)

	case config.StepDocker:
		return e.executeConfirmed(ctx, step, "docker", strings.Fields(step.Command)...)

	case config.StepDockerCompose:
		if !hasComposeFile(e.dir) {
			ui.Warning(fmt.Sprintf("Step '%s': no compose file found in %s", step.Name, e.dir))
		}
		args := append([]string{"compose"}, strings.Fields(step.Command)...)
		return e.executeConfirmed(ctx, step, "docker", args...)

	case config.StepShell, config.StepDatabase, config.StepService:
		return e.executeConfirmed(ctx, step, "sh", "-c", step.Command)

	default:
		// Unknown types are skipped, never fatal
		ui.Warning(fmt.Sprintf("Skipping step '%s' with unknown type '%s'", step.Name, step.Type))
		return nil
	}
}

// executePackageManager runs `<manager> <command>` without confirmation;
// installs are treated as safe
func (e *Engine) executePackageManager(ctx context.Context, step config.SetupStep) error {
	manager := step.Manager
	if manager == "" {
		manager = DetectPackageManager(e.dir)
	}

	fmt.Printf("%s %s %s\n", ui.SymbolGear, ui.Bold(step.Name), ui.Dim(manager+" "+step.Command))
	if err := e.runner.Run(ctx, e.dir, manager, strings.Fields(step.Command)...); err != nil {
		return utils.ErrProcessFailed(step.Name, manager+" "+step.Command, err)
	}

	ui.Success(step.Name)
	return nil
}

// executeConfirmed gates a side-effecting command behind confirmation,
// then runs it. A decline is a cooperative skip, not a failure.
func (e *Engine) executeConfirmed(ctx context.Context, step config.SetupStep, name string, args ...string) error {
	if !e.opts.SkipConfirm {
		fmt.Printf("%s %s will run: %s\n", ui.SymbolGear, ui.Bold(step.Name), ui.Code(step.Command))
		confirmed, err := e.prompter.Confirm("Proceed?")
		if err != nil {
			return utils.Wrap(err, "engine.confirm", "Failed to read confirmation")
		}
		if !confirmed {
			ui.Skipped(fmt.Sprintf("Skipped %s", step.Name))
			return nil
		}
	}

	if err := e.runner.Run(ctx, e.dir, name, args...); err != nil {
		return utils.ErrProcessFailed(step.Name, step.Command, err)
	}

	ui.Success(step.Name)
	return nil
}

// ============================================================================
// Private Methods - Choices
// ============================================================================

// executeChoice resolves a choice step to one branch, then executes that
// branch's actions in order through the normal dispatch
func (e *Engine) executeChoice(ctx context.Context, step config.SetupStep) error {
	value, err := e.resolveChoiceValue(step.Name, step.Prompt, step.Choices)
	if err != nil {
		return err
	}

	return e.runBranch(ctx, step.Name, value, step.Choices)
}

// resolveChoiceValue returns the pre-specified value for a key when one was
// supplied (already validated upfront), otherwise prompts the user
func (e *Engine) resolveChoiceValue(key, prompt string, choices []config.Choice) (string, error) {
	if value, ok := e.opts.Choices[key]; ok {
		ui.Info(fmt.Sprintf("Using pre-specified choice for %s: %s", key, value))
		return value, nil
	}

	options := make([]ui.SelectOption, len(choices))
	for i, choice := range choices {
		options[i] = ui.SelectOption{Name: choice.Name, Value: choice.Value}
	}

	value, err := e.prompter.Select(prompt, options)
	if err != nil {
		return "", utils.Wrap(err, "engine.choice", "Failed to read selection")
	}
	return value, nil
}

// runBranch executes the actions of the branch matching value
func (e *Engine) runBranch(ctx context.Context, key, value string, choices []config.Choice) error {
	for _, choice := range choices {
		if choice.Value != value {
			continue
		}
		for _, action := range choice.Actions {
			if err := e.executeStep(ctx, action); err != nil {
				return err
			}
		}
		return nil
	}

	legal := make([]string, len(choices))
	for i, choice := range choices {
		legal[i] = choice.Value
	}
	return utils.ErrInvalidChoice(key, value, legal)
}

// ============================================================================
// Private Methods - Post-Setup
// ============================================================================

// runPostSetup executes post-setup actions in order after all steps succeed
func (e *Engine) runPostSetup(ctx context.Context) error {
	for _, action := range e.cfg.PostSetup {
		switch action.Type {
		case config.PostMessage:
			ui.Info(action.Content)

		case config.PostOpen:
			e.runOpenAction(action)

		case config.PostChoice:
			key := postSetupChoiceKey(action)
			value, err := e.resolveChoiceValue(key, action.Prompt, action.Choices)
			if err != nil {
				return err
			}
			if err := e.runBranch(ctx, key, value, action.Choices); err != nil {
				return err
			}

		default:
			ui.Warning(fmt.Sprintf("Skipping post-setup action with unknown type '%s'", action.Type))
		}
	}

	return nil
}

// runOpenAction opens an editor or URL; launch failures degrade to warnings
func (e *Engine) runOpenAction(action config.PostSetupAction) {
	if action.Target == "editor" {
		path := action.Path
		if path == "" {
			path = e.dir
		}
		if err := e.opener.OpenEditor(path); err != nil {
			ui.Warning(fmt.Sprintf("Could not open editor: %v", err))
		}
		return
	}

	if err := e.opener.OpenURL(action.Target); err != nil {
		ui.Warning(fmt.Sprintf("Could not open %s: %v", action.Target, err))
	}
}

// postSetupChoiceKey returns the pre-specified lookup key for a post-setup
// choice action, defaulting to "post-setup" when the action is unnamed
func postSetupChoiceKey(action config.PostSetupAction) string {
	if action.Name != "" {
		return action.Name
	}
	return postSetupDefaultKey
}
