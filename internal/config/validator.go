package config

import (
	"fmt"

	"github.com/devup-cli/devup/pkg/utils"
)

// validStepTypes is the closed set of step kinds the engine dispatches over
var validStepTypes = map[StepType]bool{
	StepShell:          true,
	StepPackageManager: true,
	StepDockerCompose:  true,
	StepDocker:         true,
	StepDatabase:       true,
	StepService:        true,
	StepChoice:         true,
}

// Validate checks if the config is valid and returns the first violation
// found. It recurses into every choice-action list and post-setup
// choice-action list so deeply nested malformed actions are caught before
// execution. Validation is fail-fast, not exhaustive.
func (c *Config) Validate() error {
	if c.Version == "" {
		return utils.ValidationError("config.validate",
			"version is required", "Set version: \"1\" in your dev.yml")
	}
	if c.Version != SupportedVersion {
		return utils.ErrUnsupportedVersion(c.Version)
	}

	if err := validateStepList(c.SetupSteps, "setup_steps"); err != nil {
		return err
	}

	if err := validateDependencies(c.Dependencies); err != nil {
		return err
	}

	return validatePostSetup(c.PostSetup)
}

// ============================================================================
// Private Helpers - Setup Steps
// ============================================================================

// validateStepList validates one sibling list of steps. Choice branches are
// their own sibling lists, validated recursively with their own scope for
// name uniqueness and depends_on resolution.
func validateStepList(steps []SetupStep, context string) error {
	names := make(map[string]bool, len(steps))
	for _, step := range steps {
		if step.Name == "" {
			return utils.ValidationError("config.validate",
				fmt.Sprintf("%s: step is missing a name", context),
				"Every step needs a unique name")
		}
		if names[step.Name] {
			return utils.ValidationError("config.validate",
				fmt.Sprintf("%s: duplicate step name '%s'", context, step.Name),
				"Step names must be unique among siblings")
		}
		names[step.Name] = true

		if err := validateStep(step, context); err != nil {
			return err
		}
	}

	// depends_on must resolve within the same sibling list
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if !names[dep] {
				return utils.ValidationError("config.validate",
					fmt.Sprintf("%s: step '%s' depends on unknown step '%s'", context, step.Name, dep),
					"depends_on must reference a sibling step name")
			}
		}
	}

	return checkStepCycles(steps)
}

// checkStepCycles rejects depends_on cycles within one sibling list, so a
// config that could never execute fails validation, not execution
func checkStepCycles(steps []SetupStep) error {
	deps := make(map[string][]string, len(steps))
	for _, step := range steps {
		deps[step.Name] = step.DependsOn
	}

	const (
		unvisited = iota
		visiting
		finished
	)
	state := make(map[string]int, len(steps))

	var walk func(name string, path []string) []string
	walk = func(name string, path []string) []string {
		state[name] = visiting
		path = append(path, name)

		for _, dep := range deps[name] {
			if state[dep] == visiting {
				// Trim the path to the looping suffix and close it
				for i, visited := range path {
					if visited == dep {
						return append(path[i:], dep)
					}
				}
			}
			if state[dep] == unvisited {
				if cycle := walk(dep, path); cycle != nil {
					return cycle
				}
			}
		}

		state[name] = finished
		return nil
	}

	for _, step := range steps {
		if state[step.Name] == unvisited {
			if cycle := walk(step.Name, nil); cycle != nil {
				return utils.ErrCircularSteps(cycle)
			}
		}
	}

	return nil
}

// validateStep validates a single step's type-specific fields
func validateStep(step SetupStep, context string) error {
	if !validStepTypes[step.Type] {
		return utils.ValidationError("config.validate",
			fmt.Sprintf("%s: step '%s' has invalid type '%s'", context, step.Name, step.Type),
			"Valid types: shell, package-manager, docker-compose, docker, database, service, choice")
	}

	if step.Type == StepChoice {
		return validateChoiceStep(step, context)
	}

	if step.Command == "" {
		return utils.MissingFieldError("config.validate", step.Name, "command")
	}
	return nil
}

// validateChoiceStep validates a choice step and recurses into each branch
func validateChoiceStep(step SetupStep, context string) error {
	if step.Prompt == "" {
		return utils.MissingFieldError("config.validate", step.Name, "prompt")
	}
	if len(step.Choices) == 0 {
		return utils.ValidationError("config.validate",
			fmt.Sprintf("%s: choice step '%s' has no choices", context, step.Name),
			"A choice step needs at least one choice")
	}

	return validateChoices(step.Choices, fmt.Sprintf("%s.%s", context, step.Name))
}

// validateChoices validates a choice list and each branch's action list
func validateChoices(choices []Choice, context string) error {
	for _, choice := range choices {
		if choice.Name == "" || choice.Value == "" {
			return utils.ValidationError("config.validate",
				fmt.Sprintf("%s: every choice needs a name and a value", context),
				"Add name and value to each choice entry")
		}

		branchContext := fmt.Sprintf("%s[%s]", context, choice.Value)
		if err := validateStepList(choice.Actions, branchContext); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// Private Helpers - Dependencies
// ============================================================================

// validateDependencies checks each project dependency declaration
func validateDependencies(deps []ProjectDependency) error {
	names := make(map[string]bool, len(deps))

	for _, dep := range deps {
		if dep.Name == "" {
			return utils.ValidationError("config.validate",
				"dependencies: entry is missing a name", "Name every dependency")
		}
		// The name decides the checkout directory, so two dependencies
		// sharing one name would clobber each other's clones
		if names[dep.Name] {
			return utils.ValidationError("config.validate",
				fmt.Sprintf("dependencies: duplicate dependency name '%s'", dep.Name),
				"Dependency names must be unique")
		}
		names[dep.Name] = true
		if dep.Repository == "" && dep.Path == "" {
			return utils.ValidationError("config.validate",
				fmt.Sprintf("dependency '%s' needs a repository or a path", dep.Name),
				"Set either repository (remote) or path (local)")
		}
		if dep.Repository != "" && dep.Path != "" {
			return utils.ValidationError("config.validate",
				fmt.Sprintf("dependency '%s' has both a repository and a path", dep.Name),
				"Set only one of repository or path")
		}
		if dep.Branch != "" && dep.Tag != "" {
			return utils.ValidationError("config.validate",
				fmt.Sprintf("dependency '%s' pins both a branch and a tag", dep.Name),
				"Set only one of branch or tag")
		}
	}
	return nil
}

// ============================================================================
// Private Helpers - Post-Setup
// ============================================================================

// validatePostSetup checks post-setup actions, recursing into choice actions
func validatePostSetup(actions []PostSetupAction) error {
	unnamedChoices := 0

	for i, action := range actions {
		context := fmt.Sprintf("post_setup[%d]", i)

		switch action.Type {
		case PostMessage:
			if action.Content == "" {
				return utils.MissingFieldError("config.validate", context, "content")
			}
		case PostOpen:
			if action.Target == "" {
				return utils.MissingFieldError("config.validate", context, "target")
			}
		case PostChoice:
			if action.Prompt == "" {
				return utils.MissingFieldError("config.validate", context, "prompt")
			}
			if len(action.Choices) == 0 {
				return utils.ValidationError("config.validate",
					fmt.Sprintf("%s: choice action has no choices", context),
					"A choice action needs at least one choice")
			}
			if action.Name == "" {
				unnamedChoices++
			}
			if err := validateChoices(action.Choices, context); err != nil {
				return err
			}
		default:
			return utils.ValidationError("config.validate",
				fmt.Sprintf("%s: invalid post-setup type '%s'", context, action.Type),
				"Valid types: message, open, choice")
		}
	}

	// Unnamed choice actions share the "post-setup" override key, so more
	// than one of them would collide
	if unnamedChoices > 1 {
		return utils.ValidationError("config.validate",
			"post_setup has multiple unnamed choice actions",
			"Name each post-setup choice so pre-specified values can target them")
	}

	return nil
}
