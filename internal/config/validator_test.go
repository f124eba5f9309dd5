package config

import (
	"strings"
	"testing"

	"github.com/devup-cli/devup/pkg/utils"
)

// minimalConfig returns a valid config to mutate in tests
func minimalConfig() *Config {
	return &Config{
		Version:     SupportedVersion,
		ProjectName: "test",
		SetupSteps: []SetupStep{
			{Name: "install", Type: StepShell, Command: "make install"},
		},
	}
}

// TestValidate_ValidConfig tests that a well-formed config passes
func TestValidate_ValidConfig(t *testing.T) {
	if err := minimalConfig().Validate(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

// TestValidate_Version tests version requirements
func TestValidate_Version(t *testing.T) {
	cases := []struct {
		name    string
		version string
		wantErr string
	}{
		{"missing version", "", "version is required"},
		{"unsupported version", "2", "Unsupported configuration version"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := minimalConfig()
			cfg.Version = tc.version

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tc.wantErr, err)
			}
		})
	}
}

// TestValidate_DuplicateStepNames tests sibling name uniqueness
func TestValidate_DuplicateStepNames(t *testing.T) {
	cfg := minimalConfig()
	cfg.SetupSteps = append(cfg.SetupSteps, SetupStep{
		Name: "install", Type: StepShell, Command: "echo again",
	})

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error for duplicate step names")
	}
	if !strings.Contains(err.Error(), "duplicate step name 'install'") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestValidate_UnknownDependsOn tests depends_on scoping
func TestValidate_UnknownDependsOn(t *testing.T) {
	cfg := minimalConfig()
	cfg.SetupSteps[0].DependsOn = []string{"ghost"}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error for an unknown depends_on reference")
	}
	if !strings.Contains(err.Error(), "unknown step 'ghost'") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestValidate_InvalidStepType tests the closed type set
func TestValidate_InvalidStepType(t *testing.T) {
	cfg := minimalConfig()
	cfg.SetupSteps[0].Type = "cron"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error for an invalid step type")
	}
	if !utils.IsValidationError(err) {
		t.Errorf("expected a validation error, got: %v", err)
	}
}

// TestValidate_MissingCommand tests that non-choice steps need a command
func TestValidate_MissingCommand(t *testing.T) {
	for _, stepType := range []StepType{StepShell, StepPackageManager, StepDocker, StepDockerCompose, StepDatabase, StepService} {
		t.Run(string(stepType), func(t *testing.T) {
			cfg := minimalConfig()
			cfg.SetupSteps = []SetupStep{{Name: "bad", Type: stepType}}

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected an error for a missing command")
			}
			if !utils.IsKind(err, utils.ErrorMissingField) {
				t.Errorf("expected a missing-field error, got: %v", err)
			}
		})
	}
}

// TestValidate_ChoiceRequirements tests prompt and choices requirements
func TestValidate_ChoiceRequirements(t *testing.T) {
	t.Run("missing prompt", func(t *testing.T) {
		cfg := minimalConfig()
		cfg.SetupSteps = []SetupStep{{
			Name: "pick", Type: StepChoice,
			Choices: []Choice{{Name: "A", Value: "a"}},
		}}

		err := cfg.Validate()
		if err == nil || !utils.IsKind(err, utils.ErrorMissingField) {
			t.Errorf("expected a missing-field error, got: %v", err)
		}
	})

	t.Run("empty choice list", func(t *testing.T) {
		cfg := minimalConfig()
		cfg.SetupSteps = []SetupStep{{Name: "pick", Type: StepChoice, Prompt: "Pick one"}}

		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "has no choices") {
			t.Errorf("expected an empty-choices error, got: %v", err)
		}
	})

	t.Run("choice without value", func(t *testing.T) {
		cfg := minimalConfig()
		cfg.SetupSteps = []SetupStep{{
			Name: "pick", Type: StepChoice, Prompt: "Pick one",
			Choices: []Choice{{Name: "A"}},
		}}

		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "name and a value") {
			t.Errorf("expected a choice entry error, got: %v", err)
		}
	})
}

// TestValidate_DeeplyNestedAction tests that validation recurses into every
// nesting level of choice actions
func TestValidate_DeeplyNestedAction(t *testing.T) {
	cfg := minimalConfig()
	cfg.SetupSteps = []SetupStep{{
		Name: "outer", Type: StepChoice, Prompt: "Pick",
		Choices: []Choice{{
			Name: "A", Value: "a",
			Actions: []SetupStep{{
				Name: "inner", Type: StepChoice, Prompt: "Pick again",
				Choices: []Choice{{
					Name: "B", Value: "b",
					// Malformed three levels down: shell step with no command
					Actions: []SetupStep{{Name: "broken", Type: StepShell}},
				}},
			}},
		}},
	}}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected the nested malformed action to be caught")
	}
	if !strings.Contains(err.Error(), "'broken'") {
		t.Errorf("expected the error to name the broken step, got: %v", err)
	}
}

// TestValidate_NestedDependsOnScope tests that branch action lists resolve
// depends_on within their own sibling scope
func TestValidate_NestedDependsOnScope(t *testing.T) {
	cfg := minimalConfig()
	cfg.SetupSteps = []SetupStep{
		{Name: "first", Type: StepShell, Command: "true"},
		{
			Name: "pick", Type: StepChoice, Prompt: "Pick",
			Choices: []Choice{{
				Name: "A", Value: "a",
				// "first" is not a sibling inside this branch
				Actions: []SetupStep{{Name: "branch-step", Type: StepShell, Command: "true", DependsOn: []string{"first"}}},
			}},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected cross-scope depends_on to be rejected")
	}
}

// TestValidate_CyclicDependsOn tests that a depends_on cycle fails
// validation, not just execution
func TestValidate_CyclicDependsOn(t *testing.T) {
	cfg := minimalConfig()
	cfg.SetupSteps = []SetupStep{
		{Name: "A", Type: StepShell, Command: "true", DependsOn: []string{"C"}},
		{Name: "B", Type: StepShell, Command: "true", DependsOn: []string{"A"}},
		{Name: "C", Type: StepShell, Command: "true", DependsOn: []string{"B"}},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected a cyclic config to fail validation")
	}
	if !utils.IsCircularError(err) {
		t.Fatalf("expected a circular error, got: %v", err)
	}

	chain := strings.Join(err.(*utils.DevError).Details, " ")
	for _, name := range []string{"A", "B", "C"} {
		if !strings.Contains(chain, name) {
			t.Errorf("expected the cycle chain to mention %s, got: %s", name, chain)
		}
	}
}

// TestValidate_SelfDependsOn tests the one-step cycle
func TestValidate_SelfDependsOn(t *testing.T) {
	cfg := minimalConfig()
	cfg.SetupSteps = []SetupStep{
		{Name: "A", Type: StepShell, Command: "true", DependsOn: []string{"A"}},
	}

	if err := cfg.Validate(); err == nil || !utils.IsCircularError(err) {
		t.Fatalf("expected a circular error, got: %v", err)
	}
}

// TestValidate_CycleInsideChoiceBranch tests that branch action lists get
// the same acyclicity check as the top level
func TestValidate_CycleInsideChoiceBranch(t *testing.T) {
	cfg := minimalConfig()
	cfg.SetupSteps = []SetupStep{{
		Name: "pick", Type: StepChoice, Prompt: "Pick",
		Choices: []Choice{{
			Name: "A", Value: "a",
			Actions: []SetupStep{
				{Name: "x", Type: StepShell, Command: "true", DependsOn: []string{"y"}},
				{Name: "y", Type: StepShell, Command: "true", DependsOn: []string{"x"}},
			},
		}},
	}}

	if err := cfg.Validate(); err == nil || !utils.IsCircularError(err) {
		t.Fatalf("expected a circular error, got: %v", err)
	}
}

// TestValidate_Dependencies tests project dependency declarations
func TestValidate_Dependencies(t *testing.T) {
	cases := []struct {
		name string
		dep  ProjectDependency
	}{
		{"missing name", ProjectDependency{Repository: "https://github.com/org/repo"}},
		{"no source", ProjectDependency{Name: "lib"}},
		{"both sources", ProjectDependency{Name: "lib", Repository: "https://github.com/org/repo", Path: "../lib"}},
		{"branch and tag", ProjectDependency{Name: "lib", Repository: "https://github.com/org/repo", Branch: "main", Tag: "v1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := minimalConfig()
			cfg.Dependencies = []ProjectDependency{tc.dep}

			if err := cfg.Validate(); err == nil {
				t.Errorf("expected an error for %s", tc.name)
			}
		})
	}
}

// TestValidate_DuplicateDependencyNames tests that dependency names are
// unique, since each name maps to one checkout directory
func TestValidate_DuplicateDependencyNames(t *testing.T) {
	cfg := minimalConfig()
	cfg.Dependencies = []ProjectDependency{
		{Name: "lib", Repository: "https://github.com/org/lib"},
		{Name: "lib", Repository: "https://github.com/other/lib"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected duplicate dependency names to be rejected")
	}
	if !strings.Contains(err.Error(), "duplicate dependency name 'lib'") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestValidate_PostSetup tests post-setup action requirements
func TestValidate_PostSetup(t *testing.T) {
	cases := []struct {
		name   string
		action PostSetupAction
	}{
		{"message without content", PostSetupAction{Type: PostMessage}},
		{"open without target", PostSetupAction{Type: PostOpen}},
		{"choice without prompt", PostSetupAction{Type: PostChoice, Choices: []Choice{{Name: "A", Value: "a"}}}},
		{"choice without choices", PostSetupAction{Type: PostChoice, Prompt: "Pick"}},
		{"unknown type", PostSetupAction{Type: "celebrate"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := minimalConfig()
			cfg.PostSetup = []PostSetupAction{tc.action}

			if err := cfg.Validate(); err == nil {
				t.Errorf("expected an error for %s", tc.name)
			}
		})
	}
}

// TestValidate_MultipleUnnamedPostSetupChoices tests the override key
// collision rejection
func TestValidate_MultipleUnnamedPostSetupChoices(t *testing.T) {
	choice := PostSetupAction{
		Type: PostChoice, Prompt: "Pick",
		Choices: []Choice{{Name: "A", Value: "a"}},
	}

	cfg := minimalConfig()
	cfg.PostSetup = []PostSetupAction{choice, choice}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error for multiple unnamed post-setup choices")
	}
	if !strings.Contains(err.Error(), "unnamed choice actions") {
		t.Errorf("unexpected error: %v", err)
	}

	// Naming one of them resolves the collision
	cfg.PostSetup[1].Name = "second"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected named choices to pass, got: %v", err)
	}
}
