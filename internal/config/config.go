package config

// SupportedVersion is the only configuration schema version devup understands
const SupportedVersion = "1"

// StepType identifies the kind of work a setup step performs.
// The set is closed: the engine matches exhaustively over these values.
type StepType string

const (
	StepShell          StepType = "shell"           // Run a shell command
	StepPackageManager StepType = "package-manager" // Run a package manager command (npm/yarn/pnpm)
	StepDockerCompose  StepType = "docker-compose"  // Run 'docker compose <args>'
	StepDocker         StepType = "docker"          // Run 'docker <args>'
	StepDatabase       StepType = "database"        // Run a database setup command
	StepService        StepType = "service"         // Run a service management command
	StepChoice         StepType = "choice"          // Present mutually exclusive branches
)

// PostSetupType identifies the kind of a post-setup action
type PostSetupType string

const (
	PostMessage PostSetupType = "message" // Print a message
	PostOpen    PostSetupType = "open"    // Open an editor or URL
	PostChoice  PostSetupType = "choice"  // Present a choice, run the selected branch
)

// Config represents the entire dev.yml file structure
type Config struct {
	Version      string              `yaml:"version" json:"version"`           // Schema version, must be "1"
	ProjectName  string              `yaml:"project_name" json:"project_name"` // Human-readable project name
	Environment  *Environment        `yaml:"environment" json:"environment"`   // Environment bootstrap settings
	SetupSteps   []SetupStep         `yaml:"setup_steps" json:"setup_steps"`   // Ordered setup steps
	Dependencies []ProjectDependency `yaml:"dependencies" json:"dependencies"` // Other projects set up first
	PostSetup    []PostSetupAction   `yaml:"post_setup" json:"post_setup"`     // Actions after setup succeeds
}

// Environment describes how to bootstrap the project's environment variables
type Environment struct {
	ExampleFile string   `yaml:"example_file" json:"example_file"` // Template copied to .env (e.g., .env.example)
	Variables   []string `yaml:"variables" json:"variables"`       // Variables that must be present
}

// SetupStep is one declared unit of work. Non-choice steps carry a command;
// choice steps carry a prompt and branches whose actions are themselves
// setup steps, at unbounded nesting depth.
type SetupStep struct {
	Name      string   `yaml:"name" json:"name"`                                 // Unique among siblings; graph node id
	Type      StepType `yaml:"type" json:"type"`                                 // One of the StepType constants
	Command   string   `yaml:"command,omitempty" json:"command,omitempty"`       // Required for non-choice types
	Manager   string   `yaml:"manager,omitempty" json:"manager,omitempty"`       // Explicit package manager override
	DependsOn []string `yaml:"depends_on,omitempty" json:"depends_on,omitempty"` // Sibling step names
	Prompt    string   `yaml:"prompt,omitempty" json:"prompt,omitempty"`         // Required for choice steps
	Choices   []Choice `yaml:"choices,omitempty" json:"choices,omitempty"`       // Required for choice steps (>= 1)
}

// Choice is one branch of a choice step
type Choice struct {
	Name    string      `yaml:"name" json:"name"`       // Label shown to the user
	Value   string      `yaml:"value" json:"value"`     // Value matched against pre-specified choices
	Actions []SetupStep `yaml:"actions" json:"actions"` // Steps executed when this branch is selected
}

// PostSetupAction runs after all setup steps succeed
type PostSetupAction struct {
	Name    string        `yaml:"name,omitempty" json:"name,omitempty"`       // Pre-specified choice lookup key
	Type    PostSetupType `yaml:"type" json:"type"`                           // One of the PostSetupType constants
	Content string        `yaml:"content,omitempty" json:"content,omitempty"` // Message text
	Target  string        `yaml:"target,omitempty" json:"target,omitempty"`   // "editor" or a URL for open actions
	Path    string        `yaml:"path,omitempty" json:"path,omitempty"`       // Path handed to the editor
	Prompt  string        `yaml:"prompt,omitempty" json:"prompt,omitempty"`   // Required for choice actions
	Choices []Choice      `yaml:"choices,omitempty" json:"choices,omitempty"` // Required for choice actions
}

// ProjectDependency references another project that must be fully set up
// before this one. Exactly one of Repository or Path is set.
type ProjectDependency struct {
	Name       string `yaml:"name" json:"name"`                                 // Display name
	Repository string `yaml:"repository,omitempty" json:"repository,omitempty"` // Remote git URL
	Path       string `yaml:"path,omitempty" json:"path,omitempty"`             // Local path, relative to this project
	Branch     string `yaml:"branch,omitempty" json:"branch,omitempty"`         // Branch to check out
	Tag        string `yaml:"tag,omitempty" json:"tag,omitempty"`               // Tag to check out
}

// Ref returns the git ref a dependency pins, defaulting to "main".
// It is part of the dependency's identity key.
func (d ProjectDependency) Ref() string {
	if d.Branch != "" {
		return d.Branch
	}
	if d.Tag != "" {
		return d.Tag
	}
	return "main"
}

// Source returns the repository URL or local path, whichever is set
func (d ProjectDependency) Source() string {
	if d.Repository != "" {
		return d.Repository
	}
	return d.Path
}

// IsLocal reports whether the dependency points at a local path
func (d ProjectDependency) IsLocal() bool {
	return d.Repository == "" && d.Path != ""
}
