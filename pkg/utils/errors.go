package utils

import (
	"fmt"
	"strings"
)

// ============================================================================
// Error Types - Categorized for better handling
// ============================================================================

// ErrorKind represents the category of error
type ErrorKind string

const (
	ErrorParse        ErrorKind = "parse"         // Malformed configuration text
	ErrorSchema       ErrorKind = "schema"        // Structurally wrong configuration document
	ErrorValidation   ErrorKind = "validation"    // Well-formed but illegal configuration
	ErrorCircular     ErrorKind = "circular"      // Step-level or project-level dependency cycle
	ErrorChoice       ErrorKind = "choice"        // Pre-specified choice value not legal for a step
	ErrorMissingField ErrorKind = "missing-field" // Step lacks a required field
	ErrorProcess      ErrorKind = "process"       // Spawned command exited non-zero
	ErrorDependency   ErrorKind = "dependency"    // Project dependency resolution failures
	ErrorGit          ErrorKind = "git"           // Git operations
	ErrorFile         ErrorKind = "file"          // File system errors
	ErrorConfig       ErrorKind = "config"        // Configuration discovery/loading
	ErrorInternal     ErrorKind = "internal"      // Unexpected internal errors
)

// ============================================================================
// DevError - Structured error with context and hints
// ============================================================================

// DevError is a rich error type that provides context, hints, and suggestions
type DevError struct {
	// Op is the operation that failed (e.g., "engine.run", "config.load")
	Op string

	// Kind categorizes the error
	Kind ErrorKind

	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Hint provides a suggestion for how to fix the error
	Hint string

	// Details provides additional context (optional)
	Details []string

	// Suggestions provide "did you mean?" style suggestions (optional)
	Suggestions []string
}

// Error implements the error interface
func (e *DevError) Error() string {
	var parts []string

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("operation: %s", e.Op))
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error (for errors.Is and errors.As)
func (e *DevError) Unwrap() error {
	return e.Err
}

// ============================================================================
// Error Constructors - Convenience functions for common error types
// ============================================================================

// ParseError creates an error for malformed configuration text
func ParseError(op, message string, err error) *DevError {
	return &DevError{
		Op:      op,
		Kind:    ErrorParse,
		Err:     err,
		Message: message,
		Hint:    "Check the configuration file syntax",
	}
}

// SchemaError creates an error for a structurally wrong configuration document
func SchemaError(op, message string) *DevError {
	return &DevError{
		Op:      op,
		Kind:    ErrorSchema,
		Message: message,
		Hint:    "The configuration root must be a mapping of fields",
	}
}

// ValidationError creates a validation error
func ValidationError(op, message, hint string) *DevError {
	return &DevError{
		Op:      op,
		Kind:    ErrorValidation,
		Message: message,
		Hint:    hint,
	}
}

// MissingFieldError creates an error for a step lacking a required field
func MissingFieldError(op, stepName, field string) *DevError {
	return &DevError{
		Op:      op,
		Kind:    ErrorMissingField,
		Message: fmt.Sprintf("Step '%s' is missing required field '%s'", stepName, field),
		Hint:    fmt.Sprintf("Add '%s' to the step definition", field),
	}
}

// FileError creates a file system error
func FileError(op, message, hint string, err error) *DevError {
	return &DevError{
		Op:      op,
		Kind:    ErrorFile,
		Err:     err,
		Message: message,
		Hint:    hint,
	}
}

// GitError creates an error for git operations
func GitError(op, message, hint string, err error) *DevError {
	return &DevError{
		Op:      op,
		Kind:    ErrorGit,
		Err:     err,
		Message: message,
		Hint:    hint,
	}
}

// ============================================================================
// Common Error Scenarios - Pre-defined errors for frequent cases
// ============================================================================

// ErrConfigNotFound creates an error for when no dev config file exists
func ErrConfigNotFound(dir string) *DevError {
	return &DevError{
		Op:      "config.load",
		Kind:    ErrorConfig,
		Message: fmt.Sprintf("No dev.yml, dev.yaml, or dev.json found in %s", dir),
		Hint:    "Create a dev.yml describing your setup steps",
		Details: []string{
			"Make sure you're in the right directory",
			"Files are discovered in the order dev.yml, dev.yaml, dev.json",
		},
	}
}

// ErrUnsupportedVersion creates an error for an unknown schema version
func ErrUnsupportedVersion(version string) *DevError {
	return &DevError{
		Op:      "config.validate",
		Kind:    ErrorValidation,
		Message: fmt.Sprintf("Unsupported configuration version '%s'", version),
		Hint:    "Set version: \"1\"",
	}
}

// ErrCircularSteps creates an error for a cycle among setup steps
func ErrCircularSteps(cycle []string) *DevError {
	return &DevError{
		Op:      "engine.order",
		Kind:    ErrorCircular,
		Message: "Circular dependency detected between setup steps",
		Hint:    "Remove the circular depends_on reference",
		Details: []string{
			fmt.Sprintf("Dependency cycle: %s", strings.Join(cycle, " -> ")),
		},
	}
}

// ErrCircularProjects creates an error for a cycle among project dependencies
func ErrCircularProjects(chain []string) *DevError {
	return &DevError{
		Op:      "resolver.resolve",
		Kind:    ErrorCircular,
		Message: "Circular project dependency detected",
		Hint:    "Break the cycle between the projects' dependency declarations",
		Details: []string{
			fmt.Sprintf("Resolution chain: %s", strings.Join(chain, " -> ")),
		},
	}
}

// ErrInvalidChoice creates an error for a pre-specified value that is not
// among a choice step's legal values
func ErrInvalidChoice(stepName, value string, legal []string) *DevError {
	return &DevError{
		Op:          "engine.choices",
		Kind:        ErrorChoice,
		Message:     fmt.Sprintf("Invalid choice '%s' for step '%s'", value, stepName),
		Hint:        "Use one of the step's declared choice values",
		Suggestions: legal,
	}
}

// ErrProcessFailed creates an error for a command that exited non-zero
func ErrProcessFailed(stepName, command string, err error) *DevError {
	return &DevError{
		Op:      "engine.exec",
		Kind:    ErrorProcess,
		Err:     err,
		Message: fmt.Sprintf("Step '%s' failed", stepName),
		Hint:    "Fix the failing command and re-run setup",
		Details: []string{
			fmt.Sprintf("Command: %s", command),
		},
	}
}

// ErrLocalDependencyNotFound creates an error for a missing local dependency path
func ErrLocalDependencyNotFound(name, path string) *DevError {
	return &DevError{
		Op:      "resolver.local",
		Kind:    ErrorDependency,
		Message: fmt.Sprintf("Local dependency '%s' not found at %s", name, path),
		Hint:    "Check the dependency's path, or clone the project there first",
	}
}

// ErrInvalidRepository creates an error for an unusable repository URL
func ErrInvalidRepository(name, url string) *DevError {
	return &DevError{
		Op:      "resolver.remote",
		Kind:    ErrorDependency,
		Message: fmt.Sprintf("Dependency '%s' has an invalid repository URL: %s", name, url),
		Hint:    "Use an https://, git@, or ssh:// repository URL",
	}
}

// ============================================================================
// Error Wrapping - Add context to existing errors
// ============================================================================

// Wrap adds context to an existing error
func Wrap(err error, op, message string) error {
	if err == nil {
		return nil
	}

	// If it's already a DevError, just add to the operation chain
	if devErr, ok := err.(*DevError); ok {
		devErr.Op = op + "." + devErr.Op
		return devErr
	}

	return &DevError{
		Op:      op,
		Err:     err,
		Message: message,
	}
}

// ============================================================================
// Error Checking Helpers
// ============================================================================

// IsKind checks if an error is of a specific kind
func IsKind(err error, kind ErrorKind) bool {
	if devErr, ok := err.(*DevError); ok {
		return devErr.Kind == kind
	}
	return false
}

// IsCircularError checks if the error reports a dependency cycle
func IsCircularError(err error) bool {
	return IsKind(err, ErrorCircular)
}

// IsChoiceError checks if the error reports an invalid pre-specified choice
func IsChoiceError(err error) bool {
	return IsKind(err, ErrorChoice)
}

// IsValidationError checks if the error is a validation failure
func IsValidationError(err error) bool {
	return IsKind(err, ErrorValidation)
}

// IsProcessError checks if the error came from a failed external command
func IsProcessError(err error) bool {
	return IsKind(err, ErrorProcess)
}
