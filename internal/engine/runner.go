package engine

import (
	"context"
	"os"
	"os/exec"
)

// ============================================================================
// Process Runner - External command execution
// ============================================================================

// Runner executes an external command in a directory. Standard streams are
// inherited so the user sees live output; the engine only consumes the
// success/failure result.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ProcessRunner runs commands through os/exec with inherited stdio
type ProcessRunner struct{}

// NewProcessRunner creates the default process runner
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{}
}

// Run executes name with args in dir, blocking until the process exits.
// A non-zero exit status is returned as an error.
func (r *ProcessRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
