package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via build flags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information from build flags
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = buildVersionString()
}

// buildVersionString creates a detailed version string
func buildVersionString() string {
	result := version
	if commit != "none" && commit != "" {
		result += fmt.Sprintf(" (commit: %s)", commit)
	}
	if date != "unknown" && date != "" {
		result += fmt.Sprintf(" (built: %s)", date)
	}
	return result
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devup",
	Short: "Devup - Reproducible development environment setup",
	Long: `Devup sets up a project's local development environment from its dev.yml.

	It runs setup steps in dependency order, resolves cross-project dependencies
	first, and gates every side-effecting command behind a confirmation.`,
	Version: version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, err := fmt.Fprintln(os.Stderr, err)
		if err != nil {
			return
		}
		os.Exit(1)
	}
}
