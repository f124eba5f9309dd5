package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/devup-cli/devup/pkg/utils"
)

// ============================================================================
// Type Definitions
// ============================================================================

// EnvVars represents a collection of environment variables
type EnvVars map[string]string

// envFileName is the file the environment bootstrap materializes
const envFileName = ".env"

// ============================================================================
// Public API
// ============================================================================

// BootstrapEnvironment prepares a project's environment before setup steps
// run. When the project has no .env yet, the declared example file is copied
// into place. Returns the names of declared variables that are still missing
// after merging the .env file with the process environment; missing
// variables are reported, not fatal.
func BootstrapEnvironment(dir string, env *Environment) ([]string, error) {
	if env == nil {
		return nil, nil
	}

	envPath := filepath.Join(dir, envFileName)

	if env.ExampleFile != "" {
		if err := materializeEnvFile(dir, env.ExampleFile, envPath); err != nil {
			return nil, err
		}
	}

	fileVars, err := LoadEnvFile(envPath)
	if err != nil {
		return nil, err
	}

	interpolated, err := InterpolateEnvVars(fileVars)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range env.Variables {
		if _, ok := interpolated[name]; ok {
			continue
		}
		if os.Getenv(name) != "" {
			continue
		}
		missing = append(missing, name)
	}

	return missing, nil
}

// LoadEnvFile loads environment variables from a .env file.
// Returns an empty map if the file doesn't exist (not an error).
func LoadEnvFile(filePath string) (EnvVars, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return make(EnvVars), nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, utils.FileError("env.load",
			fmt.Sprintf("Failed to open %s", filePath),
			"Check the file permissions", err)
	}
	defer file.Close()

	envVars := make(EnvVars)
	scanner := bufio.NewScanner(file)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		key, value, err := parseLine(line)
		if err != nil {
			return nil, utils.FileError("env.load",
				fmt.Sprintf("Error on line %d of %s", lineNumber, filePath),
				"Fix the malformed line", err)
		}

		// Blank lines and comments
		if key == "" {
			continue
		}

		envVars[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, utils.FileError("env.load",
			fmt.Sprintf("Error reading %s", filePath), "", err)
	}

	return envVars, nil
}

// InterpolateEnvVars interpolates variable references in environment values.
// Supports:
//   - ${VAR_NAME} - standard form
//   - $VAR_NAME - short form (word characters only)
//   - ${VAR_NAME:-default} - with default value
//
// Variables are resolved from the provided map first, then from the process
// environment. Returns an error if circular references are detected.
func InterpolateEnvVars(envVars EnvVars) (EnvVars, error) {
	result := make(EnvVars)
	resolving := make(map[string]bool) // Variables currently being resolved, for cycle detection

	for key, value := range envVars {
		interpolated, err := interpolateValue(value, envVars, resolving)
		if err != nil {
			return nil, utils.FileError("env.interpolate",
				fmt.Sprintf("Failed to interpolate variable %s", key), "", err)
		}
		result[key] = interpolated
	}

	return result, nil
}

// ============================================================================
// Private Helpers - Example File
// ============================================================================

// materializeEnvFile copies the example file to .env when .env is absent.
// A missing example file is a warning condition surfaced through the error.
func materializeEnvFile(dir, exampleFile, envPath string) error {
	if _, err := os.Stat(envPath); err == nil {
		return nil // .env already exists, leave it alone
	}

	examplePath := filepath.Join(dir, exampleFile)
	data, err := os.ReadFile(examplePath)
	if err != nil {
		return utils.FileError("env.bootstrap",
			fmt.Sprintf("Environment example file %s not found", exampleFile),
			"Create the example file or remove environment.example_file", err)
	}

	if err := os.WriteFile(envPath, data, 0644); err != nil {
		return utils.FileError("env.bootstrap",
			fmt.Sprintf("Failed to write %s", envPath), "", err)
	}

	return nil
}

// ============================================================================
// Private Helpers - Variable Interpolation
// ============================================================================

// Regular expressions for variable references
var (
	// Matches ${VAR_NAME} or ${VAR_NAME:-default}
	varRefWithBraces = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?}`)
	// Matches $VAR_NAME (word characters only, no braces)
	varRefShort = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// interpolateValue interpolates all variable references in a single value
func interpolateValue(value string, envVars EnvVars, resolving map[string]bool) (string, error) {
	var interpolationError error

	result := varRefWithBraces.ReplaceAllStringFunc(value, func(match string) string {
		if interpolationError != nil {
			return match
		}

		submatches := varRefWithBraces.FindStringSubmatch(match)
		varName := submatches[1]
		defaultValue := ""
		if len(submatches) > 3 {
			defaultValue = submatches[3]
		}

		resolved, err := resolveVariable(varName, envVars, resolving, defaultValue)
		if err != nil {
			interpolationError = err
			return match
		}
		return resolved
	})

	if interpolationError != nil {
		return "", interpolationError
	}

	result = varRefShort.ReplaceAllStringFunc(result, func(match string) string {
		if interpolationError != nil {
			return match
		}

		submatches := varRefShort.FindStringSubmatch(match)
		varName := submatches[1]

		resolved, err := resolveVariable(varName, envVars, resolving, "")
		if err != nil {
			interpolationError = err
			return match
		}
		return resolved
	})

	if interpolationError != nil {
		return "", interpolationError
	}

	return result, nil
}

// resolveVariable resolves a single variable reference.
// Looks up in envVars first, then the process environment, then defaultValue.
func resolveVariable(varName string, envVars EnvVars, resolving map[string]bool, defaultValue string) (string, error) {
	if resolving[varName] {
		return "", fmt.Errorf("circular reference detected: %s", varName)
	}

	if val, exists := envVars[varName]; exists {
		resolving[varName] = true
		defer delete(resolving, varName)

		// The value may itself contain references
		interpolated, err := interpolateValue(val, envVars, resolving)
		if err != nil {
			return "", err
		}
		return interpolated, nil
	}

	if val := os.Getenv(varName); val != "" {
		return val, nil
	}

	if defaultValue != "" {
		return defaultValue, nil
	}

	return "", nil
}

// ============================================================================
// Private Helpers - Line Parsing
// ============================================================================

// parseLine parses a single line from a .env file.
// Returns ("", "", nil) for blank lines and comments.
func parseLine(line string) (string, string, error) {
	line = strings.TrimSpace(line)

	if line == "" {
		return "", "", nil
	}

	if strings.HasPrefix(line, "#") {
		return "", "", nil
	}

	equalIndex := strings.Index(line, "=")
	if equalIndex == -1 {
		// No = sign - skip this line (lenient, same as most dotenv loaders)
		return "", "", nil
	}

	key := strings.TrimSpace(line[:equalIndex])
	value := strings.TrimSpace(line[equalIndex+1:])

	if key == "" {
		return "", "", fmt.Errorf("empty key in .env file")
	}

	value = unquoteValue(value)

	return key, value, nil
}

// unquoteValue removes surrounding quotes from a value
func unquoteValue(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}

	if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
		return value[1 : len(value)-1]
	}

	return value
}
