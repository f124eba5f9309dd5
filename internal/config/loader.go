package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/devup-cli/devup/pkg/utils"
)

// ============================================================================
// Constants
// ============================================================================

// Format identifies the serialization format of a configuration file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// configFileNames lists the recognized config file names in priority order
var configFileNames = []string{"dev.yml", "dev.yaml", "dev.json"}

// ============================================================================
// Public API
// ============================================================================

// Load reads, parses, and validates the configuration for a project directory.
// It looks for dev.yml, dev.yaml, and dev.json in that order.
func Load(dir string) (*Config, error) {
	cfg, err := LoadUnvalidated(dir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadUnvalidated reads and parses the configuration without validating it.
// Callers that only probe for a config's presence use this with Exists.
func LoadUnvalidated(dir string) (*Config, error) {
	configPath, format, err := findConfigFile(dir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, utils.FileError("config.load",
			fmt.Sprintf("Failed to read config file %s", configPath),
			"Check the file permissions", err)
	}

	return Parse(data, format)
}

// Exists reports whether a project directory carries a devup configuration
func Exists(dir string) bool {
	_, _, err := findConfigFile(dir)
	return err == nil
}

// Parse parses configuration text in the given format.
// The root of the document must be an object.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&cfg); err != nil {
			return nil, utils.ParseError("config.parse", "Failed to parse JSON configuration", err)
		}
	case FormatYAML:
		// Reject non-object roots (a bare scalar or list parses without
		// error but is never a valid plan)
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, utils.ParseError("config.parse", "Failed to parse YAML configuration", err)
		}
		if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
			return nil, utils.SchemaError("config.parse", "Configuration root must be a mapping")
		}
		if err := root.Decode(&cfg); err != nil {
			return nil, utils.SchemaError("config.parse", err.Error())
		}
	default:
		return nil, utils.ParseError("config.parse",
			fmt.Sprintf("Unsupported configuration format %q", format), nil)
	}

	return &cfg, nil
}

// ============================================================================
// Private Helpers
// ============================================================================

// findConfigFile searches dir for a config file in priority order
func findConfigFile(dir string) (string, Format, error) {
	for _, name := range configFileNames {
		configPath := filepath.Join(dir, name)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, formatForFile(name), nil
		}
	}

	return "", "", utils.ErrConfigNotFound(dir)
}

// formatForFile maps a config file name to its format
func formatForFile(name string) Format {
	if filepath.Ext(name) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}
