package ui

import (
	"strings"
	"testing"
)

// TestConfirm tests yes/no answer parsing with decline as the default
func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"y", "y\n", true},
		{"yes", "yes\n", true},
		{"uppercase yes", "YES\n", true},
		{"padded y", "  y  \n", true},
		{"n", "n\n", false},
		{"no", "no\n", false},
		{"empty defaults to no", "\n", false},
		{"gibberish is no", "sure why not\n", false},
		{"eof is no", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompter := NewTerminalPrompterFrom(strings.NewReader(tt.input))

			got, err := prompter.Confirm("Proceed?")
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if got != tt.expected {
				t.Errorf("input %q: expected %v, got %v", tt.input, tt.expected, got)
			}
		})
	}
}

// TestSelect tests numbered selection
func TestSelect(t *testing.T) {
	options := []SelectOption{
		{Name: "Development", Value: "dev"},
		{Name: "Production", Value: "prod"},
	}

	t.Run("valid number", func(t *testing.T) {
		prompter := NewTerminalPrompterFrom(strings.NewReader("2\n"))

		value, err := prompter.Select("Environment?", options)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if value != "prod" {
			t.Errorf("expected prod, got %q", value)
		}
	})

	t.Run("retries until valid", func(t *testing.T) {
		prompter := NewTerminalPrompterFrom(strings.NewReader("0\nbanana\n1\n"))

		value, err := prompter.Select("Environment?", options)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if value != "dev" {
			t.Errorf("expected dev, got %q", value)
		}
	})

	t.Run("eof without answer", func(t *testing.T) {
		prompter := NewTerminalPrompterFrom(strings.NewReader(""))

		if _, err := prompter.Select("Environment?", options); err == nil {
			t.Fatal("expected an error when input ends without a selection")
		}
	})

	t.Run("no options", func(t *testing.T) {
		prompter := NewTerminalPrompterFrom(strings.NewReader("1\n"))

		if _, err := prompter.Select("Environment?", nil); err == nil {
			t.Fatal("expected an error for an empty option list")
		}
	})
}
