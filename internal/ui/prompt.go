package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ============================================================================
// Prompter - Interactive confirmation and selection
// ============================================================================

// SelectOption is one entry in a single-select prompt
type SelectOption struct {
	Name  string // Label shown to the user
	Value string // Value returned when selected
}

// Prompter collects interactive answers from the user. The execution engine
// blocks on these calls; unattended runs inject pre-specified answers
// instead of prompting.
type Prompter interface {
	// Confirm asks a yes/no question and reports the answer
	Confirm(question string) (bool, error)

	// Select presents a single-select prompt and returns the chosen value
	Select(prompt string, options []SelectOption) (string, error)
}

// TerminalPrompter reads answers from an input stream, normally stdin
type TerminalPrompter struct {
	reader *bufio.Reader
}

// NewTerminalPrompter creates a prompter reading from stdin
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{reader: bufio.NewReader(os.Stdin)}
}

// NewTerminalPrompterFrom creates a prompter reading from the given stream
func NewTerminalPrompterFrom(in io.Reader) *TerminalPrompter {
	return &TerminalPrompter{reader: bufio.NewReader(in)}
}

// Confirm asks a yes/no question. Empty input and anything other than
// y/yes counts as a decline.
func (p *TerminalPrompter) Confirm(question string) (bool, error) {
	fmt.Printf("%s %s %s ", StyleInfo.Render("?"), question, StyleDim.Render("[y/N]"))

	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// Select presents a numbered single-select prompt and keeps asking until
// the user enters a valid number.
func (p *TerminalPrompter) Select(prompt string, options []SelectOption) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to select from")
	}

	fmt.Printf("%s %s\n", StyleInfo.Render("?"), Bold(prompt))
	for i, option := range options {
		fmt.Printf("  %s %s\n", StyleDim.Render(strconv.Itoa(i+1)+")"), option.Name)
	}

	for {
		fmt.Printf("%s ", StyleDim.Render(fmt.Sprintf("Enter choice [1-%d]:", len(options))))

		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("failed to read selection: %w", err)
		}

		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && choice >= 1 && choice <= len(options) {
			return options[choice-1].Value, nil
		}

		// EOF with no valid answer means nobody is attached to stdin
		if err == io.EOF {
			return "", fmt.Errorf("no selection made for %q", prompt)
		}

		Warning(fmt.Sprintf("Please enter a number between 1 and %d", len(options)))
	}
}
