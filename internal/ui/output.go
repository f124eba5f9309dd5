package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ============================================================================
// Color Scheme
// ============================================================================

var (
	// ColorPrimary Primary colors
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple - main brand
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan - accents

	// ColorSuccess Status colors
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue

	// ColorText Text colors
	ColorText     = lipgloss.Color("#E5E7EB") // Light gray
	ColorTextDim  = lipgloss.Color("#9CA3AF") // Dim gray
	ColorTextBold = lipgloss.Color("#F9FAFB") // Almost white

	// ColorBgDark Background colors
	ColorBgDark = lipgloss.Color("#1F2937") // Dark gray
)

// ============================================================================
// Base Styles
// ============================================================================

var (
	// StyleBold Text styles
	StyleBold = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTextBold)

	StyleDim = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	StyleCode = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Background(ColorBgDark).
			Padding(0, 1)

	// StyleSuccess Status styles
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StyleInfo = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	// StyleSuccessBox Box styles for callouts
	StyleSuccessBox = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Padding(0, 1)

	StyleErrorBox = lipgloss.NewStyle().
			Foreground(ColorError).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)

	// StyleHeader Header styles
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Underline(true).
			MarginBottom(1)
)

// ============================================================================
// Status Indicators - Unicode symbols for terminal output
// ============================================================================

const (
	SymbolSuccess   = "✓" // Checkmark
	SymbolError     = "✗" // X mark
	SymbolWarning   = "⚠" // Warning triangle
	SymbolInfo      = "ℹ" // Info
	SymbolSkipped   = "○" // Empty circle
	SymbolArrow     = "→" // Right arrow
	SymbolBullet    = "•" // Bullet point
	SymbolRocket    = "🚀" // Rocket (for completed setups)
	SymbolPackage   = "📦" // Package (for dependencies)
	SymbolGear      = "⚙" // Gear (for steps)
	SymbolLightbulb = "💡" // Lightbulb (for tips/hints)
)

// ============================================================================
// Formatted Output Functions
// ============================================================================

// Success prints a success message with a checkmark
func Success(message string) {
	fmt.Println(StyleSuccess.Render(SymbolSuccess + " " + message))
}

// Error prints an error message with X mark
func Error(message string) {
	fmt.Println(StyleError.Render(SymbolError + " " + message))
}

// Warning prints a warning message with a warning symbol
func Warning(message string) {
	fmt.Println(StyleWarning.Render(SymbolWarning + " " + message))
}

// Info prints an info message with an info symbol
func Info(message string) {
	fmt.Println(StyleInfo.Render(SymbolInfo + " " + message))
}

// Hint prints a helpful hint/tip with lightbulb
func Hint(message string) {
	fmt.Println(StyleInfo.Render(SymbolLightbulb + " " + message))
}

// Skipped prints a message for a step the user declined
func Skipped(message string) {
	fmt.Println(StyleDim.Render(SymbolSkipped + " " + message))
}

// Header prints a section header
func Header(message string) {
	fmt.Println(StyleHeader.Render(message))
}

// ============================================================================
// Inline Text Formatters (for use within strings)
// ============================================================================

// Bold returns bolded text
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Dim returns dimmed text
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Code returns text styled as code/command
func Code(text string) string {
	return StyleCode.Render(text)
}

// Highlight returns text in the primary brand color
func Highlight(text string) string {
	return lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Render(text)
}

// ============================================================================
// Box Formatters (for callouts and important messages)
// ============================================================================

// SuccessBox prints a success message in a box
func SuccessBox(message string) {
	fmt.Println(StyleSuccessBox.Render(SymbolSuccess + " " + message))
}

// ErrorBox prints an error message in a box
func ErrorBox(message string) {
	fmt.Println(StyleErrorBox.Render(SymbolError + " " + message))
}

// ============================================================================
// Utility Functions
// ============================================================================

// EmptyLine prints a blank line for spacing
func EmptyLine() {
	fmt.Println()
}

// List prints a bulleted list item
func List(item string) {
	fmt.Printf("  %s %s\n", StyleDim.Render(SymbolBullet), item)
}

// ListItem prints a bulleted list item with a custom prefix
func ListItem(prefix, item string) {
	fmt.Printf("  %s %s\n", prefix, item)
}
