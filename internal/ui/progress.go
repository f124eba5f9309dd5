package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ============================================================================
// Simple Spinner - No bubble tea, just clean terminal output
// ============================================================================

// Spinner represents a simple terminal spinner for indicating progress
type Spinner struct {
	message    string
	frames     []string
	frameIndex int
	isRunning  bool
	done       chan bool
	mu         sync.Mutex
	style      lipgloss.Style
}

// Default spinner frames (dots)
var defaultFrames = []string{
	"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏",
}

// NewSpinner creates a new spinner with a message
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message:    message,
		frames:     defaultFrames,
		frameIndex: 0,
		isRunning:  false,
		done:       make(chan bool),
		style: lipgloss.NewStyle().
			Foreground(ColorSecondary),
	}
}

// ============================================================================
// Lifecycle Methods
// ============================================================================

// Start begins the spinner animation
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	go s.run()
}

// Stop stops the spinner and clears the line
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	s.done <- true
	s.clearLine()
}

// Success stops the spinner and shows a success message
func (s *Spinner) Success(message string) {
	s.Stop()
	Success(message)
}

// Error stops the spinner and shows an error message
func (s *Spinner) Error(message string) {
	s.Stop()
	Error(message)
}

// Warning stops the spinner and shows a warning message
func (s *Spinner) Warning(message string) {
	s.Stop()
	Warning(message)
}

// UpdateMessage changes the spinner message while it's running
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// ============================================================================
// Private Methods
// ============================================================================

// run is the main spinner loop
func (s *Spinner) run() {
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.render()
			s.nextFrame()
		}
	}
}

// render draws the current spinner frame
func (s *Spinner) render() {
	s.mu.Lock()
	frame := s.frames[s.frameIndex]
	message := s.message
	s.mu.Unlock()

	fmt.Printf("\r%s %s", s.style.Render(frame), message)
}

// clearLine clears the current line
func (s *Spinner) clearLine() {
	fmt.Print("\r\033[K") // ANSI escape: clear line
}

// nextFrame advances to the next spinner frame
func (s *Spinner) nextFrame() {
	s.mu.Lock()
	s.frameIndex = (s.frameIndex + 1) % len(s.frames)
	s.mu.Unlock()
}

// ============================================================================
// Convenience Functions
// ============================================================================

// ShowSpinner creates, starts, and returns a spinner (convenience function)
func ShowSpinner(message string) *Spinner {
	spinner := NewSpinner(message)
	spinner.Start()
	return spinner
}

// WithProgress wraps a long-running operation with a spinner
func WithProgress(message string, fn func() error) error {
	spinner := ShowSpinner(message)
	err := fn()
	if err != nil {
		spinner.Error(message + " failed")
		return err
	}
	spinner.Success(message)
	return nil
}
