package engine

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ============================================================================
// Opener - Editor and browser launching for post-setup actions
// ============================================================================

// Opener launches an editor or the platform browser. Failures are surfaced
// as errors but post-setup treats them as warnings, never fatal.
type Opener interface {
	// OpenEditor opens path in the user's editor
	OpenEditor(path string) error

	// OpenURL opens url in the platform default browser
	OpenURL(url string) error
}

// DesktopOpener launches real editors and browsers on the host
type DesktopOpener struct{}

// NewDesktopOpener creates the default opener
func NewDesktopOpener() *DesktopOpener {
	return &DesktopOpener{}
}

// OpenEditor opens path in VS Code, falling back to $EDITOR (or vim)
func (o *DesktopOpener) OpenEditor(path string) error {
	if err := exec.Command("code", path).Start(); err == nil {
		return nil
	}

	fallback := os.Getenv("EDITOR")
	if fallback == "" {
		fallback = "vim"
	}

	cmd := exec.Command(fallback, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("no editor available (tried code, %s): %w", fallback, err)
	}
	return nil
}

// OpenURL opens url with the platform's URL handler
func (o *DesktopOpener) OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}
