package pick

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Navigator opens a destination in a new browsing context.
type Navigator interface {
	Open(dest string) error
}

// BrowserNavigator hands destinations to the operating system's opener.
type BrowserNavigator struct{}

func (BrowserNavigator) Open(dest string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", dest)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", dest)
	default:
		cmd = exec.Command("xdg-open", dest)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", dest, err)
	}
	return cmd.Process.Release()
}

// RecordingNavigator remembers destinations instead of opening them.
type RecordingNavigator struct {
	Opened []string
}

func (r *RecordingNavigator) Open(dest string) error {
	r.Opened = append(r.Opened, dest)
	return nil
}
