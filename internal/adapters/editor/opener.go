package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Opener implements ports.EditorOpener
type Opener struct {
	lookPath func(string) (string, error)
	getenv   func(string) string
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookPath: exec.LookPath, getenv: os.Getenv}
}

// Command returns an exec.Cmd that opens path in the editor.
// $EDITOR may carry arguments, e.g. "code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	fields := strings.Fields(editor)
	args := append(fields[1:], path)

	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if editor := strings.TrimSpace(o.getenv(env)); editor != "" {
			return editor
		}
	}

	// Common editors, then a pager
	for _, candidate := range []string{"nvim", "vim", "vi", "nano", "less"} {
		if path, err := o.lookPath(candidate); err == nil {
			return path
		}
	}

	return ""
}
