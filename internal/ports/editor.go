package ports

import "os/exec"

// EditorOpener opens an inventory artifact in the user's editor
type EditorOpener interface {
	// Command builds the editor process for path so a caller can hand
	// the terminal over to it (bubbletea's ExecProcess).
	Command(path string) (*exec.Cmd, error)
}
