package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal provides terminal-aware output for in-place progress updates
type Terminal struct {
	IsTerminal bool
}

// NewTerminal creates a new Terminal instance
func NewTerminal() *Terminal {
	return &Terminal{
		IsTerminal: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// ClearLine clears the current line (terminal only)
func (t *Terminal) ClearLine() {
	if t.IsTerminal {
		fmt.Print("\r\033[K")
	}
}

// Flush ensures output is written immediately
func (t *Terminal) Flush() {
	os.Stdout.Sync()
}
