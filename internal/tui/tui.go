// Package tui is the interactive mode browser and settings editor.
// It works as an offline browser when the daemon is not running;
// arrangement actions require the daemon.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Run starts the TUI main loop.
func Run(configPath string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(configPath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
