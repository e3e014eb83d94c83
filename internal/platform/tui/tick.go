package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTTL is how long a status line stays visible.
const statusTTL = 4 * time.Second

// clearStatusMsg expires the status line set at the given generation.
type clearStatusMsg struct{ gen int }

// clearStatusCmd returns a command that clears the status after statusTTL.
func clearStatusCmd(gen int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{gen: gen}
	})
}
