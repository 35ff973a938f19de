package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"fleetcli/internal/api"
)

// Run starts the program and blocks until the user quits. The gateway's
// unauthorized hook is pointed at the program so a 401 on any request lands
// in the event loop as a sessionExpiredMsg.
func Run(deps Deps, gw *api.Gateway) error {
	p := tea.NewProgram(New(deps), tea.WithAltScreen())
	gw.OnUnauthorized(func() {
		p.Send(sessionExpiredMsg{})
	})
	_, err := p.Run()
	return err
}
