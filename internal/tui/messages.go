package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"fleetcli/internal/models"
)

// Message types for async operations. Every command that talks to the API
// runs in its own goroutine and reports back through one of these; forms and
// controllers are only mutated on the Update goroutine via their
// Begin/Finish halves.
type (
	// sessionExpiredMsg is injected from outside the event loop when any
	// request comes back 401.
	sessionExpiredMsg struct{}

	authDoneMsg struct {
		register bool
		err      error
	}

	vehiclesLoadedMsg struct {
		gen   uint64
		items []models.Vehicle
		err   error
	}

	remindersLoadedMsg struct {
		gen   uint64
		items []models.Reminder
		err   error
	}

	// vehicleChoicesMsg carries the vehicles offered by the reminder form's
	// vehicle picker.
	vehicleChoicesMsg struct {
		items []models.Vehicle
		err   error
	}

	savedMsg struct {
		reminder bool
		err      error
	}

	deletedMsg struct {
		reminder bool
		err      error
	}

	statusChangedMsg struct {
		err error
	}
)

// loadVehiclesCmd bumps the vehicle list generation and fetches in the
// background. The generation travels with the result so stale responses can
// be discarded.
func (m Model) loadVehiclesCmd() tea.Cmd {
	ctrl := m.vehicles
	gen, spec := ctrl.BeginLoad()
	return func() tea.Msg {
		items, err := ctrl.Fetch(context.Background(), spec)
		return vehiclesLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (m Model) loadRemindersCmd() tea.Cmd {
	ctrl := m.reminders
	gen, spec := ctrl.BeginLoad()
	return func() tea.Msg {
		items, err := ctrl.Fetch(context.Background(), spec)
		return remindersLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (m Model) loadVehicleChoicesCmd() tea.Cmd {
	svc := m.vehicleSvc
	return func() tea.Msg {
		items, err := svc.List(context.Background(), models.SortSpec{Key: "licensePlate", Direction: models.Asc})
		return vehicleChoicesMsg{items: items, err: err}
	}
}

// loginCmd assumes BeginSubmit already succeeded; only the request runs in
// the goroutine.
func (m Model) loginCmd() tea.Cmd {
	creds, auth := m.loginForm.Credentials(), m.auth
	return func() tea.Msg {
		_, err := auth.Login(context.Background(), creds)
		return authDoneMsg{err: err}
	}
}

func (m Model) registerCmd() tea.Cmd {
	reg, auth := m.registerForm.Registration(), m.auth
	return func() tea.Msg {
		_, err := auth.Register(context.Background(), reg)
		return authDoneMsg{register: true, err: err}
	}
}

func (m Model) saveVehicleCmd() tea.Cmd {
	payload, id, svc := m.vehicleForm.Payload(), m.vehicleForm.EditingID(), m.vehicleSvc
	return func() tea.Msg {
		var err error
		if id != 0 {
			_, err = svc.Update(context.Background(), id, payload)
		} else {
			_, err = svc.Create(context.Background(), payload)
		}
		return savedMsg{err: err}
	}
}

func (m Model) saveReminderCmd() tea.Cmd {
	payload, id, svc := m.reminderForm.Payload(), m.reminderForm.EditingID(), m.reminderSvc
	return func() tea.Msg {
		var err error
		if id != 0 {
			_, err = svc.Update(context.Background(), id, payload)
		} else {
			_, err = svc.Create(context.Background(), payload)
		}
		return savedMsg{reminder: true, err: err}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	if m.tab == tabReminders {
		ctrl := m.reminders
		return func() tea.Msg {
			return deletedMsg{reminder: true, err: ctrl.Delete(context.Background(), id)}
		}
	}
	ctrl := m.vehicles
	return func() tea.Msg {
		return deletedMsg{err: ctrl.Delete(context.Background(), id)}
	}
}

func (m Model) toggleStatusCmd(id int64, completed bool) tea.Cmd {
	ctrl := m.reminders
	return func() tea.Msg {
		return statusChangedMsg{err: ctrl.SetCompleted(context.Background(), id, completed)}
	}
}
