package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fleetcli/internal/api"
	"fleetcli/internal/form"
	"fleetcli/internal/list"
	"fleetcli/internal/logging"
	"fleetcli/internal/models"
	"fleetcli/internal/services"
)

type screen int

const (
	screenLogin screen = iota
	screenRegister
	screenMain
)

type tab int

const (
	tabVehicles tab = iota
	tabReminders
)

type overlay int

const (
	overlayNone overlay = iota
	overlayVehicleForm
	overlayReminderForm
	overlayConfirmDelete
)

// Deps is everything the TUI needs from the composition root.
type Deps struct {
	Auth          *services.AuthService
	Vehicles      *services.VehicleService
	Reminders     *services.ReminderService
	LeaseWarnDays int
	Log           logging.Logger
}

// Model is the single bubbletea model for the whole application: auth
// screens, the tabbed main view, and the form/confirm overlays.
type Model struct {
	auth        *services.AuthService
	vehicleSvc  *services.VehicleService
	reminderSvc *services.ReminderService
	vehicles    *list.Controller[models.Vehicle]
	reminders   *list.Controller[models.Reminder]
	log         logging.Logger

	leaseWarnDays int
	now           func() time.Time

	screen  screen
	tab     tab
	overlay overlay

	loginForm    *form.LoginForm
	registerForm *form.RegisterForm
	authInputs   []textinput.Model
	authFocus    int

	vehicleTable  table.Model
	reminderTable table.Model

	vehicleForm    *form.VehicleForm
	reminderForm   *form.ReminderForm
	formInputs     []textinput.Model
	formFocus      int
	typeIdx        int
	vehicleChoices []models.Vehicle
	choiceIdx      int

	confirmID    int64
	confirmLabel string

	spin   spinner.Model
	status string
	width  int
	height int
}

// New builds the model. When a persisted session is already present the
// login screen is skipped entirely.
func New(deps Deps) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colAccent)

	m := Model{
		auth:          deps.Auth,
		vehicleSvc:    deps.Vehicles,
		reminderSvc:   deps.Reminders,
		vehicles:      list.NewController[models.Vehicle](deps.Vehicles, models.SortSpec{}, deps.Log),
		reminders:     list.NewController[models.Reminder](deps.Reminders, models.SortSpec{}, deps.Log),
		log:           deps.Log,
		leaseWarnDays: deps.LeaseWarnDays,
		now:           time.Now,
		loginForm:     form.NewLoginForm(),
		spin:          sp,
		width:         80,
		height:        24,
	}
	m.authInputs = loginInputs()
	m.authInputs[0].Focus()
	m.vehicleTable = newTable(vehicleColumns, m.vehicles.Sort(), nil, m.tableHeight())
	m.reminderTable = newTable(reminderColumns, m.reminders.Sort(), nil, m.tableHeight())
	if deps.Auth.IsAuthenticated() {
		m.screen = screenMain
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spin.Tick}
	if m.screen == screenMain {
		cmds = append(cmds, m.loadVehiclesCmd(), m.loadRemindersCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vehicleTable.SetHeight(m.tableHeight())
		m.reminderTable.SetHeight(m.tableHeight())
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionExpiredMsg:
		if m.screen != screenMain {
			return m, nil
		}
		return m.resetToLogin("session expired, please sign in again")

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case vehiclesLoadedMsg:
		if !m.vehicles.FinishLoad(msg.gen, msg.items, msg.err) {
			return m, nil
		}
		if msg.err != nil && !errors.Is(msg.err, api.ErrUnauthorized) {
			m.status = "loading vehicles failed: " + requestFailure(msg.err)
		}
		m.rebuildVehicleTable()
		return m, nil

	case remindersLoadedMsg:
		if !m.reminders.FinishLoad(msg.gen, msg.items, msg.err) {
			return m, nil
		}
		if msg.err != nil && !errors.Is(msg.err, api.ErrUnauthorized) {
			m.status = "loading reminders failed: " + requestFailure(msg.err)
		}
		m.rebuildReminderTable()
		return m, nil

	case vehicleChoicesMsg:
		return m.handleVehicleChoices(msg)

	case savedMsg:
		return m.handleSaved(msg)

	case deletedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + requestFailure(msg.err)
			return m, nil
		}
		m.status = "deleted"
		if msg.reminder {
			return m, m.loadRemindersCmd()
		}
		return m, m.loadVehiclesCmd()

	case statusChangedMsg:
		if msg.err != nil {
			m.status = "status change failed: " + requestFailure(msg.err)
			return m, nil
		}
		m.status = ""
		return m, m.loadRemindersCmd()

	case tea.KeyMsg:
		switch {
		case m.screen != screenMain:
			return m.updateAuthKey(msg)
		case m.overlay != overlayNone:
			return m.updateOverlayKey(msg)
		default:
			return m.updateMainKey(msg)
		}
	}
	return m, nil
}

// requestFailure turns a gateway error into a one-line status message.
// Field-level problems are already merged into the form by FinishSubmit and
// are not repeated here.
func requestFailure(err error) string {
	var ve *api.ValidationError
	var se *api.ServerError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrUnavailable):
		return "cannot reach the server"
	case errors.Is(err, api.ErrUnauthorized):
		return "session expired"
	case errors.As(err, &ve):
		if ve.Message != "" {
			return ve.Message
		}
		return "request rejected"
	case errors.As(err, &se):
		if se.Message != "" {
			return se.Message
		}
		return "server error"
	default:
		return err.Error()
	}
}

func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.register {
		if m.registerForm == nil {
			return m, nil
		}
		if !m.registerForm.FinishSubmit(msg.err) {
			m.status = requestFailure(msg.err)
			return m, nil
		}
	} else {
		if !m.loginForm.FinishSubmit(msg.err) {
			m.status = requestFailure(msg.err)
			return m, nil
		}
	}
	m.screen = screenMain
	m.tab = tabVehicles
	m.status = ""
	return m, tea.Batch(m.loadVehiclesCmd(), m.loadRemindersCmd())
}

func (m Model) handleVehicleChoices(msg vehicleChoicesMsg) (tea.Model, tea.Cmd) {
	if m.overlay != overlayReminderForm || m.reminderForm == nil {
		return m, nil
	}
	if msg.err != nil {
		m.status = "loading vehicles failed: " + requestFailure(msg.err)
		return m, nil
	}
	m.vehicleChoices = msg.items
	m.choiceIdx = 0
	if m.reminderForm.Vehicle != nil {
		for i, v := range msg.items {
			if v.ID == m.reminderForm.Vehicle.ID {
				m.choiceIdx = i
				break
			}
		}
	} else if len(msg.items) > 0 {
		v := msg.items[0]
		m.reminderForm.Vehicle = &v
	}
	return m, nil
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.reminder {
		if m.reminderForm == nil {
			return m, nil
		}
		if !m.reminderForm.FinishSubmit(msg.err) {
			m.status = requestFailure(msg.err)
			return m, nil
		}
		m.closeOverlay()
		m.status = "reminder saved"
		return m, m.loadRemindersCmd()
	}
	if m.vehicleForm == nil {
		return m, nil
	}
	if !m.vehicleForm.FinishSubmit(msg.err) {
		m.status = requestFailure(msg.err)
		return m, nil
	}
	m.closeOverlay()
	m.status = "vehicle saved"
	return m, m.loadVehiclesCmd()
}

// resetToLogin drops every piece of authenticated state and shows a fresh
// login screen.
func (m Model) resetToLogin(status string) (tea.Model, tea.Cmd) {
	m.screen = screenLogin
	m.overlay = overlayNone
	m.vehicleForm = nil
	m.reminderForm = nil
	m.registerForm = nil
	m.loginForm = form.NewLoginForm()
	m.authInputs = loginInputs()
	m.authFocus = 0
	m.status = status
	return m, m.authInputs[0].Focus()
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	m.auth.Logout(context.Background())
	return m.resetToLogin("signed out")
}

func (m Model) tableHeight() int {
	h := m.height - 9
	if h < 4 {
		h = 4
	}
	if h > 20 {
		h = 20
	}
	return h
}

func (m *Model) rebuildVehicleTable() {
	cur := m.vehicleTable.Cursor()
	rows := vehicleRows(m.vehicles.Items(), m.now(), m.leaseWarnDays)
	m.vehicleTable = newTable(vehicleColumns, m.vehicles.Sort(), rows, m.tableHeight())
	if cur > 0 && cur < len(rows) {
		m.vehicleTable.SetCursor(cur)
	}
}

func (m *Model) rebuildReminderTable() {
	cur := m.reminderTable.Cursor()
	rows := reminderRows(m.reminders.Items())
	m.reminderTable = newTable(reminderColumns, m.reminders.Sort(), rows, m.tableHeight())
	if cur > 0 && cur < len(rows) {
		m.reminderTable.SetCursor(cur)
	}
}

func (m Model) selectedVehicle() (models.Vehicle, bool) {
	items := m.vehicles.Items()
	i := m.vehicleTable.Cursor()
	if i < 0 || i >= len(items) {
		return models.Vehicle{}, false
	}
	return items[i], true
}

func (m Model) selectedReminder() (models.Reminder, bool) {
	items := m.reminders.Items()
	i := m.reminderTable.Cursor()
	if i < 0 || i >= len(items) {
		return models.Reminder{}, false
	}
	return items[i], true
}

// ── main screen ──────────────────────────────────────────────────────────

func (m Model) updateMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		if m.tab == tabVehicles {
			m.tab = tabReminders
		} else {
			m.tab = tabVehicles
		}
		return m, nil

	case "r":
		if m.tab == tabVehicles {
			return m, m.loadVehiclesCmd()
		}
		return m, m.loadRemindersCmd()

	case "a":
		return m.openCreateForm()

	case "e", "enter":
		return m.openEditForm()

	case "d":
		return m.openConfirmDelete()

	case "c":
		return m.toggleSelectedStatus()

	case "o":
		return m.logout()

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return m.sortByDigit(int(key[0] - '1'))
	}

	var cmd tea.Cmd
	if m.tab == tabVehicles {
		m.vehicleTable, cmd = m.vehicleTable.Update(msg)
	} else {
		m.reminderTable, cmd = m.reminderTable.Update(msg)
	}
	return m, cmd
}

func (m Model) sortByDigit(i int) (tea.Model, tea.Cmd) {
	if m.tab == tabVehicles {
		if i >= len(vehicleColumns) {
			return m, nil
		}
		m.vehicles.SortBy(vehicleColumns[i].sortKey)
		m.rebuildVehicleTable()
		return m, m.loadVehiclesCmd()
	}
	if i >= len(reminderColumns) {
		return m, nil
	}
	m.reminders.SortBy(reminderColumns[i].sortKey)
	m.rebuildReminderTable()
	return m, m.loadRemindersCmd()
}

func (m Model) openConfirmDelete() (tea.Model, tea.Cmd) {
	if m.tab == tabVehicles {
		v, ok := m.selectedVehicle()
		if !ok {
			return m, nil
		}
		m.confirmID = v.ID
		m.confirmLabel = "vehicle " + v.LicensePlate
	} else {
		r, ok := m.selectedReminder()
		if !ok {
			return m, nil
		}
		m.confirmID = r.ID
		m.confirmLabel = fmt.Sprintf("reminder %q", r.Title)
	}
	m.overlay = overlayConfirmDelete
	return m, nil
}

func (m Model) toggleSelectedStatus() (tea.Model, tea.Cmd) {
	if m.tab != tabReminders {
		return m, nil
	}
	r, ok := m.selectedReminder()
	if !ok {
		return m, nil
	}
	return m, m.toggleStatusCmd(r.ID, r.Status != models.StatusCompleted)
}
