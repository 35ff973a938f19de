package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fleetcli/internal/form"
	"fleetcli/internal/models"
)

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 32
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func loginInputs() []textinput.Model {
	return []textinput.Model{
		newInput("username", false),
		newInput("password", true),
	}
}

func registerInputs() []textinput.Model {
	return []textinput.Model{
		newInput("username", false),
		newInput("name@example.com", false),
		newInput("password", true),
		newInput("first name", false),
		newInput("last name", false),
	}
}

// Labels and error keys, index-aligned with the input slices.
var (
	loginFields    = []string{"username", "password"}
	registerFields = []string{"username", "email", "password", "firstName", "lastName"}
	vehicleFields  = []string{"licensePlate", "brand", "model", "year", "driverName", "driverEmail", "leaseEndDate"}
	reminderFields = []string{"title", "description", "dueDate"}

	loginLabels    = []string{"Username", "Password"}
	registerLabels = []string{"Username", "Email", "Password", "First name", "Last name"}
	vehicleLabels  = []string{"Plate", "Brand", "Model", "Year", "Driver", "Driver email", "Lease end"}
	reminderLabels = []string{"Title", "Description", "Due date"}
)

func vehicleFormInputs(f *form.VehicleForm) []textinput.Model {
	inputs := []textinput.Model{
		newInput("AB-123-CD", false),
		newInput("brand", false),
		newInput("model", false),
		newInput("2024", false),
		newInput("driver name", false),
		newInput("driver@example.com", false),
		newInput("YYYY-MM-DD", false),
	}
	values := []string{f.LicensePlate, f.Brand, f.Model, f.Year, f.DriverName, f.DriverEmail, f.LeaseEndDate}
	for i := range inputs {
		inputs[i].SetValue(values[i])
	}
	return inputs
}

func reminderFormInputs(f *form.ReminderForm) []textinput.Model {
	inputs := []textinput.Model{
		newInput("title", false),
		newInput("description", false),
		newInput("YYYY-MM-DD", false),
	}
	values := []string{f.Title, f.Description, f.DueDate}
	for i := range inputs {
		inputs[i].SetValue(values[i])
	}
	return inputs
}

// ── auth screens ─────────────────────────────────────────────────────────

func (m Model) updateAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+r":
		return m.toggleAuthScreen()
	case "tab", "down":
		return m.cycleAuthFocus(1)
	case "shift+tab", "up":
		return m.cycleAuthFocus(-1)
	case "enter":
		return m.submitAuth()
	}
	var cmd tea.Cmd
	m.authInputs[m.authFocus], cmd = m.authInputs[m.authFocus].Update(msg)
	return m, cmd
}

func (m Model) toggleAuthScreen() (tea.Model, tea.Cmd) {
	if m.screen == screenLogin {
		m.screen = screenRegister
		m.registerForm = form.NewRegisterForm()
		m.authInputs = registerInputs()
	} else {
		m.screen = screenLogin
		m.loginForm = form.NewLoginForm()
		m.authInputs = loginInputs()
	}
	m.authFocus = 0
	m.status = ""
	return m, m.authInputs[0].Focus()
}

func (m Model) cycleAuthFocus(delta int) (tea.Model, tea.Cmd) {
	m.authInputs[m.authFocus].Blur()
	m.authFocus = (m.authFocus + delta + len(m.authInputs)) % len(m.authInputs)
	return m, m.authInputs[m.authFocus].Focus()
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.screen == screenRegister {
		f := m.registerForm
		if f.Submitting {
			return m, nil
		}
		f.Username = m.authInputs[0].Value()
		f.Email = m.authInputs[1].Value()
		f.Password = m.authInputs[2].Value()
		f.FirstName = m.authInputs[3].Value()
		f.LastName = m.authInputs[4].Value()
		if !f.BeginSubmit() {
			return m, nil
		}
		return m, m.registerCmd()
	}
	f := m.loginForm
	if f.Submitting {
		return m, nil
	}
	f.Username = m.authInputs[0].Value()
	f.Password = m.authInputs[1].Value()
	if !f.BeginSubmit() {
		return m, nil
	}
	return m, m.loginCmd()
}

// ── form overlays ────────────────────────────────────────────────────────

func (m Model) openCreateForm() (tea.Model, tea.Cmd) {
	if m.tab == tabVehicles {
		m.vehicleForm = form.NewVehicleForm(nil)
		m.formInputs = vehicleFormInputs(m.vehicleForm)
		m.overlay = overlayVehicleForm
		m.formFocus = 0
		return m, m.formInputs[0].Focus()
	}
	m.reminderForm = form.NewReminderForm(nil)
	return m.openReminderOverlay()
}

func (m Model) openEditForm() (tea.Model, tea.Cmd) {
	if m.tab == tabVehicles {
		v, ok := m.selectedVehicle()
		if !ok {
			return m, nil
		}
		m.vehicleForm = form.NewVehicleForm(&v)
		m.formInputs = vehicleFormInputs(m.vehicleForm)
		m.overlay = overlayVehicleForm
		m.formFocus = 0
		return m, m.formInputs[0].Focus()
	}
	r, ok := m.selectedReminder()
	if !ok {
		return m, nil
	}
	m.reminderForm = form.NewReminderForm(&r)
	return m.openReminderOverlay()
}

func (m Model) openReminderOverlay() (tea.Model, tea.Cmd) {
	m.formInputs = reminderFormInputs(m.reminderForm)
	m.overlay = overlayReminderForm
	m.formFocus = 0
	m.vehicleChoices = nil
	m.choiceIdx = 0
	m.typeIdx = 0
	for i, t := range models.ReminderTypes() {
		if t == m.reminderForm.Type {
			m.typeIdx = i
			break
		}
	}
	return m, tea.Batch(m.formInputs[0].Focus(), m.loadVehicleChoicesCmd())
}

func (m *Model) closeOverlay() {
	m.overlay = overlayNone
	m.vehicleForm = nil
	m.reminderForm = nil
	m.formInputs = nil
	m.formFocus = 0
	m.vehicleChoices = nil
}

// formFieldCount includes the vehicle and type pickers on the reminder form.
func (m Model) formFieldCount() int {
	n := len(m.formInputs)
	if m.overlay == overlayReminderForm {
		n += 2
	}
	return n
}

func (m Model) updateOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay == overlayConfirmDelete {
		switch msg.String() {
		case "y", "enter":
			id := m.confirmID
			m.overlay = overlayNone
			return m, m.deleteCmd(id)
		case "n", "esc":
			m.overlay = overlayNone
		}
		return m, nil
	}

	onPicker := m.overlay == overlayReminderForm && m.formFocus >= len(m.formInputs)

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closeOverlay()
		return m, nil
	case "enter":
		return m.submitOverlay()
	case "tab", "down":
		return m.cycleFormFocus(1)
	case "shift+tab", "up":
		return m.cycleFormFocus(-1)
	case "left":
		if onPicker {
			return m.cyclePicker(-1)
		}
	case "right":
		if onPicker {
			return m.cyclePicker(1)
		}
	}

	var cmd tea.Cmd
	if m.formFocus < len(m.formInputs) {
		m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	}
	return m, cmd
}

func (m Model) cycleFormFocus(delta int) (tea.Model, tea.Cmd) {
	if m.formFocus < len(m.formInputs) {
		m.formInputs[m.formFocus].Blur()
	}
	n := m.formFieldCount()
	m.formFocus = (m.formFocus + delta + n) % n
	if m.formFocus < len(m.formInputs) {
		return m, m.formInputs[m.formFocus].Focus()
	}
	return m, nil
}

// cyclePicker handles left/right on the reminder form's vehicle and type
// rows.
func (m Model) cyclePicker(delta int) (tea.Model, tea.Cmd) {
	if m.formFocus == len(m.formInputs) { // vehicle picker
		if len(m.vehicleChoices) == 0 {
			return m, nil
		}
		m.choiceIdx = (m.choiceIdx + delta + len(m.vehicleChoices)) % len(m.vehicleChoices)
		v := m.vehicleChoices[m.choiceIdx]
		m.reminderForm.Vehicle = &v
		return m, nil
	}

	types := models.ReminderTypes()
	m.typeIdx = (m.typeIdx + delta + len(types)) % len(types)
	m.reminderForm.Type = types[m.typeIdx]
	return m, nil
}

func (m Model) submitOverlay() (tea.Model, tea.Cmd) {
	if m.overlay == overlayVehicleForm {
		f := m.vehicleForm
		if f.Submitting {
			return m, nil
		}
		f.LicensePlate = m.formInputs[0].Value()
		f.Brand = m.formInputs[1].Value()
		f.Model = m.formInputs[2].Value()
		f.Year = m.formInputs[3].Value()
		f.DriverName = m.formInputs[4].Value()
		f.DriverEmail = m.formInputs[5].Value()
		f.LeaseEndDate = m.formInputs[6].Value()
		if !f.BeginSubmit() {
			return m, nil
		}
		return m, m.saveVehicleCmd()
	}

	f := m.reminderForm
	if f.Submitting {
		return m, nil
	}
	f.Title = m.formInputs[0].Value()
	f.Description = m.formInputs[1].Value()
	f.DueDate = m.formInputs[2].Value()
	if !f.BeginSubmit() {
		return m, nil
	}
	return m, m.saveReminderCmd()
}
