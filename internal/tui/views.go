package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	switch {
	case m.screen != screenMain:
		return m.authView()
	case m.overlay == overlayVehicleForm:
		return m.vehicleFormView()
	case m.overlay == overlayReminderForm:
		return m.reminderFormView()
	case m.overlay == overlayConfirmDelete:
		return m.confirmView()
	default:
		return m.mainView()
	}
}

// inputRow renders one labeled field with its validation error, if any.
func inputRow(label, view string, focused bool, fieldErr string) string {
	ls := labelStyle
	if focused {
		ls = labelFocusStyle
	}
	row := ls.Render(label) + view
	if fieldErr != "" {
		row += "\n" + labelStyle.Render("") + errStyle.Render(fieldErr)
	}
	return row
}

func (m Model) authView() string {
	var (
		title  string
		labels []string
		fields []string
		errs   map[string]string
		busy   bool
		hint   string
	)
	if m.screen == screenRegister {
		title = "Create account"
		labels, fields = registerLabels, registerFields
		errs = m.registerForm.Errors
		busy = m.registerForm.Submitting
		hint = "enter submit · tab next field · ctrl+r back to sign in · ctrl+c quit"
	} else {
		title = "Sign in"
		labels, fields = loginLabels, loginFields
		errs = m.loginForm.Errors
		busy = m.loginForm.Submitting
		hint = "enter submit · tab next field · ctrl+r register · ctrl+c quit"
	}

	rows := make([]string, 0, len(m.authInputs)+2)
	for i, in := range m.authInputs {
		rows = append(rows, inputRow(labels[i], in.View(), i == m.authFocus, errs[fields[i]]))
	}
	body := strings.Join(rows, "\n")
	if busy {
		body += "\n\n" + m.spin.View() + " contacting server"
	}

	out := titleStyle.Render("Fleet Manager") + "\n\n" +
		boxStyle.Render(titleStyle.Render(title)+"\n\n"+body) + "\n" +
		hintStyle.Render(hint)
	if m.status != "" {
		out += "\n" + errStyle.Render(m.status)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(out)
}

func (m Model) tabBar() string {
	vehicles, reminders := tabStyle, tabStyle
	if m.tab == tabVehicles {
		vehicles = tabActiveStyle
	} else {
		reminders = tabActiveStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		vehicles.Render(fmt.Sprintf("Vehicles (%d)", len(m.vehicles.Items()))),
		reminders.Render(fmt.Sprintf("Reminders (%d)", len(m.reminders.Items()))),
	)
}

func (m Model) mainView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Fleet Manager"))
	if sess, ok := m.auth.CurrentSession(); ok && sess.User.Username != "" {
		b.WriteString(hintStyle.Render("  " + sess.User.Username))
	}
	b.WriteString("\n\n")
	b.WriteString(m.tabBar())
	b.WriteString("\n\n")

	loading := m.vehicles.Loading()
	table := m.vehicleTable
	empty := "no vehicles yet, press a to add one"
	if m.tab == tabReminders {
		loading = m.reminders.Loading()
		table = m.reminderTable
		empty = "no reminders yet, press a to add one"
	}

	switch {
	case loading && len(table.Rows()) == 0:
		b.WriteString(m.spin.View() + " loading…")
	case len(table.Rows()) == 0:
		b.WriteString(hintStyle.Render(empty))
	default:
		b.WriteString(table.View())
		if loading {
			b.WriteString("\n" + m.spin.View() + " refreshing…")
		}
	}

	b.WriteString("\n\n")
	hints := "tab switch · 1-6 sort · r reload · a add · e edit · d delete · o sign out · q quit"
	if m.tab == tabReminders {
		hints = "tab switch · 1-5 sort · r reload · a add · e edit · d delete · c done/undone · o sign out · q quit"
	}
	b.WriteString(statusBarStyle.Render(hints))
	if m.status != "" {
		b.WriteString("\n" + warnStyle.Render(m.status))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) vehicleFormView() string {
	f := m.vehicleForm
	title := "Add vehicle"
	if f.Editing() {
		title = "Edit vehicle"
	}

	rows := make([]string, 0, len(m.formInputs))
	for i, in := range m.formInputs {
		rows = append(rows, inputRow(vehicleLabels[i], in.View(), i == m.formFocus, f.Errors[vehicleFields[i]]))
	}
	body := strings.Join(rows, "\n")
	if f.Submitting {
		body += "\n\n" + m.spin.View() + " saving…"
	}

	out := boxStyle.Render(titleStyle.Render(title)+"\n\n"+body) + "\n" +
		hintStyle.Render("enter save · tab next field · esc cancel")
	if m.status != "" {
		out += "\n" + errStyle.Render(m.status)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(out)
}

// pickerRow renders a ‹ value › chooser.
func pickerRow(label, value string, focused bool, fieldErr string) string {
	v := value
	if focused {
		v = "‹ " + value + " ›"
	}
	return inputRow(label, v, focused, fieldErr)
}

func (m Model) reminderFormView() string {
	f := m.reminderForm
	title := "Add reminder"
	if f.Editing() {
		title = "Edit reminder"
	}

	rows := make([]string, 0, len(m.formInputs)+2)
	for i, in := range m.formInputs {
		rows = append(rows, inputRow(reminderLabels[i], in.View(), i == m.formFocus, f.Errors[reminderFields[i]]))
	}

	vehicleVal := "loading…"
	switch {
	case f.Vehicle != nil:
		vehicleVal = f.Vehicle.LicensePlate
	case m.vehicleChoices != nil:
		vehicleVal = "no vehicles available"
	}
	rows = append(rows, pickerRow("Vehicle", vehicleVal, m.formFocus == len(m.formInputs), f.Errors["vehicle"]))
	rows = append(rows, pickerRow("Type", string(f.Type), m.formFocus == len(m.formInputs)+1, f.Errors["type"]))

	body := strings.Join(rows, "\n")
	if f.Submitting {
		body += "\n\n" + m.spin.View() + " saving…"
	}

	out := boxStyle.Render(titleStyle.Render(title)+"\n\n"+body) + "\n" +
		hintStyle.Render("enter save · tab next field · ←/→ change vehicle or type · esc cancel")
	if m.status != "" {
		out += "\n" + errStyle.Render(m.status)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(out)
}

func (m Model) confirmView() string {
	box := boxStyle.BorderForeground(colDanger).Render(
		errStyle.Render("Delete "+m.confirmLabel+"?") + "\n\n" +
			hintStyle.Render("y delete · n keep"))
	return lipgloss.NewStyle().Padding(1, 2).Render(box)
}
