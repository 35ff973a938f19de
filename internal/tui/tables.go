package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"fleetcli/internal/models"
)

// Column layouts. The digit shown in the header doubles as the sort
// keybinding; sortKey is what goes on the wire.
type column struct {
	title   string
	width   int
	sortKey string
}

var vehicleColumns = []column{
	{"Plate", 12, "licensePlate"},
	{"Brand", 14, "brand"},
	{"Model", 14, "model"},
	{"Year", 6, "year"},
	{"Driver", 18, "driverName"},
	{"Lease end", 16, "leaseEndDate"},
}

var reminderColumns = []column{
	{"Vehicle", 12, "vehicle.licensePlate"},
	{"Title", 22, "title"},
	{"Due", 12, "dueDate"},
	{"Type", 14, "type"},
	{"Status", 12, "status"},
}

// sortIndicator marks the active sort column in the header.
func sortIndicator(spec models.SortSpec, key string) string {
	if spec.Key != key {
		return ""
	}
	if spec.Direction == models.Desc {
		return " ↓"
	}
	return " ↑"
}

func buildColumns(cols []column, spec models.SortSpec) []table.Column {
	out := make([]table.Column, len(cols))
	for i, c := range cols {
		out[i] = table.Column{
			Title: fmt.Sprintf("%d %s%s", i+1, c.title, sortIndicator(spec, c.sortKey)),
			Width: c.width,
		}
	}
	return out
}

// leaseCell renders the lease end date, flagging leases that expire within
// warnDays and leases that already ran out.
func leaseCell(v models.Vehicle, now time.Time, warnDays int) string {
	days, ok := v.LeaseDaysLeft(now)
	if !ok {
		return "—"
	}
	date := v.LeaseEndDate.String()
	switch {
	case days < 0:
		return date + " (expired)"
	case days <= warnDays:
		return fmt.Sprintf("%s (%dd left)", date, days)
	default:
		return date
	}
}

func vehicleRows(items []models.Vehicle, now time.Time, warnDays int) []table.Row {
	rows := make([]table.Row, len(items))
	for i, v := range items {
		year := ""
		if v.Year != nil {
			year = strconv.Itoa(*v.Year)
		}
		driver := v.DriverName
		if driver == "" {
			driver = "unassigned"
		}
		rows[i] = table.Row{v.LicensePlate, v.Brand, v.Model, year, driver, leaseCell(v, now, warnDays)}
	}
	return rows
}

// statusCell renders the server-assigned status verbatim. OVERDUE is the
// server's call; the client never derives it from the due date. A blank
// status only happens on a not-yet-saved reminder and reads as PENDING.
func statusCell(r models.Reminder) string {
	if r.Status == "" {
		return string(models.StatusPending)
	}
	return string(r.Status)
}

func reminderRows(items []models.Reminder) []table.Row {
	rows := make([]table.Row, len(items))
	for i, r := range items {
		rows[i] = table.Row{
			r.Vehicle.LicensePlate,
			r.Title,
			r.DueDate.String(),
			string(r.Type),
			statusCell(r),
		}
	}
	return rows
}

func newTable(cols []column, spec models.SortSpec, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(buildColumns(cols, spec)),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(colAccent)
	s.Selected = s.Selected.Foreground(colText).Background(colSurface).Bold(true)
	t.SetStyles(s)
	return t
}
