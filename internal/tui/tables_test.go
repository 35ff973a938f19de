package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetcli/internal/models"
)

func date(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestLeaseCell(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		lease string
		want  string
	}{
		{name: "no lease", lease: "", want: "—"},
		{name: "far out", lease: "2027-06-30", want: "2027-06-30"},
		{name: "inside warn window", lease: "2026-03-15", want: "2026-03-15 (14d left)"},
		{name: "expired", lease: "2026-01-31", want: "2026-01-31 (expired)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := models.Vehicle{LicensePlate: "AB-123-CD"}
			if tt.lease != "" {
				d := date(t, tt.lease)
				v.LeaseEndDate = &d
			}
			assert.Equal(t, tt.want, leaseCell(v, now, 30))
		})
	}
}

func TestVehicleRows(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	year := 2021
	rows := vehicleRows([]models.Vehicle{
		{LicensePlate: "AB-123-CD", Brand: "Volvo", Model: "XC40", Year: &year, DriverName: "Sam Doe"},
		{LicensePlate: "EF-456-GH", Brand: "Skoda", Model: "Octavia"},
	}, now, 30)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"AB-123-CD", "Volvo", "XC40", "2021", "Sam Doe", "—"}, []string(rows[0]))
	assert.Equal(t, "unassigned", rows[1][4])
	assert.Equal(t, "", rows[1][3])
}

func TestStatusCellRendersServerStatusVerbatim(t *testing.T) {
	// OVERDUE is assigned by the server; a pending reminder keeps reading
	// PENDING no matter how far past its due date the clock is.
	pastDue := models.Reminder{DueDate: date(t, "2026-03-01"), Status: models.StatusPending}
	assert.Equal(t, "PENDING", statusCell(pastDue))

	overdue := models.Reminder{DueDate: date(t, "2026-03-01"), Status: models.StatusOverdue}
	assert.Equal(t, "OVERDUE", statusCell(overdue))

	done := models.Reminder{DueDate: date(t, "2026-03-01"), Status: models.StatusCompleted}
	assert.Equal(t, "COMPLETED", statusCell(done))

	blank := models.Reminder{DueDate: date(t, "2026-04-01")}
	assert.Equal(t, "PENDING", statusCell(blank))
}

func TestSortIndicator(t *testing.T) {
	spec := models.SortSpec{Key: "brand", Direction: models.Asc}
	assert.Equal(t, " ↑", sortIndicator(spec, "brand"))
	assert.Equal(t, "", sortIndicator(spec, "model"))

	spec = spec.Toggle("brand")
	assert.Equal(t, " ↓", sortIndicator(spec, "brand"))
}

func TestBuildColumnsNumbersHeaders(t *testing.T) {
	cols := buildColumns(vehicleColumns, models.SortSpec{Key: "year", Direction: models.Desc})
	require.Len(t, cols, len(vehicleColumns))
	assert.Equal(t, "1 Plate", cols[0].Title)
	assert.Equal(t, "4 Year ↓", cols[3].Title)
}
