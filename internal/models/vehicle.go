package models

import "time"

// Vehicle is a fleet vehicle as stored by the API. The id is assigned
// server-side; the client never mutates a vehicle except through an explicit
// update submission.
type Vehicle struct {
	ID           int64  `json:"id,omitempty"`
	LicensePlate string `json:"licensePlate"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         *int   `json:"year,omitempty"`
	DriverName   string `json:"driverName,omitempty"`
	DriverEmail  string `json:"driverEmail,omitempty"`
	LeaseEndDate *Date  `json:"leaseEndDate,omitempty"`
}

// Assigned reports whether a driver is attached to the vehicle.
func (v Vehicle) Assigned() bool {
	return v.DriverName != ""
}

// LeaseDaysLeft returns the number of whole days until the lease ends,
// relative to now. The second return is false when no lease end is set.
// Negative values mean the lease already expired.
func (v Vehicle) LeaseDaysLeft(now time.Time) (int, bool) {
	if v.LeaseEndDate == nil {
		return 0, false
	}
	today := DateOf(now)
	return int(v.LeaseEndDate.Sub(today.Time).Hours() / 24), true
}
