package models

// ReminderType classifies what a reminder is about.
type ReminderType string

const (
	ReminderLeaseEnd     ReminderType = "LEASE_END"
	ReminderLicenseCheck ReminderType = "LICENSE_CHECK"
	ReminderTUV          ReminderType = "TUV"
	ReminderInsurance    ReminderType = "INSURANCE"
	ReminderMaintenance  ReminderType = "MAINTENANCE"
	ReminderOther        ReminderType = "OTHER"
)

// ReminderTypes lists all valid types in display order.
func ReminderTypes() []ReminderType {
	return []ReminderType{
		ReminderLeaseEnd,
		ReminderLicenseCheck,
		ReminderTUV,
		ReminderInsurance,
		ReminderMaintenance,
		ReminderOther,
	}
}

func (t ReminderType) Valid() bool {
	switch t {
	case ReminderLeaseEnd, ReminderLicenseCheck, ReminderTUV,
		ReminderInsurance, ReminderMaintenance, ReminderOther:
		return true
	}
	return false
}

// ReminderStatus is assigned by the server. In particular OVERDUE is a
// server-side derivation; the client displays whatever it was given and
// never recomputes it locally.
type ReminderStatus string

const (
	StatusPending   ReminderStatus = "PENDING"
	StatusCompleted ReminderStatus = "COMPLETED"
	StatusOverdue   ReminderStatus = "OVERDUE"
)

// Reminder is a maintenance or compliance task attached to a vehicle.
//
// Vehicle is a by-value snapshot taken when the reminder was saved, not a
// live reference: editing the vehicle afterwards does not rewrite the
// snapshot embedded here.
type Reminder struct {
	ID          int64          `json:"id,omitempty"`
	Vehicle     Vehicle        `json:"vehicle"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	DueDate     Date           `json:"dueDate"`
	Type        ReminderType   `json:"type"`
	Status      ReminderStatus `json:"status,omitempty"`
}
