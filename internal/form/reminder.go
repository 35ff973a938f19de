package form

import (
	"context"
	"strings"

	"fleetcli/internal/models"
)

// ReminderSaver is the slice of the reminder service the form needs.
type ReminderSaver interface {
	Create(ctx context.Context, r models.Reminder) (models.Reminder, error)
	Update(ctx context.Context, id int64, r models.Reminder) (models.Reminder, error)
}

// ReminderForm edits one reminder. The vehicle is chosen from a list and
// embedded by value: whatever snapshot was selected at save time travels
// with the reminder and is not updated retroactively.
type ReminderForm struct {
	Title       string
	Description string
	DueDate     string // wire format, e.g. 2026-03-31
	Type        models.ReminderType
	Vehicle     *models.Vehicle

	Errors     map[string]string
	Submitting bool

	editing *models.Reminder
}

// NewReminderForm opens the form seeded from r (edit mode) or with create
// defaults: maintenance type, everything else empty.
func NewReminderForm(r *models.Reminder) *ReminderForm {
	f := &ReminderForm{Errors: map[string]string{}, Type: models.ReminderMaintenance}
	if r == nil {
		return f
	}
	rr := *r
	f.editing = &rr
	f.Title = r.Title
	f.Description = r.Description
	f.DueDate = r.DueDate.String()
	if r.Type != "" {
		f.Type = r.Type
	}
	vehicle := r.Vehicle
	f.Vehicle = &vehicle
	return f
}

func (f *ReminderForm) Editing() bool { return f.editing != nil }

// EditingID returns the id of the reminder being edited, or 0 in create mode.
func (f *ReminderForm) EditingID() int64 {
	if f.editing == nil {
		return 0
	}
	return f.editing.ID
}

// Validate recomputes every field violation at once.
func (f *ReminderForm) Validate() map[string]string {
	errs := map[string]string{}

	if f.Vehicle == nil {
		errs["vehicle"] = "vehicle is required"
	}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "title is required"
	}
	if d := strings.TrimSpace(f.DueDate); d == "" {
		errs["dueDate"] = "due date is required"
	} else if _, err := models.ParseDate(d); err != nil {
		errs["dueDate"] = "invalid date, use YYYY-MM-DD"
	}
	if f.Type == "" {
		errs["type"] = "type is required"
	} else if !f.Type.Valid() {
		errs["type"] = "unknown reminder type"
	}

	f.Errors = errs
	return errs
}

// Payload builds the request body. New reminders start PENDING; on edit the
// current status is preserved so saving a completed reminder does not
// silently reopen it.
func (f *ReminderForm) Payload() models.Reminder {
	due, _ := models.ParseDate(strings.TrimSpace(f.DueDate))
	r := models.Reminder{
		Vehicle:     *f.Vehicle,
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		DueDate:     due,
		Type:        f.Type,
		Status:      models.StatusPending,
	}
	if f.editing != nil && f.editing.Status != "" {
		r.Status = f.editing.Status
	}
	return r
}

func (f *ReminderForm) BeginSubmit() bool {
	if len(f.Validate()) > 0 {
		return false
	}
	f.Submitting = true
	return true
}

func (f *ReminderForm) FinishSubmit(err error) bool {
	f.Submitting = false
	if err == nil {
		return true
	}
	mergeServerErrors(f.Errors, err)
	return false
}

// Submit runs the whole protocol synchronously; see VehicleForm.Submit.
func (f *ReminderForm) Submit(ctx context.Context, svc ReminderSaver) (models.Reminder, error) {
	if !f.BeginSubmit() {
		return models.Reminder{}, ErrInvalidForm
	}

	var (
		saved models.Reminder
		err   error
	)
	if f.editing != nil {
		saved, err = svc.Update(ctx, f.editing.ID, f.Payload())
	} else {
		saved, err = svc.Create(ctx, f.Payload())
	}
	if !f.FinishSubmit(err) {
		return models.Reminder{}, err
	}
	return saved, nil
}
