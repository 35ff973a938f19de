package form

import (
	"context"
	"strconv"
	"strings"
	"time"

	"fleetcli/internal/models"
)

// VehicleSaver is the slice of the vehicle service the form needs.
type VehicleSaver interface {
	Create(ctx context.Context, v models.Vehicle) (models.Vehicle, error)
	Update(ctx context.Context, id int64, v models.Vehicle) (models.Vehicle, error)
}

// VehicleForm edits one vehicle. Field values are kept as entered; parsing
// happens during validation.
type VehicleForm struct {
	LicensePlate string
	Brand        string
	Model        string
	Year         string
	DriverName   string
	DriverEmail  string
	LeaseEndDate string // wire format, e.g. 2026-03-31

	Errors     map[string]string
	Submitting bool

	editing *models.Vehicle
	now     func() time.Time
}

// NewVehicleForm opens the form. A non-nil vehicle seeds the fields (edit
// mode); nil resets to empty defaults (create mode). Errors always start
// clean.
func NewVehicleForm(v *models.Vehicle) *VehicleForm {
	f := &VehicleForm{Errors: map[string]string{}, now: time.Now}
	if v == nil {
		return f
	}
	vv := *v
	f.editing = &vv
	f.LicensePlate = v.LicensePlate
	f.Brand = v.Brand
	f.Model = v.Model
	if v.Year != nil {
		f.Year = strconv.Itoa(*v.Year)
	}
	f.DriverName = v.DriverName
	f.DriverEmail = v.DriverEmail
	if v.LeaseEndDate != nil {
		f.LeaseEndDate = v.LeaseEndDate.String()
	}
	return f
}

// Editing reports whether the form updates an existing vehicle.
func (f *VehicleForm) Editing() bool { return f.editing != nil }

// EditingID returns the id of the vehicle being edited, or 0 in create mode.
func (f *VehicleForm) EditingID() int64 {
	if f.editing == nil {
		return 0
	}
	return f.editing.ID
}

// Validate recomputes every field violation at once and stores the result in
// Errors. An empty map means the form is submittable.
func (f *VehicleForm) Validate() map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(f.LicensePlate) == "" {
		errs["licensePlate"] = "license plate is required"
	}
	if strings.TrimSpace(f.Brand) == "" {
		errs["brand"] = "brand is required"
	}
	if strings.TrimSpace(f.Model) == "" {
		errs["model"] = "model is required"
	}
	if y := strings.TrimSpace(f.Year); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || year < 1900 || year > f.now().Year()+1 {
			errs["year"] = "invalid year"
		}
	}
	if e := strings.TrimSpace(f.DriverEmail); e != "" && !validEmail(e) {
		errs["driverEmail"] = "invalid email address"
	}
	if d := strings.TrimSpace(f.LeaseEndDate); d != "" {
		if _, err := models.ParseDate(d); err != nil {
			errs["leaseEndDate"] = "invalid date, use YYYY-MM-DD"
		}
	}

	f.Errors = errs
	return errs
}

// Payload builds the request body. Call only after Validate returned clean.
func (f *VehicleForm) Payload() models.Vehicle {
	v := models.Vehicle{
		LicensePlate: strings.TrimSpace(f.LicensePlate),
		Brand:        strings.TrimSpace(f.Brand),
		Model:        strings.TrimSpace(f.Model),
		DriverName:   strings.TrimSpace(f.DriverName),
		DriverEmail:  strings.TrimSpace(f.DriverEmail),
	}
	if y := strings.TrimSpace(f.Year); y != "" {
		if year, err := strconv.Atoi(y); err == nil {
			v.Year = &year
		}
	}
	if d := strings.TrimSpace(f.LeaseEndDate); d != "" {
		if date, err := models.ParseDate(d); err == nil {
			v.LeaseEndDate = &date
		}
	}
	return v
}

// BeginSubmit validates and flips Submitting on success. A false return
// means the submit was blocked locally and no request may be sent.
func (f *VehicleForm) BeginSubmit() bool {
	if len(f.Validate()) > 0 {
		return false
	}
	f.Submitting = true
	return true
}

// FinishSubmit applies the submit outcome. True means the dialog can close;
// on failure the form stays open, with any server-reported field problems
// merged into Errors.
func (f *VehicleForm) FinishSubmit(err error) bool {
	f.Submitting = false
	if err == nil {
		return true
	}
	mergeServerErrors(f.Errors, err)
	return false
}

// Submit runs the whole protocol synchronously. The TUI uses the
// BeginSubmit/FinishSubmit halves around its command goroutine instead.
func (f *VehicleForm) Submit(ctx context.Context, svc VehicleSaver) (models.Vehicle, error) {
	if !f.BeginSubmit() {
		return models.Vehicle{}, ErrInvalidForm
	}

	var (
		saved models.Vehicle
		err   error
	)
	if f.editing != nil {
		saved, err = svc.Update(ctx, f.editing.ID, f.Payload())
	} else {
		saved, err = svc.Create(ctx, f.Payload())
	}
	if !f.FinishSubmit(err) {
		return models.Vehicle{}, err
	}
	return saved, nil
}
