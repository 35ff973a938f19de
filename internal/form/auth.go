package form

import (
	"context"
	"strings"

	"fleetcli/internal/models"
)

// Authenticator is the slice of the auth service the entry forms need.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)
	Register(ctx context.Context, reg models.Registration) (models.Session, error)
}

// LoginForm collects credentials for the unauthenticated entry point.
type LoginForm struct {
	Username string
	Password string

	Errors     map[string]string
	Submitting bool
}

func NewLoginForm() *LoginForm {
	return &LoginForm{Errors: map[string]string{}}
}

func (f *LoginForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Username) == "" {
		errs["username"] = "username is required"
	}
	if f.Password == "" {
		errs["password"] = "password is required"
	}
	f.Errors = errs
	return errs
}

func (f *LoginForm) BeginSubmit() bool {
	if len(f.Validate()) > 0 {
		return false
	}
	f.Submitting = true
	return true
}

func (f *LoginForm) FinishSubmit(err error) bool {
	f.Submitting = false
	if err == nil {
		return true
	}
	mergeServerErrors(f.Errors, err)
	return false
}

func (f *LoginForm) Credentials() models.Credentials {
	return models.Credentials{
		Username: strings.TrimSpace(f.Username),
		Password: f.Password,
	}
}

func (f *LoginForm) Submit(ctx context.Context, auth Authenticator) (models.Session, error) {
	if !f.BeginSubmit() {
		return models.Session{}, ErrInvalidForm
	}
	sess, err := auth.Login(ctx, f.Credentials())
	if !f.FinishSubmit(err) {
		return models.Session{}, err
	}
	return sess, nil
}

// RegisterForm collects the profile for account creation.
type RegisterForm struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string

	Errors     map[string]string
	Submitting bool
}

func NewRegisterForm() *RegisterForm {
	return &RegisterForm{Errors: map[string]string{}}
}

func (f *RegisterForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Username) == "" {
		errs["username"] = "username is required"
	}
	if e := strings.TrimSpace(f.Email); e == "" {
		errs["email"] = "email is required"
	} else if !validEmail(e) {
		errs["email"] = "invalid email address"
	}
	if f.Password == "" {
		errs["password"] = "password is required"
	}
	f.Errors = errs
	return errs
}

func (f *RegisterForm) BeginSubmit() bool {
	if len(f.Validate()) > 0 {
		return false
	}
	f.Submitting = true
	return true
}

func (f *RegisterForm) FinishSubmit(err error) bool {
	f.Submitting = false
	if err == nil {
		return true
	}
	mergeServerErrors(f.Errors, err)
	return false
}

func (f *RegisterForm) Registration() models.Registration {
	return models.Registration{
		Username:  strings.TrimSpace(f.Username),
		Email:     strings.TrimSpace(f.Email),
		Password:  f.Password,
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
	}
}

func (f *RegisterForm) Submit(ctx context.Context, auth Authenticator) (models.Session, error) {
	if !f.BeginSubmit() {
		return models.Session{}, ErrInvalidForm
	}
	sess, err := auth.Register(ctx, f.Registration())
	if !f.FinishSubmit(err) {
		return models.Session{}, err
	}
	return sess, nil
}
