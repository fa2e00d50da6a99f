// Package account implements the progressive registration flow: the
// role-conditioned step sequence, the per-step field validators that gate
// forward navigation, and the submission boundary that hands a validated
// form to the Registrar collaborator.
package account

import "context"

// Role is the account type selected on the first registration step. It is
// the discriminant that keys the step sequence: every role currently maps to
// the same two steps, but each stays independently keyed so a role can grow
// extra steps without touching caller code.
type Role string

const (
	RoleStudent Role = "student"
	RoleOrg     Role = "org"
	RoleManager Role = "manager"
	RoleAirport Role = "airport"
	RoleAdmin   Role = "admin"
)

// Roles lists every registrable role in display order.
var Roles = []Role{RoleStudent, RoleOrg, RoleManager, RoleAirport, RoleAdmin}

// Form is the registration wizard's accumulated state. Fields belonging to
// not-yet-visited steps hold their zero values. The form survives failed
// submissions untouched so the user can correct and retry in place.
type Form struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Role            Role
	AcceptTerms     bool

	fieldErrors map[string]string
}

// NewForm returns an empty form for the given role.
func NewForm(role Role) *Form {
	return &Form{Role: role, fieldErrors: map[string]string{}}
}

// SetFieldError attaches a persistent field-level message, e.g. the
// duplicate-email message after a submission conflict. The transient
// notification and the field-level error are deliberately both surfaced so
// the user can correct the exact offending input.
func (f *Form) SetFieldError(field, message string) {
	if f.fieldErrors == nil {
		f.fieldErrors = map[string]string{}
	}
	f.fieldErrors[field] = message
}

// FieldError returns the persistent message attached to field, if any.
func (f *Form) FieldError(field string) (string, bool) {
	msg, ok := f.fieldErrors[field]
	return msg, ok
}

// ClearFieldError removes the persistent message for field. Called when the
// user edits the field so a stale error never outlives a correction.
func (f *Form) ClearFieldError(field string) {
	delete(f.fieldErrors, field)
}

// Request is the payload handed to the Registrar once every gate has passed.
type Request struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
}

// Request packages the form into the collaborator payload.
func (f *Form) Request() Request {
	return Request{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
		Role:      f.Role,
	}
}

// Registrar is the injected registration collaborator. Implementations live
// outside this package (internal/api for the HTTP client, test fakes in
// package tests); the flow only interprets the returned confirmation or
// error.
type Registrar interface {
	// Register creates the account and returns a human-readable confirmation
	// message. Duplicate-email rejections should be returned as an error
	// implementing ConflictField() string (see IsDuplicateEmail).
	Register(ctx context.Context, req Request) (string, error)
}
