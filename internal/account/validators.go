package account

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Field length requirements for the account step.
const (
	MinNameLen     = 2
	MinPasswordLen = 8
)

// emailPattern accepts the usual local@domain.tld shape and rejects
// whitespace and missing parts. It is a gate, not an RFC parser; the server
// remains the authority on deliverability.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidName reports whether a first or last name meets the minimum length.
func ValidName(name string) bool {
	return utf8.RuneCountInString(name) >= MinNameLen
}

// ValidEmail reports whether addr matches the address grammar.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// ValidPassword reports whether pw meets the minimum length.
func ValidPassword(pw string) bool {
	return utf8.RuneCountInString(pw) >= MinPasswordLen
}

// accountGate is the forward gate of the account step: identity fields and
// password pair must all be valid before the terms step is reachable.
func accountGate(f *Form) bool {
	return ValidName(f.FirstName) &&
		ValidName(f.LastName) &&
		ValidEmail(f.Email) &&
		ValidPassword(f.Password) &&
		f.ConfirmPassword == f.Password
}

// termsGate is the gate of the final step: a single explicit acceptance flag.
func termsGate(f *Form) bool {
	return f.AcceptTerms
}

// Field validators for huh inputs. Each returns nil when the field is
// acceptable and a short message otherwise.

// NameValidator validates a first or last name input.
func NameValidator(label string) func(string) error {
	return func(s string) error {
		if !ValidName(s) {
			return fmt.Errorf("%s must be at least %d characters", label, MinNameLen)
		}
		return nil
	}
}

// EmailValidator validates an email input.
func EmailValidator(s string) error {
	if !ValidEmail(s) {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

// PasswordValidator validates a password input.
func PasswordValidator(s string) error {
	if !ValidPassword(s) {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}
