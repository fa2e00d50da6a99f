package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", false},
		{"single rune", "A", false},
		{"two runes", "Jo", true},
		{"accented runes counted as runes", "Zoé", true},
		{"two-rune accented name", "Aé", true},
		{"full name", "Fontaine", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ValidName(tc.input))
		})
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", false},
		{"missing at", "claire.example.com", false},
		{"missing domain", "claire@", false},
		{"missing tld", "claire@example", false},
		{"whitespace in local part", "cl aire@example.com", false},
		{"valid", "claire@example.com", true},
		{"subdomain", "claire@mail.example.com", true},
		{"plus tag", "claire+training@example.com", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ValidEmail(tc.input))
		})
	}
}

func TestValidPassword(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidPassword(""))
	assert.False(t, ValidPassword("short7!"))
	assert.True(t, ValidPassword("longenough"))
	// Rune count, not byte count: 8 accented runes exceed 8 bytes.
	assert.True(t, ValidPassword("éééééééé"))
}

func TestFieldValidators(t *testing.T) {
	t.Parallel()

	assert.Error(t, NameValidator("first name")("J"))
	assert.NoError(t, NameValidator("first name")("Jo"))
	assert.ErrorContains(t, NameValidator("last name")("X"), "last name")

	assert.Error(t, EmailValidator("nope"))
	assert.NoError(t, EmailValidator("claire@example.com"))

	assert.Error(t, PasswordValidator("short"))
	assert.NoError(t, PasswordValidator("longenough"))
}

func TestAccountGate(t *testing.T) {
	t.Parallel()

	valid := func() *Form {
		f := NewForm(RoleStudent)
		f.FirstName = "Claire"
		f.LastName = "Fontaine"
		f.Email = "claire@example.com"
		f.Password = "longenough"
		f.ConfirmPassword = "longenough"
		return f
	}

	tests := []struct {
		name   string
		mutate func(*Form)
		want   bool
	}{
		{"all fields valid", func(*Form) {}, true},
		{"short first name", func(f *Form) { f.FirstName = "C" }, false},
		{"short last name", func(f *Form) { f.LastName = "F" }, false},
		{"bad email", func(f *Form) { f.Email = "claire@" }, false},
		{"short password", func(f *Form) { f.Password = "short"; f.ConfirmPassword = "short" }, false},
		{"mismatched confirmation", func(f *Form) { f.ConfirmPassword = "different11" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := valid()
			tc.mutate(f)
			assert.Equal(t, tc.want, accountGate(f))
		})
	}
}

func TestTermsGate(t *testing.T) {
	t.Parallel()

	f := NewForm(RoleOrg)
	assert.False(t, termsGate(f))
	f.AcceptTerms = true
	assert.True(t, termsGate(f))
}

func TestForm_FieldErrors(t *testing.T) {
	t.Parallel()

	f := NewForm(RoleStudent)

	_, ok := f.FieldError(FieldEmail)
	assert.False(t, ok)

	f.SetFieldError(FieldEmail, "cette adresse email est déjà utilisée")
	msg, ok := f.FieldError(FieldEmail)
	assert.True(t, ok)
	assert.Equal(t, "cette adresse email est déjà utilisée", msg)

	f.ClearFieldError(FieldEmail)
	_, ok = f.FieldError(FieldEmail)
	assert.False(t, ok)

	// A zero-value form must tolerate SetFieldError too.
	var zero Form
	zero.SetFieldError("password", "too weak")
	_, ok = zero.FieldError("password")
	assert.True(t, ok)
}
