package authform

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	InvalidEmailMessage       = "Enter a valid email address."
	PasswordTooLongMessage    = "Password must be at most 72 bytes."
	InvalidCredentialsMessage = "Invalid email or password."
	EmailTakenMessage         = "Email already registered."
	SignInAgainMessage        = "Please sign in again."
	InvalidCSRFMessage        = "Invalid CSRF token."
	InvalidRequestMessage     = "Invalid request."
)

func checkName(field, label, v string) *FieldError {
	n := utf8.RuneCountInString(v)
	switch {
	case n == 0:
		return &FieldError{Field: field, Message: label + " is required."}
	case n > NameMaxLength:
		return &FieldError{Field: field, Message: label + " must be at most 80 characters."}
	}
	return nil
}

func checkEmail(v string) *FieldError {
	if v == "" || len(v) > EmailMaxLength {
		return &FieldError{Field: "email", Message: InvalidEmailMessage}
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v || !strings.Contains(v[strings.LastIndex(v, "@")+1:], ".") {
		return &FieldError{Field: "email", Message: InvalidEmailMessage}
	}
	return nil
}

func checkPassword(v string) *FieldError {
	switch {
	case utf8.RuneCountInString(v) < PasswordMinLength:
		return &FieldError{Field: "password", Message: PasswordTooShortMessage}
	case len(v) > PasswordMaxLength:
		return &FieldError{Field: "password", Message: PasswordTooLongMessage}
	}
	return nil
}

func collect(checks ...*FieldError) error {
	var errs ValidationErrors
	for _, fe := range checks {
		if fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// normalize trims the same fields the browser form trims.
func (d *SignupData) normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.TrimSpace(d.Email)
}

func (d *AccountSettingsData) normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.TrimSpace(d.Email)
	d.Password = strings.TrimSpace(d.Password)
}

func validateSignup(d *SignupData) error {
	return collect(
		checkName("first_name", "First name", d.FirstName),
		checkName("last_name", "Last name", d.LastName),
		checkEmail(d.Email),
		checkPassword(d.Password),
	)
}

func validateAccountSettings(d *AccountSettingsData) error {
	var pw *FieldError
	if d.Password != "" {
		pw = checkPassword(d.Password)
	}
	return collect(
		checkName("first_name", "First name", d.FirstName),
		checkName("last_name", "Last name", d.LastName),
		checkEmail(d.Email),
		pw,
	)
}
