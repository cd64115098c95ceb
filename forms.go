package authform

import (
	"strings"
	"unicode/utf8"

	"github.com/tinywasm/fmt"
)

// Policy selects how a list of server errors is mapped onto the form.
type Policy int

const (
	// MapThenAlert decorates every error that names a declared field and shows
	// the first one that does not in the alert.
	MapThenAlert Policy = iota
	// FormErrorPriority shows the last "form" error alone when there is one,
	// otherwise decorates declared fields and drops the rest.
	FormErrorPriority
)

func (p Policy) String() string {
	switch p {
	case MapThenAlert:
		return "map-then-alert"
	case FormErrorPriority:
		return "form-error-priority"
	}
	return "unknown"
}

type Field struct {
	Name string
	Trim bool
}

// Values is the field name to value map sent as the request body.
type Values map[string]string

// Validator is a local pre-submit check. It returns nil when values pass.
type Validator func(Values) *FieldError

// MinLength fails when field has fewer than n characters.
func MinLength(field string, n int, message string) Validator {
	return func(v Values) *FieldError {
		if utf8.RuneCountInString(v[field]) < n {
			return &FieldError{Field: field, Message: message}
		}
		return nil
	}
}

// FormConfig describes one form. Treat it as immutable once built.
type FormConfig struct {
	ID         string // form element id
	AlertID    string // top-level message element id
	Endpoint   string
	Fields     []Field
	Validators []Validator
	Policy     Policy
}

// HasField reports whether name is a declared input of the form.
// The "form" sentinel never is.
func (c FormConfig) HasField(name string) bool {
	if name == FormField {
		return false
	}
	for _, f := range c.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Collect reads every declared field through read, trimming where the field
// asks for it.
func (c FormConfig) Collect(read func(name string) string) Values {
	v := make(Values, len(c.Fields))
	for _, f := range c.Fields {
		s := read(f.Name)
		if f.Trim {
			s = strings.TrimSpace(s)
		}
		v[f.Name] = s
	}
	return v
}

// Validate runs the validators in order and returns the first failure.
func (c FormConfig) Validate(v Values) *FieldError {
	for _, check := range c.Validators {
		if fe := check(v); fe != nil {
			return fe
		}
	}
	return nil
}

const (
	APIPrefix         = "/api"
	PasswordMinLength = 8
	// PasswordMaxLength is in bytes: bcrypt refuses longer input.
	PasswordMaxLength = 72
	NameMaxLength     = 80
	EmailMaxLength    = 254

	PasswordTooShortMessage = "Password must be at least 8 characters."
)

var SignupForm = FormConfig{
	ID:       "signupForm",
	AlertID:  "signupFormAlert",
	Endpoint: APIPrefix + "/signup",
	Fields: []Field{
		{Name: "first_name", Trim: true},
		{Name: "last_name", Trim: true},
		{Name: "email", Trim: true},
		{Name: "password"},
	},
	Validators: []Validator{
		MinLength("password", PasswordMinLength, PasswordTooShortMessage),
	},
	Policy: MapThenAlert,
}

var SigninForm = FormConfig{
	ID:       "signinForm",
	AlertID:  "signinFormAlert",
	Endpoint: APIPrefix + "/signin",
	Fields: []Field{
		{Name: "email", Trim: true},
		{Name: "password"},
	},
	Policy: FormErrorPriority,
}

var AccountSettingsForm = FormConfig{
	ID:       "accountSettingsForm",
	AlertID:  "accountSettingsAlert",
	Endpoint: APIPrefix + "/account-settings",
	Fields: []Field{
		{Name: "first_name", Trim: true},
		{Name: "last_name", Trim: true},
		{Name: "email", Trim: true},
		{Name: "password", Trim: true},
	},
	Policy: MapThenAlert,
}

// SignupData is the /api/signup body.
type SignupData struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// SigninData is validated by SigninModule on both frontend and backend.
type SigninData struct {
	Email    string
	Password string
}

func (d *SigninData) FormName() string { return "signin" }

// Schema keeps Password out of the form inputs: its rules live in
// checkPassword, which follows the bcrypt input limit.
func (d *SigninData) Schema() []fmt.Field {
	return []fmt.Field{
		{Name: "Email", Type: fmt.FieldText, NotNull: true, Input: "email"},
		{Name: "Password", Type: fmt.FieldText, NotNull: true, Input: "-"},
	}
}

func (d *SigninData) Pointers() []any {
	return []any{&d.Email, &d.Password}
}

// AccountSettingsData is the /api/account-settings body. An empty Password
// keeps the current one.
type AccountSettingsData struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}
