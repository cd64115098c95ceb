package authform

import "github.com/tinywasm/form"

type signinModule struct {
	form *form.Form
}

func (m *signinModule) HandlerName() string { return "signin" }
func (m *signinModule) ModuleTitle() string { return "Sign in" }

// ValidateData never says which credential was malformed.
func (m *signinModule) ValidateData(action byte, data ...any) error {
	if len(data) == 0 {
		return nil
	}
	d, ok := data[0].(*SigninData)
	if !ok {
		return ErrInvalidCredentials
	}
	if err := m.form.ValidateData(action, d); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
