package authform

import "github.com/tinywasm/form"

type signupModule struct {
	credentials *form.Form
}

func (m *signupModule) HandlerName() string { return "signup" }
func (m *signupModule) ModuleTitle() string { return "Sign up" }

// ValidateData reports per-field problems as ValidationErrors. The email must
// also pass the credentials form, so every address that signs up can sign in.
func (m *signupModule) ValidateData(action byte, data ...any) error {
	if len(data) == 0 {
		return nil
	}
	d, ok := data[0].(*SignupData)
	if !ok {
		return ValidationErrors{{Field: FormField, Message: InvalidRequestMessage}}
	}
	if err := validateSignup(d); err != nil {
		return err
	}
	if err := m.credentials.ValidateData(action, &SigninData{Email: d.Email, Password: d.Password}); err != nil {
		return ValidationErrors{{Field: "email", Message: InvalidEmailMessage}}
	}
	return nil
}
