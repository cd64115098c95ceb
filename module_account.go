package authform

type accountModule struct{}

func (m *accountModule) HandlerName() string { return "account-settings" }
func (m *accountModule) ModuleTitle() string { return "Account settings" }

func (m *accountModule) ValidateData(action byte, data ...any) error {
	if len(data) == 0 {
		return nil
	}
	d, ok := data[0].(*AccountSettingsData)
	if !ok {
		return ValidationErrors{{Field: FormField, Message: InvalidRequestMessage}}
	}
	return validateAccountSettings(d)
}
