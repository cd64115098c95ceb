//go:build !wasm

package authform

// Update saves names and email, and replaces the password when one is given.
func (m *accountModule) Update(id string, data ...any) error {
	if len(data) == 0 {
		return ValidationErrors{{Field: FormField, Message: InvalidRequestMessage}}
	}
	d, ok := data[0].(*AccountSettingsData)
	if !ok {
		return ValidationErrors{{Field: FormField, Message: InvalidRequestMessage}}
	}
	d.normalize()
	if err := m.ValidateData(actionUpdate, d); err != nil {
		return err
	}
	var hash string
	if d.Password != "" {
		h, err := hashPassword(d.Password)
		if err != nil {
			return err
		}
		hash = h
	}
	if err := UpdateUser(id, d.FirstName, d.LastName, d.Email); err != nil {
		return err
	}
	if hash == "" {
		return nil
	}
	return upsertIdentity(id, localProvider, hash)
}

func (m *accountModule) Redirect() string { return store.config.AccountRedirect }
