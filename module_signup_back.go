//go:build !wasm

package authform

import "net/http"

func (m *signupModule) Create(data ...any) (any, error) {
	if len(data) == 0 {
		return nil, ValidationErrors{{Field: FormField, Message: InvalidRequestMessage}}
	}
	d, ok := data[0].(*SignupData)
	if !ok {
		return nil, ValidationErrors{{Field: FormField, Message: InvalidRequestMessage}}
	}
	d.normalize()
	if err := m.ValidateData(actionCreate, d); err != nil {
		return nil, err
	}
	hash, err := hashPassword(d.Password)
	if err != nil {
		return nil, err
	}
	u, err := CreateUser(d.Email, d.FirstName, d.LastName)
	if err != nil {
		return nil, err
	}
	if err := upsertIdentity(u.ID, localProvider, hash); err != nil {
		return nil, err
	}
	return u, nil
}

func (m *signupModule) SetCookie(userID string, w http.ResponseWriter, r *http.Request) error {
	return startSession(userID, w, r)
}

func (m *signupModule) Redirect() string { return store.config.SignupRedirect }
