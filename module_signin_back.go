//go:build !wasm

package authform

import (
	"net/http"
	"strings"
)

func (m *signinModule) Create(data ...any) (any, error) {
	if len(data) == 0 {
		return nil, ErrInvalidCredentials
	}
	d, ok := data[0].(*SigninData)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	d.Email = strings.TrimSpace(d.Email)
	if err := m.ValidateData(actionCreate, d); err != nil {
		return nil, err
	}
	u, err := Login(d.Email, d.Password)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (m *signinModule) SetCookie(userID string, w http.ResponseWriter, r *http.Request) error {
	return startSession(userID, w, r)
}

func (m *signinModule) Redirect() string { return store.config.SigninRedirect }
