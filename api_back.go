//go:build !wasm

package authform

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

const maxRequestBytes = 1 << 20

// sessionStarter is a module that signs a user in on success.
type sessionStarter interface {
	HandlerName() string
	Create(data ...any) (any, error)
	SetCookie(userID string, w http.ResponseWriter, r *http.Request) error
	Redirect() string
}

// Routes mounts the form endpoints under /api. Every route gets a csrf_token
// cookie; POSTs must echo it in X-CSRF-Token.
func Routes(r *mux.Router) {
	r.Use(EnsureCSRFCookie)
	api := r.PathPrefix(APIPrefix).Subrouter()
	api.Use(RequireCSRF)
	api.HandleFunc("/"+SignupModule.HandlerName(), handleCreate(SignupModule, func() any { return &SignupData{} })).Methods(http.MethodPost)
	api.HandleFunc("/"+SigninModule.HandlerName(), handleCreate(SigninModule, func() any { return &SigninData{} })).Methods(http.MethodPost)
	api.HandleFunc("/"+AccountModule.HandlerName(), handleAccountSettings).Methods(http.MethodPost)
	api.HandleFunc("/signout", handleSignout).Methods(http.MethodPost)
}

func startSession(userID string, w http.ResponseWriter, r *http.Request) error {
	sess, err := CreateSession(userID, extractClientIP(r, store.config.TrustProxy), r.UserAgent())
	if err != nil {
		return err
	}
	setSessionCookie(w, sess)
	return nil
}

func handleCreate(m sessionStarter, newData func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := newData()
		if !decodeJSON(w, r, data) {
			return
		}
		res, err := m.Create(data)
		if err != nil {
			writeError(w, r, err)
			return
		}
		u := res.(User)
		if err := m.SetCookie(u.ID, w, r); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, Response{OK: true, Redirect: m.Redirect()})
	}
}

func handleAccountSettings(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var d AccountSettingsData
	if !decodeJSON(w, r, &d) {
		return
	}
	if err := AccountModule.Update(sess.UserID, &d); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{OK: true, Redirect: AccountModule.Redirect()})
}

func handleSignout(w http.ResponseWriter, r *http.Request) {
	if sess, err := sessionFromRequest(r); err == nil {
		if err := DeleteSession(sess.ID); err != nil {
			log.Printf("authform: signout: %v", err)
		}
	}
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, Response{OK: true, Redirect: "/"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, formError(InvalidRequestMessage))
		return false
	}
	return true
}

func formError(message string) Response {
	return Response{Errors: []FieldError{{Field: FormField, Message: message}}}
}

// writeError maps an error to its status and field errors. Unexpected errors
// are logged and answered generically.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, Response{Errors: verrs})
	case err == ErrEmailTaken:
		writeJSON(w, http.StatusConflict, Response{Errors: []FieldError{{Field: "email", Message: EmailTakenMessage}}})
	case err == ErrInvalidCredentials, err == ErrSuspended:
		writeJSON(w, http.StatusUnauthorized, formError(InvalidCredentialsMessage))
	case err == ErrNotAuthenticated:
		writeJSON(w, http.StatusUnauthorized, formError(SignInAgainMessage))
	case err == ErrWeakPassword:
		writeJSON(w, http.StatusUnprocessableEntity, Response{Errors: []FieldError{{Field: "password", Message: PasswordTooShortMessage}}})
	case err == ErrPasswordTooLong:
		writeJSON(w, http.StatusUnprocessableEntity, Response{Errors: []FieldError{{Field: "password", Message: PasswordTooLongMessage}}})
	default:
		log.Printf("authform: %s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, formError(GenericErrorMessage))
	}
}

func writeJSON(w http.ResponseWriter, status int, res Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Printf("authform: write response: %v", err)
	}
}
