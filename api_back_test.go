//go:build !wasm

package authform_test

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"
	"github.com/tinywasm/authform"
)

// browser is a Go stand-in for a page: a cookie jar plus one controller per
// form, all talking to the real handlers.
type browser struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	creds  authform.CredentialProvider
}

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	initStore(t, authform.Config{InsecureCookies: true})
	r := mux.NewRouter()
	authform.Routes(r)
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}).Methods(http.MethodGet)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newBrowser(t *testing.T, srv *httptest.Server) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{Jar: jar}
	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("load page: %v", err)
	}
	resp.Body.Close()
	u, _ := url.Parse(srv.URL)
	return &browser{t: t, srv: srv, client: client, creds: authform.JarCredentials{Jar: jar, URL: u}}
}

func (b *browser) submit(cfg authform.FormConfig, values map[string]string) (*fakeUI, authform.Outcome) {
	ui := newFakeUI(values)
	tr := authform.NewHTTPTransport(authform.WithHTTPClient(b.client), authform.WithBaseURL(b.srv.URL))
	return ui, authform.NewController(cfg, ui, tr, b.creds).Submit(context.Background())
}

var ada = map[string]string{
	"first_name": "Ada",
	"last_name":  "Lovelace",
	"email":      "ada@example.com",
	"password":   "password123",
}

func TestPageLoadIssuesCSRFCookie(t *testing.T) {
	srv := newAPIServer(t)
	b := newBrowser(t, srv)
	tok := b.creds.Token(authform.CSRFCookieName)
	if len(tok) < 40 {
		t.Errorf("csrf token = %q, want 32 random bytes encoded", tok)
	}
}

func TestSignupThenSignin(t *testing.T) {
	srv := newAPIServer(t)
	b := newBrowser(t, srv)

	ui, got := b.submit(authform.SignupForm, ada)
	if got != authform.OutcomeSucceeded {
		t.Fatalf("signup outcome = %v, ops %v", got, ui.ops)
	}
	if last := ui.ops[len(ui.ops)-1]; last != "navigate /meetings" {
		t.Errorf("signup ended with %q", last)
	}

	ui, got = b.submit(authform.SignupForm, ada)
	if got != authform.OutcomeReconciled {
		t.Fatalf("duplicate signup outcome = %v", got)
	}
	if diff := cmp.Diff(map[string]string{"email": authform.EmailTakenMessage}, ui.invalid); diff != "" {
		t.Errorf("invalid fields mismatch (-want +got):\n%s", diff)
	}

	ui, _ = b.submit(authform.SigninForm, map[string]string{"email": "ada@example.com", "password": "password999"})
	if ui.alert != authform.InvalidCredentialsMessage {
		t.Errorf("alert = %q, want %q", ui.alert, authform.InvalidCredentialsMessage)
	}
	if len(ui.invalid) != 0 {
		t.Errorf("signin marked fields: %v", ui.invalid)
	}

	ui, got = b.submit(authform.SigninForm, map[string]string{"email": "  ada@example.com ", "password": "password123"})
	if got != authform.OutcomeSucceeded {
		t.Fatalf("signin outcome = %v, ops %v", got, ui.ops)
	}
}

func TestSignupServerValidation(t *testing.T) {
	srv := newAPIServer(t)
	b := newBrowser(t, srv)

	ui, got := b.submit(authform.SignupForm, map[string]string{
		"first_name": "   ",
		"last_name":  strings.Repeat("x", 81),
		"email":      "not-an-email",
		"password":   "password123",
	})
	if got != authform.OutcomeReconciled {
		t.Fatalf("outcome = %v", got)
	}
	want := map[string]string{
		"first_name": "First name is required.",
		"last_name":  "Last name must be at most 80 characters.",
		"email":      authform.InvalidEmailMessage,
	}
	if diff := cmp.Diff(want, ui.invalid); diff != "" {
		t.Errorf("invalid fields mismatch (-want +got):\n%s", diff)
	}
	if ui.shown {
		t.Errorf("unexpected alert %q", ui.alert)
	}
}

func TestAccountSettings(t *testing.T) {
	srv := newAPIServer(t)
	b := newBrowser(t, srv)
	if _, got := b.submit(authform.SignupForm, ada); got != authform.OutcomeSucceeded {
		t.Fatalf("signup outcome = %v", got)
	}

	ui, got := b.submit(authform.AccountSettingsForm, map[string]string{
		"first_name": "Augusta",
		"last_name":  "King",
		"email":      "augusta@example.com",
		"password":   "",
	})
	if got != authform.OutcomeSucceeded {
		t.Fatalf("update outcome = %v, ops %v", got, ui.ops)
	}
	u, err := authform.GetUserByEmail("augusta@example.com")
	if err != nil || u.FirstName != "Augusta" {
		t.Fatalf("user after update = %+v, %v", u, err)
	}
	if _, err := authform.Login("augusta@example.com", "password123"); err != nil {
		t.Errorf("empty password replaced the old one: %v", err)
	}

	_, got = b.submit(authform.AccountSettingsForm, map[string]string{
		"first_name": "Augusta",
		"last_name":  "King",
		"email":      "augusta@example.com",
		"password":   " newpassword456 ",
	})
	if got != authform.OutcomeSucceeded {
		t.Fatalf("password update outcome = %v", got)
	}
	if _, err := authform.Login("augusta@example.com", "newpassword456"); err != nil {
		t.Errorf("Login with new password failed: %v", err)
	}
}

func TestSignupPasswordPastBcryptLimit(t *testing.T) {
	srv := newAPIServer(t)
	b := newBrowser(t, srv)

	long := map[string]string{}
	for k, v := range ada {
		long[k] = v
	}
	long["password"] = strings.Repeat("p", 100)

	ui, got := b.submit(authform.SignupForm, long)
	if got != authform.OutcomeReconciled {
		t.Fatalf("outcome = %v", got)
	}
	if diff := cmp.Diff(map[string]string{"password": authform.PasswordTooLongMessage}, ui.invalid); diff != "" {
		t.Errorf("invalid fields mismatch (-want +got):\n%s", diff)
	}
	if _, err := authform.GetUserByEmail("ada@example.com"); err != authform.ErrNotFound {
		t.Fatalf("refused signup left a user behind: %v", err)
	}

	if ui, got := b.submit(authform.SignupForm, ada); got != authform.OutcomeSucceeded {
		t.Fatalf("retry outcome = %v, invalid %v", got, ui.invalid)
	}
}

func TestAccountSettingsPasswordPastBcryptLimit(t *testing.T) {
	srv := newAPIServer(t)
	b := newBrowser(t, srv)
	if _, got := b.submit(authform.SignupForm, ada); got != authform.OutcomeSucceeded {
		t.Fatalf("signup outcome = %v", got)
	}

	ui, got := b.submit(authform.AccountSettingsForm, map[string]string{
		"first_name": "Augusta",
		"last_name":  "King",
		"email":      "augusta@example.com",
		"password":   strings.Repeat("é", 40),
	})
	if got != authform.OutcomeReconciled {
		t.Fatalf("outcome = %v", got)
	}
	if diff := cmp.Diff(map[string]string{"password": authform.PasswordTooLongMessage}, ui.invalid); diff != "" {
		t.Errorf("invalid fields mismatch (-want +got):\n%s", diff)
	}
	u, err := authform.GetUserByEmail("ada@example.com")
	if err != nil || u.FirstName != "Ada" {
		t.Errorf("refused update changed the user: %+v, %v", u, err)
	}
	if _, err := authform.Login("ada@example.com", "password123"); err != nil {
		t.Errorf("old password no longer works: %v", err)
	}
}

func TestAccountSettingsRequiresSession(t *testing.T) {
	srv := newAPIServer(t)
	b := newBrowser(t, srv)

	ui, got := b.submit(authform.AccountSettingsForm, ada)
	if got != authform.OutcomeReconciled {
		t.Fatalf("outcome = %v", got)
	}
	if ui.alert != authform.SignInAgainMessage || len(ui.invalid) != 0 {
		t.Errorf("alert = %q invalid = %v", ui.alert, ui.invalid)
	}
}

func TestMissingCSRFHeaderIsRejected(t *testing.T) {
	srv := newAPIServer(t)
	b := newBrowser(t, srv)
	b.creds = authform.StaticToken("")

	ui, got := b.submit(authform.SignupForm, ada)
	if got != authform.OutcomeReconciled {
		t.Fatalf("outcome = %v", got)
	}
	if ui.alert != authform.InvalidCSRFMessage {
		t.Errorf("alert = %q, want %q", ui.alert, authform.InvalidCSRFMessage)
	}
	if _, err := authform.GetUserByEmail("ada@example.com"); err != authform.ErrNotFound {
		t.Errorf("user created despite csrf failure: %v", err)
	}
}

func TestRequireCSRF(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := authform.RequireCSRF(next)

	tests := []struct {
		name   string
		method string
		cookie string
		header string
		want   int
	}{
		{"matching", http.MethodPost, "tok", "tok", http.StatusNoContent},
		{"mismatch", http.MethodPost, "tok", "other", http.StatusForbidden},
		{"no header", http.MethodPost, "tok", "", http.StatusForbidden},
		{"no cookie", http.MethodPost, "", "tok", http.StatusForbidden},
		{"safe method", http.MethodGet, "", "", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/signin", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: authform.CSRFCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set(authform.CSRFHeaderName, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestSignout(t *testing.T) {
	srv := newAPIServer(t)
	b := newBrowser(t, srv)
	if _, got := b.submit(authform.SignupForm, ada); got != authform.OutcomeSucceeded {
		t.Fatalf("signup outcome = %v", got)
	}

	signout := authform.FormConfig{ID: "signoutForm", Endpoint: authform.APIPrefix + "/signout"}
	if _, got := b.submit(signout, nil); got != authform.OutcomeSucceeded {
		t.Fatalf("signout outcome = %v", got)
	}

	ui, _ := b.submit(authform.AccountSettingsForm, ada)
	if ui.alert != authform.SignInAgainMessage {
		t.Errorf("alert after signout = %q", ui.alert)
	}
}
