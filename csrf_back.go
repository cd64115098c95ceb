//go:build !wasm

package authform

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log"
	"net/http"
)

const csrfTokenBytes = 32

// NewCSRFToken returns 32 random bytes, URL-safe base64 encoded.
func NewCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidCSRF is the double-submit check: both tokens present and equal.
func ValidCSRF(cookieToken, headerToken string) bool {
	if cookieToken == "" || headerToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(headerToken)) == 1
}

// EnsureCSRFCookie issues a csrf_token cookie to clients that have none.
// The cookie is script readable so the page can echo it in a header.
func EnsureCSRFCookie(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(CSRFCookieName); err != nil || c.Value == "" {
			token, err := NewCSRFToken()
			if err != nil {
				log.Printf("authform: csrf token: %v", err)
			} else {
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					Secure:   secureCookies(),
					SameSite: http.SameSiteStrictMode,
				})
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCSRF rejects state-changing requests whose X-CSRF-Token header does
// not match the csrf_token cookie.
func RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		var cookieToken string
		if c, err := r.Cookie(CSRFCookieName); err == nil {
			cookieToken = c.Value
		}
		if !ValidCSRF(cookieToken, r.Header.Get(CSRFHeaderName)) {
			log.Printf("authform: %v: %s %s from %s", ErrCSRF, r.Method, r.URL.Path, extractClientIP(r, store != nil && store.config.TrustProxy))
			writeJSON(w, http.StatusForbidden, formError(InvalidCSRFMessage))
			return
		}
		next.ServeHTTP(w, r)
	})
}
