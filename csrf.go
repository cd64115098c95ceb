package authform

import (
	"net/http"
	"net/url"
	"regexp"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"
)

// CredentialProvider reads a named anti-forgery token from wherever the
// environment keeps it. An empty string means the token is absent.
type CredentialProvider interface {
	Token(name string) string
}

// TokenFromCookies returns the value of the first cookie called name in a
// "k=v; k2=v2" cookie string, or "" when there is none.
func TokenFromCookies(cookies, name string) string {
	re, err := regexp.Compile(`(?:^|;)\s*` + regexp.QuoteMeta(name) + `\s*=\s*([^;]+)`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(cookies)
	if m == nil {
		return ""
	}
	return m[1]
}

// CookieString reads tokens from a cookie string source such as
// document.cookie.
type CookieString func() string

func (f CookieString) Token(name string) string {
	if f == nil {
		return ""
	}
	return TokenFromCookies(f(), name)
}

// StaticToken always yields the same token.
type StaticToken string

func (s StaticToken) Token(string) string { return string(s) }

// JarCredentials reads tokens from a cookie jar, for Go clients outside the
// browser.
type JarCredentials struct {
	Jar http.CookieJar
	URL *url.URL
}

func (j JarCredentials) Token(name string) string {
	if j.Jar == nil || j.URL == nil {
		return ""
	}
	for _, c := range j.Jar.Cookies(j.URL) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
