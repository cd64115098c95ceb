//go:build !wasm

package authform

import "net/http"

// includeCredentials is a no-op outside the browser: the client's cookie jar
// decides what is sent.
func includeCredentials(*http.Request) {}
