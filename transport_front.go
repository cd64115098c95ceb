//go:build wasm

package authform

import "net/http"

// includeCredentials asks the wasm fetch round tripper to send cookies.
func includeCredentials(req *http.Request) {
	req.Header.Set("js.fetch:credentials", "include")
}
