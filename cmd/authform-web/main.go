//go:build wasm

// Command authform-web is the browser side: it binds the signup, signin and
// account settings forms found on the current page.
package main

import (
	"log"

	"github.com/tinywasm/authform"
)

func main() {
	forms := []authform.FormConfig{
		authform.SignupForm,
		authform.SigninForm,
		authform.AccountSettingsForm,
	}
	for _, cfg := range forms {
		c, err := authform.Attach(cfg)
		if err != nil {
			continue
		}
		log.Printf("authform: attached %s -> %s (%s)", c.Config().ID, c.Config().Endpoint, c.Config().Policy)
	}
	select {}
}
