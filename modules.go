package authform

import (
	"github.com/tinywasm/fmt"
	_ "github.com/tinywasm/fmt/dictionary"
	"github.com/tinywasm/form"
)

const (
	actionCreate byte = 'c'
	actionUpdate byte = 'u'
)

var (
	SignupModule  *signupModule
	SigninModule  *signinModule
	AccountModule *accountModule
)

func init() {
	SignupModule = &signupModule{credentials: mustForm("signup", &SigninData{})}
	SigninModule = &signinModule{form: mustForm("signin", &SigninData{})}
	AccountModule = &accountModule{}
}

func mustForm(parentID string, data fmt.Fielder) *form.Form {
	f, err := form.New(parentID, data)
	if err != nil {
		panic("authform: mustForm: " + err.Error())
	}
	return f
}
