//go:build wasm

package authform

import (
	"context"
	"syscall/js"
)

const (
	invalidClass  = "is-invalid"
	feedbackClass = "invalid-feedback"
	hiddenClass   = "d-none"
	alertClass    = "alert"
)

// domUI renders controller state onto a Bootstrap-style form.
type domUI struct {
	form  js.Value
	alert js.Value
}

func missing(v js.Value) bool { return v.IsNull() || v.IsUndefined() }

func (d *domUI) input(name string) js.Value {
	return d.form.Call("querySelector", `[name="`+name+`"]`)
}

func (d *domUI) each(selector string, fn func(js.Value)) {
	list := d.form.Call("querySelectorAll", selector)
	for i := 0; i < list.Length(); i++ {
		fn(list.Index(i))
	}
}

func (d *domUI) FieldValue(name string) string {
	el := d.input(name)
	if missing(el) {
		return ""
	}
	return el.Get("value").String()
}

func (d *domUI) MarkInvalid(field, message string) {
	el := d.input(field)
	if missing(el) {
		return
	}
	el.Get("classList").Call("add", invalidClass)
	parent := el.Get("parentElement")
	if missing(parent) {
		return
	}
	fb := parent.Call("querySelector", ":scope > ."+feedbackClass)
	if !missing(fb) {
		fb.Set("textContent", message)
	}
}

func (d *domUI) ClearInvalid() {
	d.each("."+invalidClass, func(el js.Value) {
		el.Get("classList").Call("remove", invalidClass)
	})
	d.each("."+feedbackClass, func(el js.Value) {
		el.Set("textContent", "")
	})
}

// ShowAlert writes to the form's alert element, or to the first .alert
// inside the form when the page has none with that id.
func (d *domUI) ShowAlert(message string) {
	el := d.alert
	if missing(el) {
		el = d.form.Call("querySelector", "."+alertClass)
	}
	if missing(el) {
		return
	}
	el.Set("textContent", message)
	el.Get("classList").Call("remove", hiddenClass)
}

// HideAlert hides and empties the alert element and every .alert in the form.
func (d *domUI) HideAlert() {
	hide := func(el js.Value) {
		el.Get("classList").Call("add", hiddenClass)
		el.Set("textContent", "")
	}
	if !missing(d.alert) {
		hide(d.alert)
	}
	d.each("."+alertClass, hide)
}

func (d *domUI) Navigate(url string) {
	js.Global().Get("location").Set("href", url)
}

func (d *domUI) SetBusy(busy bool) {
	d.each(`[type="submit"]`, func(el js.Value) {
		el.Set("disabled", busy)
	})
}

// Attach binds a controller to the submit event of the form with id cfg.ID.
// The listener lives as long as the page.
func Attach(cfg FormConfig, opts ...TransportOption) (*Controller, error) {
	doc := js.Global().Get("document")
	form := doc.Call("getElementById", cfg.ID)
	if missing(form) {
		return nil, ErrFormNotFound
	}
	ui := &domUI{form: form, alert: doc.Call("getElementById", cfg.AlertID)}
	creds := CookieString(func() string { return doc.Get("cookie").String() })
	// net/http wants absolute URLs, so endpoints resolve against the page origin.
	origin := js.Global().Get("location").Get("origin").String()
	opts = append([]TransportOption{WithBaseURL(origin)}, opts...)
	c := NewController(cfg, ui, NewHTTPTransport(opts...), creds)

	onSubmit := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		// fetch blocks, and blocking inside a js callback deadlocks.
		go c.Submit(context.Background())
		return nil
	})
	form.Call("addEventListener", "submit", onSubmit)
	return c, nil
}
