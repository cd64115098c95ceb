package authform

import (
	"context"
	"log"
	"sync"
)

const (
	NetworkErrorMessage = "Network error. Please try again."
	GenericErrorMessage = "Something went wrong. Please try again."
	InvalidValueMessage = "Invalid value"
)

// UI is everything the controller touches on the rendering surface.
type UI interface {
	FieldValue(name string) string
	MarkInvalid(field, message string)
	// ClearInvalid unmarks every invalid input and empties every field message.
	ClearInvalid()
	ShowAlert(message string)
	// HideAlert hides and empties the top-level alert.
	HideAlert()
	Navigate(url string)
	// SetBusy enables or disables the submit control.
	SetBusy(busy bool)
}

// Transport posts collected values with the anti-forgery token attached.
// A nil error means a Response was decoded; any error is a transport failure.
type Transport interface {
	Post(ctx context.Context, endpoint string, values Values, token string) (Response, error)
}

type State int

const (
	Idle State = iota
	Validating
	LocalInvalid
	Submitting
	Succeeded
	Reconciling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case LocalInvalid:
		return "local-invalid"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Reconciling:
		return "reconciling"
	}
	return "unknown"
}

// Outcome is how one Submit call ended.
type Outcome int

const (
	// OutcomeSkipped means a previous submission was still in flight.
	OutcomeSkipped Outcome = iota
	OutcomeLocalInvalid
	OutcomeSucceeded
	OutcomeReconciled
	OutcomeTransportFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeLocalInvalid:
		return "local-invalid"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeReconciled:
		return "reconciled"
	case OutcomeTransportFailed:
		return "transport-failed"
	}
	return "unknown"
}

// Controller runs the submission protocol for one form.
type Controller struct {
	cfg   FormConfig
	ui    UI
	tr    Transport
	creds CredentialProvider

	mu    sync.Mutex
	state State
}

func NewController(cfg FormConfig, ui UI, tr Transport, creds CredentialProvider) *Controller {
	if creds == nil {
		creds = StaticToken("")
	}
	return &Controller{cfg: cfg, ui: ui, tr: tr, creds: creds}
}

func (c *Controller) Config() FormConfig { return c.cfg }

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// begin moves Idle to Validating. It fails while another submission of the
// same form has not returned to Idle.
func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Idle {
		return false
	}
	c.state = Validating
	return true
}

// Submit handles one submit event. Every path ends in a rendered UI state;
// nothing is returned to the page as an error.
func (c *Controller) Submit(ctx context.Context) Outcome {
	if !c.begin() {
		return OutcomeSkipped
	}
	defer c.setState(Idle)

	c.ui.ClearInvalid()
	c.ui.HideAlert()

	values := c.cfg.Collect(c.ui.FieldValue)
	if fe := c.cfg.Validate(values); fe != nil {
		c.setState(LocalInvalid)
		c.markInvalid(*fe)
		return OutcomeLocalInvalid
	}

	c.setState(Submitting)
	token := c.creds.Token(CSRFCookieName)

	c.ui.SetBusy(true)
	res, err := c.tr.Post(ctx, c.cfg.Endpoint, values, token)
	c.ui.SetBusy(false)

	if err != nil {
		log.Printf("authform: %s: %v", c.cfg.ID, err)
		c.ui.ShowAlert(NetworkErrorMessage)
		return OutcomeTransportFailed
	}

	if res.OK {
		c.setState(Succeeded)
		c.ui.Navigate(res.Target())
		return OutcomeSucceeded
	}

	c.setState(Reconciling)
	c.reconcile(res.Errors)
	return OutcomeReconciled
}

func (c *Controller) reconcile(errs []FieldError) {
	if len(errs) == 0 {
		c.ui.ShowAlert(GenericErrorMessage)
		return
	}
	switch c.cfg.Policy {
	case FormErrorPriority:
		c.formErrorPriority(errs)
	default:
		c.mapThenAlert(errs)
	}
}

func (c *Controller) mapThenAlert(errs []FieldError) {
	alerted := false
	for _, e := range errs {
		if c.cfg.HasField(e.Field) {
			c.markInvalid(e)
			continue
		}
		if !alerted {
			c.ui.ShowAlert(e.Message)
			alerted = true
		}
	}
}

func (c *Controller) formErrorPriority(errs []FieldError) {
	var last *FieldError
	for i := range errs {
		if errs[i].Field == FormField {
			last = &errs[i]
		}
	}
	if last != nil {
		c.ui.ShowAlert(last.Message)
		return
	}
	for _, e := range errs {
		if c.cfg.HasField(e.Field) {
			c.markInvalid(e)
		}
	}
}

func (c *Controller) markInvalid(e FieldError) {
	msg := e.Message
	if msg == "" {
		msg = InvalidValueMessage
	}
	c.ui.MarkInvalid(e.Field, msg)
}
