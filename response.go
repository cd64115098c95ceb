package authform

// FormField is the error field name for failures that belong to the whole
// form rather than one input.
const FormField = "form"

// Response is the body every /api form endpoint answers with.
type Response struct {
	OK       bool         `json:"ok"`
	Redirect string       `json:"redirect,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Target is where a successful submission navigates to.
func (r Response) Target() string {
	if r.Redirect == "" {
		return "/"
	}
	return r.Redirect
}

// ValidationErrors carries field errors through an error return.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	return v[0].Field + ": " + v[0].Message
}
