package authform

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	DefaultTimeout   = 15 * time.Second
	maxResponseBytes = 1 << 20
)

// TransportError is a request that produced no usable Response.
// It matches ErrTransport with errors.Is.
type TransportError struct {
	Status int // 0 when no response arrived
	Err    error
}

func (e *TransportError) Error() string {
	msg := "transport"
	if e.Status != 0 {
		msg += " status " + strconv.Itoa(e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// HTTPTransport posts JSON bodies with net/http. Inside the browser the wasm
// runtime maps the request onto fetch with credentials included.
type HTTPTransport struct {
	client  *http.Client
	baseURL string
}

type TransportOption func(*HTTPTransport)

func WithHTTPClient(c *http.Client) TransportOption {
	return func(t *HTTPTransport) { t.client = c }
}

func WithBaseURL(u string) TransportOption {
	return func(t *HTTPTransport) { t.baseURL = u }
}

func WithTimeout(d time.Duration) TransportOption {
	return func(t *HTTPTransport) {
		c := *t.client
		c.Timeout = d
		t.client = &c
	}
}

func NewHTTPTransport(opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{client: &http.Client{Timeout: DefaultTimeout}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *HTTPTransport) Post(ctx context.Context, endpoint string, values Values, token string) (Response, error) {
	body, err := json.Marshal(values)
	if err != nil {
		return Response{}, &TransportError{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(CSRFHeaderName, token)
	includeCredentials(req)

	resp, err := t.client.Do(req)
	if err != nil {
		return Response{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	var res Response
	decErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&res)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if decErr != nil {
			return Response{}, &TransportError{Status: resp.StatusCode, Err: decErr}
		}
		return res, nil
	}
	// Error statuses still count as a response when they carry field errors.
	if decErr == nil && !res.OK && len(res.Errors) > 0 {
		return res, nil
	}
	return Response{}, &TransportError{Status: resp.StatusCode, Err: decErr}
}
