package enhydris

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// RequestError is returned when the request could not be performed
// at all (a transport failure: StatusCode is 0 and the underlying
// error is available via errors.Unwrap), or when the server responds
// with a non-success status that has no more specific
// representation. It is also embedded by the more specific error
// types below, which unwrap to it, so callers who don't care about
// the distinction can errors.As against *RequestError alone.
type RequestError struct {
	Method     string
	URL        url.URL
	StatusCode int
	Status     string

	// Error details reported by the server, if any.
	Details []string

	cause error
}

func (e *RequestError) Error() string {
	s := fmt.Sprintf("request failed: %s %s", e.Method, e.URL.String())
	if e.Status != "" {
		s = s + ": " + e.Status
	}
	if len(e.Details) > 0 {
		s = s + ": " + strings.Join(e.Details, "; ")
	}
	return s
}

func (e *RequestError) Unwrap() error {
	return e.cause
}

// newTransportError wraps an error from the HTTP transport so that
// transport failures are part of the same taxonomy as server-reported
// ones.
func newTransportError(req *http.Request, err error) *RequestError {
	return &RequestError{
		Method:  req.Method,
		URL:     *req.URL,
		Details: []string{err.Error()},
		cause:   err,
	}
}

// NotFoundError is returned when the server responds 404.
type NotFoundError struct {
	RequestError
}

func (e *NotFoundError) Unwrap() error {
	return &e.RequestError
}

// AuthenticationError is returned by Login when the server rejects
// the supplied username/password.
type AuthenticationError struct {
	RequestError
}

func (e *AuthenticationError) Unwrap() error {
	return &e.RequestError
}

// ValidationError is returned when a write is rejected with
// field-level errors, e.g. posting a Station without a name.
type ValidationError struct {
	RequestError

	// Messages per rejected field, as reported by the server.
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	var fields []string
	for f, msgs := range e.Fields {
		fields = append(fields, f+": "+strings.Join(msgs, "; "))
	}
	sort.Strings(fields)
	return e.RequestError.Error() + ": " + strings.Join(fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return &e.RequestError
}

// newAPIError translates a non-success response into the error
// taxonomy. The response body has already been read into buf.
func newAPIError(req *http.Request, resp *http.Response, buf []byte) error {
	base := RequestError{
		Method:     req.Method,
		URL:        *req.URL,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	// The server reports errors as JSON: either
	// {"detail": "..."} or, on validation failures, an object
	// mapping field names to lists of messages.
	var body map[string]interface{}
	if err := json.Unmarshal(buf, &body); err == nil {
		if detail, ok := body["detail"].(string); ok {
			base.Details = append(base.Details, detail)
			delete(body, "detail")
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusNotFound {
			if fields := fieldErrors(body); len(fields) > 0 {
				return &ValidationError{RequestError: base, Fields: fields}
			}
		}
	}

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{RequestError: base}
	}
	return &base
}

// fieldErrors interprets body as a map from field name to list of
// error messages. Anything else returns nil.
func fieldErrors(body map[string]interface{}) map[string][]string {
	fields := map[string][]string{}
	for k, v := range body {
		msgs, ok := v.([]interface{})
		if !ok {
			return nil
		}
		for _, m := range msgs {
			s, ok := m.(string)
			if !ok {
				return nil
			}
			fields[k] = append(fields[k], s)
		}
	}
	return fields
}
