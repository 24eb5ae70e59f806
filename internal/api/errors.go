package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorTypeHasChild is the error_type the API reports when a category is still
// referenced by income records.
const ErrorTypeHasChild = "HAS_CHILD_ERROR"

// Sentinel errors matched with errors.Is against the errors returned by Client.
var (
	ErrNetwork    = errors.New("no response from server")
	ErrValidation = errors.New("validation failed")
	ErrHasChild   = errors.New("category has dependent income records")
	ErrNotFound   = errors.New("income category not found")
)

// ResponseError is returned for any non-2xx response. It carries the decoded
// error payload alongside the raw body.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	ErrorType  string
	Errors     map[string][]string
	Body       []byte
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is matches the package sentinels.
func (e *ResponseError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.StatusCode == http.StatusUnprocessableEntity
	case ErrHasChild:
		return e.ErrorType == ErrorTypeHasChild
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// NetworkError is returned when no HTTP response was received at all:
// connection failures, timeouts and cancelled contexts.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is matches ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// errorPayload is the JSON body of a failed request.
type errorPayload struct {
	Message   string        `json:"message"`
	ErrorType string        `json:"error_type"`
	Errors    fieldMessages `json:"errors"`
}

// fieldMessages accepts both {"field": ["msg"]} and {"field": "msg"}.
type fieldMessages map[string][]string

func (f *fieldMessages) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(fieldMessages, len(raw))
	for field, value := range raw {
		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			out[field] = list
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err != nil {
			return fmt.Errorf("errors.%s: expected string or list of strings", field)
		}
		out[field] = []string{single}
	}
	*f = out
	return nil
}

// newResponseError decodes body on a best-effort basis; an undecodable body
// still yields a usable error with the status code.
func newResponseError(method, url string, status int, body []byte) *ResponseError {
	re := &ResponseError{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Body:       body,
	}

	if len(body) == 0 {
		return re
	}

	var payload errorPayload
	if json.Unmarshal(body, &payload) == nil {
		re.Message = payload.Message
		re.ErrorType = payload.ErrorType
		re.Errors = map[string][]string(payload.Errors)
		return re
	}

	// Malformed "errors" member: keep what else can be read.
	var header struct {
		Message   string `json:"message"`
		ErrorType string `json:"error_type"`
	}
	if json.Unmarshal(body, &header) == nil {
		re.Message = header.Message
		re.ErrorType = header.ErrorType
	}
	return re
}

// StatusCode extracts the HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}
