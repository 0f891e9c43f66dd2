package apiclient

import (
	"errors"
	"net/http"

	"local-deals/internal/pkg/errs"

	"github.com/tidwall/gjson"
)

var (
	ErrUnauthenticated = errs.New("not signed in")
	ErrForbidden       = errs.New("not allowed")
	ErrNotFound        = errs.New("not found")
	ErrConflict        = errs.New("conflict")
	ErrValidation      = errs.New("invalid request")
	ErrTransport       = errs.New("transport failure")
	ErrServer          = errs.New("server error")
)

// Error is a non-2xx response. It matches the sentinel for its status class.
type Error struct {
	Status  int
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthenticated
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status == http.StatusBadRequest, e.Status == http.StatusUnprocessableEntity,
		e.Status == http.StatusRequestEntityTooLarge:
		return ErrValidation
	case e.Status >= 500:
		return ErrServer
	default:
		return nil
	}
}

// DecodeError reads {"error":{"message"}} bodies, falling back to a top-level
// "message" (PostgREST) and then to the status text.
func DecodeError(status int, body []byte) *Error {
	e := &Error{Status: status}
	if gjson.ValidBytes(body) {
		res := gjson.GetManyBytes(body, "error.message", "message", "detail", "details")
		switch {
		case res[0].Exists():
			e.Message = res[0].String()
		case res[1].Exists():
			e.Message = res[1].String()
		}
		if res[2].Exists() {
			e.Detail = res[2].String()
		} else if res[3].Exists() {
			e.Detail = res[3].String()
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// ValidationError is raised before any request is sent.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "invalid request: " + e.Err.Error() }

func (e *ValidationError) Unwrap() []error { return []error{ErrValidation, e.Err} }

func invalid(msg string) error {
	return &ValidationError{Err: errors.New(msg)}
}

type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "transport: " + e.Err.Error() }

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// Reason is the user-facing text for err.
func Reason(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
