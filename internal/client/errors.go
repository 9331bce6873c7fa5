package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// MsgTryAgain is shown when a failure carries no server message
const MsgTryAgain = "Something went wrong. Please try again."

var (
	// ErrInFlight refuses a second upload or delete while one is running
	ErrInFlight = errors.New("another upload or delete is still in progress")
	// ErrCancelled is returned when the user backs out of capture. Callers treat it as a quiet stop.
	ErrCancelled = errors.New("capture cancelled")
	// ErrNoPosition is returned by a Locator that has no fix
	ErrNoPosition = errors.New("location unavailable")
)

// APIError is a non-2xx response from the server
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (%d)", MsgTryAgain, e.Status)
	}
	return e.Message
}

// NotFound reports a 404
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// NetworkFailure wraps a transport error where no response arrived
type NetworkFailure struct {
	Err error
}

func (e *NetworkFailure) Error() string {
	return "Network unavailable. " + MsgTryAgain
}

func (e *NetworkFailure) Unwrap() error {
	return e.Err
}

// PermissionDenied means the camera or location source was refused
type PermissionDenied struct {
	Permission string
	Reason     string
}

func (e *PermissionDenied) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s permission denied", e.Permission)
	}
	return fmt.Sprintf("%s permission denied: %s", e.Permission, e.Reason)
}

// PreconditionNotMet is a local refusal made without contacting the server
type PreconditionNotMet struct {
	Err error
}

func (e *PreconditionNotMet) Error() string {
	return readable(e.Err)
}

func (e *PreconditionNotMet) Unwrap() error {
	return e.Err
}

// readable turns "This slot is still locked.: unlocks in 04:30" into
// "This slot is still locked. Unlocks in 04:30."
func readable(err error) string {
	msg := err.Error()
	idx := strings.Index(msg, ".: ")
	if idx < 0 {
		return msg
	}
	base, detail := msg[:idx+1], msg[idx+3:]
	if detail == "" {
		return base
	}
	detail = strings.ToUpper(detail[:1]) + detail[1:]
	if !strings.HasSuffix(detail, ".") {
		detail += "."
	}
	return base + " " + detail
}

// Message returns the text a user should see for err
func Message(err error) string {
	if err == nil {
		return ""
	}
	var (
		apiErr  *APIError
		netErr  *NetworkFailure
		precond *PreconditionNotMet
		denied  *PermissionDenied
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.As(err, &netErr):
		return netErr.Error()
	case errors.As(err, &precond):
		return precond.Error()
	case errors.As(err, &denied):
		return denied.Error()
	}
	return err.Error()
}
