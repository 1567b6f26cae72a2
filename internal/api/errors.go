package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the failure classes the views care about. Every
// transport failure is mapped onto exactly one of these (or onto
// *ValidationError); nothing escapes the transport untyped. Callers match
// with errors.Is / errors.As.
var (
	// ErrUnauthorized is the authorization-rejected class. It is the one
	// signal the session store treats as "credential invalid".
	ErrUnauthorized = errors.New("authorization rejected")

	// ErrNotFound is a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrServer is any other failure reported by the backend itself.
	ErrServer = errors.New("server error")

	// ErrUnavailable is a transport-level failure: the request never got a
	// usable response (network error, timeout).
	ErrUnavailable = errors.New("server unavailable")
)

// ValidationError carries the field-level messages of a 422 response,
// keyed by form field name.
type ValidationError struct {
	Errors map[string][]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Messages()
}

// Messages joins all field messages into a single display string, in
// stable field order.
func (e *ValidationError) Messages() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var parts []string
	for _, f := range fields {
		parts = append(parts, e.Errors[f]...)
	}
	return strings.Join(parts, ", ")
}

// RequiredError builds the ValidationError used for client-side presence
// checks, one message per missing field.
func RequiredError(fields ...string) *ValidationError {
	errs := make(map[string][]string, len(fields))
	for _, f := range fields {
		errs[f] = []string{fmt.Sprintf("The %s field is required.", f)}
	}
	return &ValidationError{Errors: errs}
}
