package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the stable, machine-readable code of a domain error.
type Kind string

const (
	KindPatientNotFound   Kind = "PATIENT_NOT_FOUND"
	KindInvalidTimeWindow Kind = "INVALID_TIME_WINDOW"
	KindInvalidThreshold  Kind = "INVALID_THRESHOLD"
	KindValidationFailed  Kind = "VALIDATION_FAILED"
	KindInternal          Kind = "INTERNAL_ERROR"
)

var titles = map[Kind]string{
	KindPatientNotFound:   "Patient not found",
	KindInvalidTimeWindow: "Invalid time window",
	KindInvalidThreshold:  "Invalid threshold",
	KindValidationFailed:  "Validation failed",
	KindInternal:          "Internal Server Error",
}

var statuses = map[Kind]int{
	KindPatientNotFound:   http.StatusNotFound,
	KindInvalidTimeWindow: http.StatusBadRequest,
	KindInvalidThreshold:  http.StatusBadRequest,
	KindValidationFailed:  http.StatusBadRequest,
	KindInternal:          http.StatusInternalServerError,
}

// Title returns the human-readable summary for the kind.
func (k Kind) Title() string {
	if t, ok := titles[k]; ok {
		return t
	}
	return titles[KindInternal]
}

// Status returns the HTTP status the kind is presented with.
func (k Kind) Status() int {
	if s, ok := statuses[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a recognized, coded failure raised by core logic.
type Error struct {
	Kind       Kind
	Context    map[string]any
	Detail     string
	Violations []string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Kind.Title())
}

// New creates an Error of the given kind.
func New(kind Kind, ctx map[string]any, detail string) *Error {
	return &Error{Kind: kind, Context: ctx, Detail: detail}
}

func PatientNotFound(id string) *Error {
	return New(KindPatientNotFound, map[string]any{"id": id}, "")
}

func InvalidThreshold(threshold float64) *Error {
	return New(KindInvalidThreshold, map[string]any{"threshold": threshold}, "threshold must be >= 0")
}

func InvalidTimeWindow(from, to string) *Error {
	return New(KindInvalidTimeWindow, map[string]any{"from": from, "to": to}, "from must be <= to")
}

// Validation reports malformed request input. It is raised by the HTTP
// layer before any core operation runs.
func Validation(violations []string) *Error {
	return &Error{Kind: KindValidationFailed, Violations: violations}
}

func Internal(ctx map[string]any) *Error {
	return New(KindInternal, ctx, "")
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" when err is not a domain error.
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return ""
}

// Contain must be deferred directly. It turns a recovered panic or a
// non-domain error stored in *errp into an INTERNAL_ERROR carrying ctx.
// Domain errors are left untouched. report is called with the original
// cause before it is replaced.
func Contain(errp *error, ctx map[string]any, report func(cause any)) {
	if r := recover(); r != nil {
		if report != nil {
			report(r)
		}
		*errp = Internal(ctx)
		return
	}
	if *errp == nil {
		return
	}
	if _, ok := As(*errp); ok {
		return
	}
	if report != nil {
		report(*errp)
	}
	*errp = Internal(ctx)
}
