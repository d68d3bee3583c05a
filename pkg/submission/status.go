package submission

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-scholarform/pkg/model"
	"github.com/goliatone/go-scholarform/pkg/validation"
)

// Status is the state of a Flow.
type Status int

const (
	Idle Status = iota
	Submitting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// SuccessMessage is shown after the gateway accepted a submission.
const SuccessMessage = "Your application has been sent successfully!"

const failurePrefix = "Failed to send the application: "

// FailureMessage formats the message shown after a gateway failure.
func FailureMessage(detail string) string {
	return failurePrefix + detail
}

var (
	// ErrNotReady reports a submit refused by required-field validation.
	ErrNotReady = errors.New("submission: form is not ready")
	// ErrInFlight reports a submit attempted while another one is running.
	ErrInFlight = errors.New("submission: submission already in progress")
	// ErrNoGateway reports a Flow constructed without a gateway.
	ErrNoGateway = errors.New("submission: gateway is not configured")
)

// NotReadyError carries the validation issues that blocked a submit.
type NotReadyError struct {
	Issues validation.Issues
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotReady, strings.Join(e.Issues.Paths(), ", "))
}

func (e *NotReadyError) Unwrap() error { return ErrNotReady }

// Outcome describes one submit attempt.
type Outcome struct {
	AttemptID string
	Status    Status
	// Message is the user-facing status line.
	Message string
	// Detail is the raw failure text reported by the gateway.
	Detail   string
	Err      error
	Issues   validation.Issues
	Record   model.SubmissionRecord
	Duration time.Duration
}

// OK reports whether the attempt succeeded.
func (o Outcome) OK() bool { return o.Status == Succeeded }
