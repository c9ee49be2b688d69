package workflow

import "errors"

// Sentinel errors for workflow transitions.
var (
	// ErrInvalidStage indicates the request did not name a valid stage.
	// State is never touched when this is returned.
	ErrInvalidStage = errors.New("invalid stage")

	// ErrApprovalRequired indicates the target stage is gated on an approval
	// flag that has not been set yet. Callers retry after approving.
	ErrApprovalRequired = errors.New("approval required")
)

// ValidationError reports a malformed transition request.
//
// It is produced by [ParseArguments] and [DecodeRequest] before any state
// is read or written. It matches [ErrInvalidStage] with errors.Is.
type ValidationError struct {
	// Field is the request field that failed validation.
	Field string

	// Message is the human-readable reason, returned verbatim by Error.
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidStage
}

// TransitionError reports a move to a stage whose approval gate is closed.
//
// Reason is the exact precondition text surfaced to the caller.
// It matches [ErrApprovalRequired] with errors.Is.
type TransitionError struct {
	From   Stage
	To     Stage
	Reason string
}

func (e *TransitionError) Error() string {
	return e.Reason
}

func (e *TransitionError) Unwrap() error {
	return ErrApprovalRequired
}
