package webhook

import "errors"

// ValidationError reports a malformed webhook payload. Its reason is safe to
// return to the caller.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// ErrUserNotFound signals that the payload's identity hint resolved to no user.
var ErrUserNotFound = errors.New("User not found")
