package services

import "errors"

var (
	// ErrNotFound covers records that do not exist and records that exist
	// but are not publicly visible; callers cannot distinguish the two.
	ErrNotFound = errors.New("record not found")

	// ErrFileMissing means the document row exists but its backing file is
	// absent from object storage.
	ErrFileMissing = errors.New("file missing from storage")
)

// ValidationError reports a malformed or out-of-range request parameter.
// It is always raised before any query executes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// AsValidation unwraps err into a *ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}
