package core

// Error codes for domain errors.
const (
	ErrCodeValidation = "validation_error"
	ErrCodeBadRequest = "bad_request"
)

// CoreError wraps a code and human-readable message. Validation failures are
// delivered to the originating connection only and never crash it.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
