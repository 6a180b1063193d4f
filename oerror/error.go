package oerror

import "fmt"

// StrideError is the error type used for failures that originate from
// misconfiguration or malformed data rather than gameplay outcomes.
type StrideError struct {
	Err string
}

// New creates a StrideError from the given format and arguments.
func New(format string, args ...interface{}) *StrideError {
	return &StrideError{Err: fmt.Sprintf(format, args...)}
}

func (e *StrideError) Error() string {
	return e.Err
}
