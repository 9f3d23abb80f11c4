package services

import "fmt"

// ValidationError means the caller invoked the pipeline with a bad
// selection: missing client/intake, unknown program family, or a
// conversation history that is not a valid alternating log.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// CompilationError means the intake/client records were structurally
// unusable for profile compilation. Raised before any model call.
type CompilationError struct {
	Reason string
}

func (e *CompilationError) Error() string {
	return "profile compilation failed: " + e.Reason
}

// GenerationError wraps an outbound model-call failure or an
// empty/unreadable reply. The conversation history is always left in the
// last-known-good state when this is returned.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
