package annotate

import "fmt"

// StartupError indicates the annotator could not be initialized. It is
// fatal: the process must not serve requests without a working annotator.
type StartupError struct {
	Stage string
	Cause error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("annotator startup failed during %s: %v", e.Stage, e.Cause)
}

func (e *StartupError) Unwrap() error {
	return e.Cause
}

// AnnotationError indicates a single annotation round-trip failed: the
// worker reported an error or returned a payload that does not match the
// annotation schema. The worker itself stays usable.
type AnnotationError struct {
	Message string
	Cause   error
}

func (e *AnnotationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("annotation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("annotation failed: %s", e.Message)
}

func (e *AnnotationError) Unwrap() error {
	return e.Cause
}
