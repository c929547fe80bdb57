package generate

import "fmt"

// FailureCode classifies a generation failure.
type FailureCode string

const (
	// CodeValidation marks requests rejected before any process is spawned.
	CodeValidation FailureCode = "validation"
	// CodeConfiguration marks a missing/unstartable tool binary.
	CodeConfiguration FailureCode = "configuration"
	// CodeTimeout marks an invocation that exceeded the wall-clock bound.
	CodeTimeout FailureCode = "timeout"
	// CodeGeneration marks a tool crash or non-zero exit.
	CodeGeneration FailureCode = "generation"
	// CodeInternal marks a persistence or plumbing failure after the tool ran.
	CodeInternal FailureCode = "internal"
)

// Error is the orchestrator's failure type. Diagnostics carries the tool's
// captured stderr when one exists.
type Error struct {
	Code        FailureCode
	Message     string
	Diagnostics string
}

func (e *Error) Error() string {
	if e.Diagnostics != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Diagnostics)
	}
	return e.Message
}

// CodeOf returns the failure code of err, or CodeInternal for foreign errors.
func CodeOf(err error) FailureCode {
	if ge, ok := err.(*Error); ok {
		return ge.Code
	}
	return CodeInternal
}
