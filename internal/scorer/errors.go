package scorer

import "fmt"

// APICallError represents a failed LLM API call.
type APICallError struct {
	Operation string
	Cause     error
}

func (e *APICallError) Error() string {
	return fmt.Sprintf("LLM call failed during %s: %v", e.Operation, e.Cause)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents model output that could not be turned into a valid
// evaluation, whether malformed JSON or a schema violation.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid evaluation output: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid evaluation output: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
