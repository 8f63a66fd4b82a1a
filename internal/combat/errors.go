package combat

import "fmt"

// Code classifies a core failure. None of them are recoverable inside a turn.
type Code int

const (
	CodeUnknown Code = iota
	// CodeValidation: a gauge or input value outside its legal range.
	CodeValidation
	// CodeLookup: a character or command missing from the catalog.
	CodeLookup
	// CodePrecondition: the battle cannot run in its current state.
	CodePrecondition
)

func (c Code) String() string {
	switch c {
	case CodeValidation:
		return "validation"
	case CodeLookup:
		return "lookup"
	case CodePrecondition:
		return "precondition"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the core.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same code, so errors.Is(err, ErrLookup)
// works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message != "" && t.Message != e.Message {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrValidation   = &Error{Code: CodeValidation}
	ErrLookup       = &Error{Code: CodeLookup}
	ErrPrecondition = &Error{Code: CodePrecondition}
	// ErrMatchOver is returned when a turn is requested after the match ended.
	ErrMatchOver = &Error{Code: CodePrecondition, Message: "match is over"}
)

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}
