package errors

import "fmt"

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Script parsing errors. The parser is the validation boundary: the engine
// assumes every value it receives already passed these checks.
var (
	ErrInvalidFieldCount = fmt.Errorf("invalid field count")
	ErrInvalidAction     = fmt.Errorf("invalid action")
	ErrInvalidPatientID  = fmt.Errorf("invalid patient id")
	ErrInvalidSeverity   = fmt.Errorf("invalid severity")
	ErrEmptyName         = fmt.Errorf("empty patient name")
	ErrEmptyRecord       = fmt.Errorf("empty record")
)

// Construction errors. A bounded structure or a rotation cannot exist in an
// invalid state, so these fail the constructor instead of being tolerated.
var (
	ErrInvalidCapacity = fmt.Errorf("capacity must be positive")
	ErrNoResources     = fmt.Errorf("at least one resource is required")
)
