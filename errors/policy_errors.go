// errors/policy_errors.go
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPolicyDocument = errors.New("invalid policy document")
	ErrDuplicatePolicyID     = errors.New("duplicate policy id")
	ErrDuplicateRuleID       = errors.New("duplicate rule id")
	ErrUnknownFunction       = errors.New("unknown function")
	ErrUnknownCombining      = errors.New("unsupported combining algorithm")
	ErrInternalServer        = errors.New("internal server error")
)

// ParseError reports why a policy document was rejected at load time. A
// rejected document never becomes the active policy set; callers keep
// serving the previously loaded set.
type ParseError struct {
	// Location names the element the parser was looking at, e.g.
	// "policy user-operations, rule delete-own-file".
	Location string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("policy parse error: %v", e.Err)
	}
	return fmt.Sprintf("policy parse error at %s: %v", e.Location, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError wraps err with the location of the offending element.
func NewParseError(location string, err error) *ParseError {
	return &ParseError{Location: location, Err: err}
}
