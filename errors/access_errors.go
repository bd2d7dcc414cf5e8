package errors

import (
	"errors"
	"fmt"

	"github.com/dev-rpatel/janus/model"
)

var (
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is the sentinel behind every policy rejection; callers
	// match it with errors.Is without caring about the deny details.
	ErrForbidden = errors.New("access denied by policy")

	// ErrInvalidAccessRequest covers malformed decision requests on the
	// HTTP surface.
	ErrInvalidAccessRequest = errors.New("invalid access request")
)

// MissingAttributeError is raised when a designator marked MustBePresent
// finds no attribute in the request context. The evaluator converts it
// into an Indeterminate decision, which default-deny then rejects.
type MissingAttributeError struct {
	Category    model.Category
	AttributeID string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("required attribute %s/%s not present in request context", e.Category, e.AttributeID)
}

// ForbiddenError carries the deny reason for operator logs. The reason is
// never surfaced to the caller beyond the generic rejection message.
type ForbiddenError struct {
	Action string
	Reason string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("access denied by policy: action %q", e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
