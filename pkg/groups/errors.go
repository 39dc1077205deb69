package groups

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBeforeReference indicates a before id that is not a layer of
	// the target group.
	ErrInvalidBeforeReference = errors.New("before id must be a layer id within the same group")

	// ErrEmptyGroupID indicates an add operation without a group id.
	ErrEmptyGroupID = errors.New("group id is empty")
)

// BeforeReferenceError reports which group and before id were rejected.
type BeforeReferenceError struct {
	GroupID  string
	BeforeID string
}

func (e *BeforeReferenceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("groups: add to %s before %q: %v", e.GroupID, e.BeforeID, ErrInvalidBeforeReference)
}

func (e *BeforeReferenceError) Unwrap() error {
	return ErrInvalidBeforeReference
}
