package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("todo: validation failed")
	// ErrUnknownAction matches any *UnknownActionError via errors.Is.
	ErrUnknownAction = errors.New("todo: unknown action")
)

// ValidationError reports a malformed todo item. Index is the item's
// position in the submitted list, or -1 when the list itself is malformed.
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Index < 0 && e.Field != "":
		return fmt.Sprintf("'%s' %s", e.Field, e.Reason)
	case e.Index < 0:
		return e.Reason
	case e.Field == "":
		return fmt.Sprintf("Todo %d %s", e.Index, e.Reason)
	default:
		return fmt.Sprintf("Todo %d field '%s' %s", e.Index, e.Field, e.Reason)
	}
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UnknownActionError reports an action outside create, update and list.
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("Unknown action: %s. Valid actions: %s", e.Action, actionNames())
}

// Is lets errors.Is(err, ErrUnknownAction) match.
func (e *UnknownActionError) Is(target error) bool {
	return target == ErrUnknownAction
}

// Validate checks every item against the three-field schema. It stops at the
// first bad item. Nothing beyond the per-item schema is checked: any number
// of items may be in_progress.
func Validate(todos []Item) error {
	for i, t := range todos {
		if t.Content == "" {
			return &ValidationError{Index: i, Field: "content", Reason: "is required"}
		}
		if t.ActiveForm == "" {
			return &ValidationError{Index: i, Field: "activeForm", Reason: "is required"}
		}
		if t.Status == "" {
			return &ValidationError{Index: i, Field: "status", Reason: "is required"}
		}
		if !t.Status.Valid() {
			return &ValidationError{Index: i, Field: "status", Reason: invalidStatusReason(string(t.Status))}
		}
	}
	return nil
}

func invalidStatusReason(got string) string {
	return fmt.Sprintf("must be one of pending, in_progress, completed (got %q)", got)
}
