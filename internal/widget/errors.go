package widget

import (
	"errors"
	"fmt"
)

// Construction errors. Render never fails; everything that can go wrong is
// rejected when a widget is built or wired.
var (
	// ErrInvalidGeometry indicates a negative size or a progress bar
	// too narrow to hold both brackets.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidRange indicates a progress bar whose min equals its max.
	ErrInvalidRange = errors.New("invalid range")

	// ErrNilChild indicates an attempt to add a nil child.
	ErrNilChild = errors.New("nil child")

	// ErrAlreadyOwned indicates the child already belongs to a panel.
	ErrAlreadyOwned = errors.New("widget already owned by a panel")

	// ErrCycle indicates the child contains the panel it is added to.
	ErrCycle = errors.New("widget tree cycle")
)

// ConstructionError describes which widget field failed validation.
type ConstructionError struct {
	Widget string // Widget kind (e.g., "panel", "progress")
	Field  string // Offending field (e.g., "width", "range")
	Value  int    // Offending value
	Err    error  // Sentinel error
}

func newConstructionError(widget, field string, value int, err error) *ConstructionError {
	return &ConstructionError{
		Widget: widget,
		Field:  field,
		Value:  value,
		Err:    err,
	}
}

func (e *ConstructionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s %d: %v", e.Widget, e.Field, e.Value, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
