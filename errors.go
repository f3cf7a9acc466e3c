package appanvil

import (
	"errors"
	"fmt"
)

var (
	// ErrPackageNotFound indicates a selected id is not in the catalog
	ErrPackageNotFound = errors.New("package not found")

	// ErrEmptySelection indicates nothing was selected
	ErrEmptySelection = errors.New("no packages selected")

	// ErrNoCatalog indicates no catalog source was configured
	ErrNoCatalog = errors.New("no catalog configured")
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package id if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
