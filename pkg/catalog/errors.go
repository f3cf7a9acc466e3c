package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat indicates a catalog file extension we cannot decode
	ErrUnsupportedFormat = errors.New("unsupported catalog format")

	// ErrInvalidCatalog indicates the catalog failed validation
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrDuplicateID indicates two records share an id
	ErrDuplicateID = errors.New("duplicate package id")
)

// ValidationError reports the first problem found in a catalog.
type ValidationError struct {
	Index   int    // position of the offending record, -1 when not record specific
	ID      string // record id if known
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	var where string
	switch {
	case e.ID != "":
		where = fmt.Sprintf("record %q", e.ID)
	case e.Index >= 0:
		where = fmt.Sprintf("record #%d", e.Index)
	default:
		where = "catalog"
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", where, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidCatalog
}
