package share

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyToken indicates a blank share token
	ErrEmptyToken = errors.New("share token is empty")

	// ErrDecode indicates a token that does not decompress
	ErrDecode = errors.New("share token could not be decoded")

	// ErrMalformedPayload indicates a token that decompressed to something other than JSON
	ErrMalformedPayload = errors.New("share token did not decode to JSON")

	// ErrInvalidJSON indicates selection JSON text that does not parse
	ErrInvalidJSON = errors.New("selection JSON is not valid JSON")

	// ErrValidation indicates a payload that parsed but failed the schema
	ErrValidation = errors.New("share payload is invalid")

	// ErrEncoding indicates a payload that could not be turned into a token
	ErrEncoding = errors.New("failed to encode share payload")

	// ErrEmptyInput indicates blank pasted text
	ErrEmptyInput = errors.New("input is empty")

	// ErrMissingToken indicates a share URL with nothing after the marker
	ErrMissingToken = errors.New("share URL does not contain a token")
)

// ValidationError reports the first schema constraint a payload failed.
type ValidationError struct {
	Field   string // JSON path, empty for the document itself
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
