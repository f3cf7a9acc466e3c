// Package share converts selections to and from compact, URL-safe share
// tokens and the selection JSON format.
package share

import (
	"encoding/json"
	"errors"
	"reflect"

	"github.com/arc-language/appanvil/internal/schema"
	"github.com/arc-language/appanvil/pkg/plan"
)

// CurrentVersion is the payload version written by this package.
const CurrentVersion = 1

// Payload is a shareable selection: catalog ids plus generator options.
type Payload struct {
	Version     int          `json:"version"`
	SelectedIDs []string     `json:"selectedIds"`
	Options     plan.Options `json:"options"`
}

// NewPayload builds a current-version payload for ids.
func NewPayload(ids []string, opts plan.Options) Payload {
	return Payload{
		Version:     CurrentVersion,
		SelectedIDs: dedupe(ids),
		Options:     opts,
	}
}

// Normalize returns p with duplicate ids removed, keeping first occurrences.
func Normalize(p Payload) Payload {
	return Payload{
		Version:     p.Version,
		SelectedIDs: dedupe(p.SelectedIDs),
		Options: plan.Options{
			SilentInstall:      p.Options.SilentInstall,
			ContinueOnError:    p.Options.ContinueOnError,
			IncludeMsStoreApps: p.Options.IncludeMsStoreApps,
		},
	}
}

// Validate checks p against the payload schema.
func Validate(p Payload) error {
	return wireFrom(p).validate()
}

// wirePayload is the decoded form of a payload. Pointers distinguish missing
// fields from zero values.
type wirePayload struct {
	Version     *int         `json:"version" validate:"required,gt=0"`
	SelectedIDs []string     `json:"selectedIds" validate:"required,min=1,dive,min=1"`
	Options     *wireOptions `json:"options" validate:"required"`
}

type wireOptions struct {
	SilentInstall      *bool `json:"silentInstall" validate:"required"`
	ContinueOnError    *bool `json:"continueOnError" validate:"required"`
	IncludeMsStoreApps *bool `json:"includeMsStoreApps" validate:"required"`
}

func wireFrom(p Payload) wirePayload {
	version := p.Version
	silent, cont, store := p.Options.SilentInstall, p.Options.ContinueOnError, p.Options.IncludeMsStoreApps
	return wirePayload{
		Version:     &version,
		SelectedIDs: p.SelectedIDs,
		Options: &wireOptions{
			SilentInstall:      &silent,
			ContinueOnError:    &cont,
			IncludeMsStoreApps: &store,
		},
	}
}

func (w wirePayload) validate() error {
	if issue := schema.Check(w); issue != nil {
		return &ValidationError{Field: issue.Field, Message: issue.Message}
	}
	return nil
}

func (w wirePayload) payload() Payload {
	return Normalize(Payload{
		Version:     *w.Version,
		SelectedIDs: w.SelectedIDs,
		Options: plan.Options{
			SilentInstall:      *w.Options.SilentInstall,
			ContinueOnError:    *w.Options.ContinueOnError,
			IncludeMsStoreApps: *w.Options.IncludeMsStoreApps,
		},
	})
}

// parsePayload decodes and validates JSON data. syntaxErr is returned when
// data is not JSON at all.
func parsePayload(data []byte, syntaxErr error) (Payload, error) {
	var w wirePayload
	if err := json.Unmarshal(data, &w); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Payload{}, &ValidationError{Field: typeErr.Field, Message: "must be " + jsonKind(typeErr.Type)}
		}
		return Payload{}, syntaxErr
	}

	if err := w.validate(); err != nil {
		return Payload{}, err
	}
	return w.payload(), nil
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	}
	return "of type " + t.String()
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
