// Package schema wraps go-playground/validator with the field naming and
// message wording used by catalog files and selection payloads.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Issue describes the first constraint a value failed.
type Issue struct {
	Field   string // JSON path, e.g. "options.silentInstall" or "selectedIds[0]"
	Message string
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("pkgtoken", isPackageToken); err != nil {
		panic(err)
	}
	return v
}

// packageTokenUnsafe are characters a shell or cmd.exe would treat as syntax.
const packageTokenUnsafe = "&|<>^%!\"'`$;,=()*?[]{}~"

// isPackageToken backs the "pkgtoken" tag: a single command-line word with no
// whitespace, control characters or shell syntax.
func isPackageToken(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune(packageTokenUnsafe, r) {
			return false
		}
	}
	return true
}

// Check validates v against its `validate` struct tags and returns the first
// failing constraint, or nil when v is valid.
func Check(v any) *Issue {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &Issue{Message: err.Error()}
	}

	fe := verrs[0]
	return &Issue{
		Field:   fieldPath(fe.Namespace()),
		Message: describe(fe),
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_without_all":
		return "at least one provider mapping is required"
	case "pkgtoken":
		return "must not contain whitespace or shell metacharacters"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be %s %s characters long", bound, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain %s %s items", bound, fe.Param())
		default:
			return fmt.Sprintf("must be %s %s", bound, fe.Param())
		}
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}
