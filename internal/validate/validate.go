// Package validate checks request payloads for comment, article, vote and
// user mutations before any write is attempted. Each payload has a typed
// contract; a failed check yields an *apperr.Error naming the field.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GyroZepelix/newsboard/internal/apperr"
)

// DefaultImageID and DefaultAvatarID reference the placeholder rows inserted
// by the initial migration.
const (
	DefaultImageID  = 1
	DefaultAvatarID = 1
)

var structs = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode reads a single JSON object from r into dst. Malformed JSON, values
// of the wrong type, unknown fields and data after the object are reported
// as invalid format; an empty body is reported as missing information.
func Decode(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.MissingField("")
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return apperr.InvalidFormat(typeErr.Field, err)
		}
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return apperr.InvalidFormat(strings.Trim(field, `"`), err)
		}
		return apperr.InvalidFormat("", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apperr.InvalidFormat("", errors.New("unexpected data after JSON object"))
	}
	return nil
}

// Int parses raw as a base-10 integer within the range of the int4 columns
// that hold ids and vote counts. Anything else is an invalid format of field.
func Int(field, raw string) (int, error) {
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, apperr.InvalidFormat(field, err)
	}
	return int(n), nil
}

// check runs the struct tags of payload and maps the first failure onto an
// apperr category. Absent and blank required fields are missing information;
// any other rule is a format failure.
func check(payload any) error {
	err := structs.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Internal(fmt.Errorf("validating payload: %w", err))
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required", "min":
		return apperr.MissingField(fe.Field())
	default:
		return apperr.InvalidFormat(fe.Field(), fe)
	}
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
