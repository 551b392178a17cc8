package catalog

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/restaurant-console/internal/errors"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextArea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindInteger  FieldKind = "integer"
	KindBool     FieldKind = "bool"
	KindURL      FieldKind = "url"
	KindEmail    FieldKind = "email"
	KindTime     FieldKind = "time"
	KindDate     FieldKind = "date"
	KindSelect   FieldKind = "select"
)

// Field is one input of a create/edit form
type Field struct {
	Name     string // JSON key sent to the backend
	Label    string
	Kind     FieldKind
	Required bool
	Options  []string // KindSelect only
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// FieldErrors maps a field name to its message
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for k, v := range fe {
		parts = append(parts, k+": "+v)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, ", ")
}

func (fe FieldErrors) Unwrap() error { return errors.ErrValidation }

// Err returns nil when there are no field errors
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ValidateForm checks submitted values against the field specs and converts
// them into a JSON ready payload. Nothing is sent when errors are returned.
func ValidateForm(fields []Field, values url.Values) (map[string]any, FieldErrors) {
	payload := make(map[string]any, len(fields))
	fieldErrs := FieldErrors{}

	for _, f := range fields {
		raw := strings.TrimSpace(values.Get(f.Name))
		if f.Kind == KindBool {
			payload[f.Name] = isChecked(raw)
			continue
		}
		if raw == "" {
			if f.Required {
				fieldErrs[f.Name] = f.Label + " is required"
			}
			continue
		}

		v, err := convert(f, raw)
		if err != nil {
			fieldErrs[f.Name] = err.Error()
			continue
		}
		payload[f.Name] = v
	}
	return payload, fieldErrs
}

func convert(f Field, raw string) (any, error) {
	switch f.Kind {
	case KindNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", f.Label)
		}
		if n < 0 {
			return nil, fmt.Errorf("%s must not be negative", f.Label)
		}
		return n, nil
	case KindInteger:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be a whole number", f.Label)
		}
		if n < 0 {
			return nil, fmt.Errorf("%s must not be negative", f.Label)
		}
		return n, nil
	case KindURL:
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%s must be a valid http(s) URL", f.Label)
		}
		return raw, nil
	case KindEmail:
		if _, err := mail.ParseAddress(raw); err != nil {
			return nil, fmt.Errorf("%s must be a valid email address", f.Label)
		}
		return raw, nil
	case KindTime:
		if !clockPattern.MatchString(raw) {
			return nil, fmt.Errorf("%s must be a time as HH:MM", f.Label)
		}
		return raw, nil
	case KindDate:
		if _, err := time.Parse(time.DateOnly, raw); err != nil {
			return nil, fmt.Errorf("%s must be a date as YYYY-MM-DD", f.Label)
		}
		return raw, nil
	case KindSelect:
		for _, o := range f.Options {
			if o == raw {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("%s must be one of %s", f.Label, strings.Join(f.Options, ", "))
	default:
		return raw, nil
	}
}

func isChecked(raw string) bool {
	switch strings.ToLower(raw) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
