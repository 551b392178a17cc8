package gateway

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jrsteele09/restaurant-console/internal/errors"
)

// ErrUnauthenticated matches a 401 from the backend. The console treats it as
// the end of the session.
var ErrUnauthenticated = errors.ErrUnauthenticated

// StatusError is a non-2xx backend response
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("gateway %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("gateway %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case errors.ErrUnauthenticated:
		return e.StatusCode == 401
	case errors.ErrNotFound:
		return e.StatusCode == 404
	default:
		return false
	}
}

// Message extracts a human readable reason from the response body. It
// understands {"detail": ...}, {"message": ...}, {"error": ...} and
// field keyed validation maps such as {"name": ["This field is required."]}.
func (e *StatusError) Message() string {
	var body map[string]any
	if err := json.Unmarshal([]byte(e.Body), &body); err != nil || len(body) == 0 {
		return fmt.Sprintf("The server rejected the request (status %d)", e.StatusCode)
	}
	for _, key := range []string{"detail", "message", "error", "non_field_errors"} {
		if v, ok := body[key]; ok {
			if s := flatten(v); s != "" {
				return s
			}
		}
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if s := flatten(body[k]); s != "" {
			parts = append(parts, k+": "+s)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("The server rejected the request (status %d)", e.StatusCode)
	}
	return strings.Join(parts, "; ")
}

func flatten(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := flatten(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
