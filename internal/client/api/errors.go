package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrNoToken      = errors.New("login response carries no access token")
)

// ErrorDetail is the decoded "detail" of a backend rejection. It is one of
// TextDetail, FieldErrors or StructuredDetail.
type ErrorDetail interface {
	// Flatten renders the detail as one display string.
	Flatten() string
}

// TextDetail is a plain message: {"detail": "Email already registered"}.
type TextDetail string

func (d TextDetail) Flatten() string { return string(d) }

// FieldError is one element of a list-shaped detail. Loc is the path to the
// offending field as reported by the backend, e.g. ["body", "email"].
type FieldError struct {
	Loc []string
	Msg string
}

// FieldErrors is a list-shaped detail.
type FieldErrors []FieldError

func (d FieldErrors) Flatten() string {
	parts := make([]string, 0, len(d))
	for _, fe := range d {
		field := fieldName(fe.Loc)
		if field == "" {
			parts = append(parts, fe.Msg)
			continue
		}
		parts = append(parts, field+": "+fe.Msg)
	}
	return strings.Join(parts, "; ")
}

// fieldName drops the leading location kind ("body", "query", ...) from loc.
func fieldName(loc []string) string {
	if len(loc) > 1 && slices.Contains([]string{"body", "query", "path", "header", "form"}, loc[0]) {
		loc = loc[1:]
	}
	return strings.Join(loc, ".")
}

// StructuredDetail is an object-shaped detail.
type StructuredDetail map[string]any

func (d StructuredDetail) Flatten() string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, flattenValue(d[k])))
	}
	return strings.Join(parts, "; ")
}

func flattenValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			parts = append(parts, flattenValue(e))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		return StructuredDetail(x).Flatten()
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// parseDetail decodes the error body of a rejected request. It understands
// {"detail": ...} in all three shapes and falls back to "message"/"error"
// keys. It returns nil when the body carries nothing usable.
func parseDetail(body []byte) ErrorDetail {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		if s := strings.TrimSpace(string(body)); s != "" && !strings.HasPrefix(s, "<") {
			return TextDetail(s)
		}
		return nil
	}

	for _, key := range []string{"detail", "message", "error"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		if d := decodeDetail(raw); d != nil {
			return d
		}
	}
	return nil
}

func decodeDetail(raw json.RawMessage) ErrorDetail {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if text == "" {
			return nil
		}
		return TextDetail(text)
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		fes := make(FieldErrors, 0, len(list))
		for _, item := range list {
			fes = append(fes, toFieldError(item))
		}
		if len(fes) == 0 {
			return nil
		}
		return fes
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil && len(obj) > 0 {
		return StructuredDetail(obj)
	}
	return nil
}

func toFieldError(item any) FieldError {
	m, ok := item.(map[string]any)
	if !ok {
		return FieldError{Msg: flattenValue(item)}
	}

	fe := FieldError{}
	if msg, ok := m["msg"].(string); ok {
		fe.Msg = msg
	} else {
		fe.Msg = StructuredDetail(m).Flatten()
	}
	if loc, ok := m["loc"].([]any); ok {
		for _, p := range loc {
			fe.Loc = append(fe.Loc, fmt.Sprint(p))
		}
	}
	return fe
}

// APIError is a non-2xx response.
type APIError struct {
	Status int
	Detail ErrorDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message())
}

// Message is the backend's own explanation, or the status text when it gave none.
func (e *APIError) Message() string {
	if e.Detail != nil {
		if s := e.Detail.Flatten(); s != "" {
			return s
		}
	}
	return http.StatusText(e.Status)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// ConnectivityMessage is shown when no response was received.
const ConnectivityMessage = "cannot reach the TapCard server, check your connection"

// Message converts err into a single user-facing line. Backend rejections
// show the backend message, transport failures a generic connectivity
// message, and anything else fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return apiErr.Message()
	case errors.Is(err, ErrUnavailable):
		return ConnectivityMessage
	default:
		return fallback
	}
}
