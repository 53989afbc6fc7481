package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDetail_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantType ErrorDetail
		want     string
	}{
		{
			name:     "text",
			body:     `{"detail": "Email already registered"}`,
			wantType: TextDetail(""),
			want:     "Email already registered",
		},
		{
			name: "field errors",
			body: `{"detail": [
				{"loc": ["body", "email"], "msg": "value is not a valid email address", "type": "value_error"},
				{"loc": ["body", "password"], "msg": "field required", "type": "missing"}
			]}`,
			wantType: FieldErrors(nil),
			want:     "email: value is not a valid email address; password: field required",
		},
		{
			name:     "list of strings",
			body:     `{"detail": ["too short", "too common"]}`,
			wantType: FieldErrors(nil),
			want:     "too short; too common",
		},
		{
			name:     "structured",
			body:     `{"detail": {"username": "taken", "email": ["invalid", "blocked"]}}`,
			wantType: StructuredDetail(nil),
			want:     "email: invalid, blocked; username: taken",
		},
		{
			name:     "message key fallback",
			body:     `{"message": "rate limited"}`,
			wantType: TextDetail(""),
			want:     "rate limited",
		},
		{
			name:     "plain text body",
			body:     `Service Unavailable`,
			wantType: TextDetail(""),
			want:     "Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parseDetail([]byte(tt.body))
			if assert.NotNil(t, d) {
				assert.IsType(t, tt.wantType, d)
				assert.Equal(t, tt.want, d.Flatten())
			}
		})
	}
}

func TestParseDetail_Nothing(t *testing.T) {
	for _, body := range []string{``, `{}`, `{"detail": ""}`, `{"detail": []}`, `<html>oops</html>`} {
		assert.Nil(t, parseDetail([]byte(body)), body)
	}
}

func TestAPIError_MessageAndUnwrap(t *testing.T) {
	withDetail := &APIError{Status: http.StatusBadRequest, Detail: TextDetail("bad link")}
	assert.Equal(t, "bad link", withDetail.Message())
	assert.Equal(t, "api error 400: bad link", withDetail.Error())

	bare := &APIError{Status: http.StatusInternalServerError}
	assert.Equal(t, "Internal Server Error", bare.Message())

	assert.ErrorIs(t, &APIError{Status: http.StatusUnauthorized}, ErrUnauthorized)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", &APIError{Status: http.StatusNotFound}), ErrNotFound)
	assert.False(t, errors.Is(bare, ErrUnauthorized))
}

func TestMessage(t *testing.T) {
	assert.Empty(t, Message(nil, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
	assert.Equal(t, ConnectivityMessage, Message(fmt.Errorf("%w: dial tcp", ErrUnavailable), "fallback"))
	assert.Equal(t, "nope", Message(fmt.Errorf("save: %w", &APIError{Status: 422, Detail: TextDetail("nope")}), "fallback"))
}
