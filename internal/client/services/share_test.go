package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tapcard/internal/client/api"
	"github.com/dmitrijs2005/tapcard/internal/client/models"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		payload string
		want    string
		wantErr bool
	}{
		{payload: "https://svc/user/42", want: "42"},
		{payload: "https://svc/user/ann ", want: "ann"},
		{payload: "https://svc/user/ann?ref=card", want: "ann"},
		{payload: "https://svc/user/j%20doe", want: "j doe"},
		{payload: "ann", want: "ann"},
		{payload: "https://svc/", wantErr: true},
		{payload: "https://svc", wantErr: true},
		{payload: "https://svc?user=ann", wantErr: true},
		{payload: "tapcard://user/ann", want: "ann"},
		{payload: "https://svc/user/   ", wantErr: true},
		{payload: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			got, err := ParsePayload(tt.payload)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodePayload_RoundTrip(t *testing.T) {
	p := EncodePayload("https://svc/", "ann")
	assert.Equal(t, "https://svc/user/ann", p)

	got, err := ParsePayload(EncodePayload("https://svc", "j doe"))
	require.NoError(t, err)
	assert.Equal(t, "j doe", got)
}

func TestRenderQR(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderQR(&buf, "https://svc/user/ann"))
	assert.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), "\n")
}

func TestShareService_Card(t *testing.T) {
	fc := newFakeClient()
	svc := NewShareService(fc, "https://svc")

	p, payload, err := svc.Card(context.Background())
	require.ErrorIs(t, err, ErrProfileIncomplete)
	assert.Empty(t, payload)
	assert.Equal(t, "ann", p.Username)

	fc.profile = &models.Profile{Username: "ann", FullName: "Ann Lee", JobTitle: "Engineer", Bio: "hi"}
	_, payload, err = svc.Card(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://svc/user/ann", payload)

	fc.profileErr = api.ErrUnavailable
	_, _, err = svc.Card(context.Background())
	require.ErrorIs(t, err, api.ErrUnavailable)
}

func TestShareService_Lookup(t *testing.T) {
	fc := newFakeClient()
	fc.public["42"] = &models.Profile{Username: "bob", FullName: "Bob"}
	svc := NewShareService(fc, "https://svc")

	p, err := svc.Lookup(context.Background(), "https://svc/user/42")
	require.NoError(t, err)
	assert.Equal(t, "Bob", p.FullName)

	_, err = svc.Lookup(context.Background(), "https://svc/")
	require.ErrorIs(t, err, ErrInvalidPayload)
	assert.Equal(t, []string{"42"}, fc.lookups, "invalid payload sends nothing")

	_, err = svc.Lookup(context.Background(), "https://svc/user/nobody")
	require.ErrorIs(t, err, api.ErrNotFound)
}
