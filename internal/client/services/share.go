package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/dmitrijs2005/tapcard/internal/client/api"
	"github.com/dmitrijs2005/tapcard/internal/client/models"
)

var (
	ErrInvalidPayload    = errors.New("invalid QR payload")
	ErrProfileIncomplete = errors.New("profile is incomplete: full name, job title, bio and username are required to share it")
)

// EncodePayload builds the QR payload for an account: <base>/user/<id>.
func EncodePayload(base, accountID string) string {
	return strings.TrimRight(base, "/") + "/user/" + url.PathEscape(accountID)
}

// ParsePayload extracts the account identifier from a scanned payload: the
// last path segment, trimmed. A payload ending in "/" has no identifier, and
// neither does a URL without a path ("https://svc").
func ParsePayload(payload string) (string, error) {
	p := strings.TrimSpace(payload)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if u, err := url.Parse(p); err == nil && u.IsAbs() && u.Host != "" && strings.Trim(u.Path, "/") == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPayload, payload)
	}

	seg := p[strings.LastIndex(p, "/")+1:]
	if unescaped, err := url.PathUnescape(seg); err == nil {
		seg = unescaped
	}
	seg = strings.TrimSpace(seg)
	if seg == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidPayload, payload)
	}
	return seg, nil
}

// RenderQR writes payload to w as a QR code drawn with block characters.
func RenderQR(w io.Writer, payload string) error {
	q, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}
	_, err = io.WriteString(w, q.ToSmallString(false))
	return err
}

type ShareService interface {
	// Card returns the signed-in user's profile and its QR payload. The
	// payload is empty and ErrProfileIncomplete returned when the profile
	// cannot be shared yet.
	Card(ctx context.Context) (*models.Profile, string, error)
	// Lookup resolves a scanned payload to the public profile it names.
	Lookup(ctx context.Context, payload string) (*models.Profile, error)
}

type shareService struct {
	client  api.Client
	baseURL string
}

func NewShareService(client api.Client, baseURL string) ShareService {
	return &shareService{client: client, baseURL: baseURL}
}

func (s *shareService) Card(ctx context.Context) (*models.Profile, string, error) {
	p, err := s.client.GetProfile(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load profile: %w", err)
	}
	if !p.IsComplete() {
		return p, "", ErrProfileIncomplete
	}
	return p, EncodePayload(s.baseURL, p.Username), nil
}

func (s *shareService) Lookup(ctx context.Context, payload string) (*models.Profile, error) {
	id, err := ParsePayload(payload)
	if err != nil {
		return nil, err
	}
	p, err := s.client.GetPublicProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("look up %q: %w", id, err)
	}
	return p, nil
}
