package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tapcard/internal/client/models"
	"github.com/dmitrijs2005/tapcard/internal/logging"
)

const (
	RequestIDHeader = "X-Request-ID"

	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

type HTTPClient struct {
	baseURL        string
	http           *http.Client
	timeout        time.Duration
	tokens         TokenSource
	onUnauthorized func(ctx context.Context, rejected string)
	log            logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (tests use the one
// from httptest.Server).
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds each request. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l.With("component", "api") }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: defaultTimeout,
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Bind attaches the token source and the handler run after a 401 on an
// authenticated call. The handler receives the token that was rejected. The session is built on top of the client, so the two
// are connected after construction; call Bind before the client is shared.
func (c *HTTPClient) Bind(tokens TokenSource, onUnauthorized func(ctx context.Context, rejected string)) {
	c.tokens = tokens
	c.onUnauthorized = onUnauthorized
}

// BaseURL is the backend root the client talks to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

type request struct {
	method string
	path   string
	json   any
	form   url.Values
	auth   bool
}

func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.form != nil:
		body = strings.NewReader(r.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.json != nil:
		b, err := json.Marshal(r.json)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	var token string
	if r.auth && c.tokens != nil {
		t, err := c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		token = t
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn(ctx, "request failed", "method", r.method, "path", r.path, "request_id", reqID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done",
		"method", r.method, "path", r.path, "status", resp.StatusCode,
		"request_id", reqID, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{Status: resp.StatusCode, Detail: parseDetail(raw)}

		if resp.StatusCode == http.StatusUnauthorized && r.auth && c.onUnauthorized != nil {
			c.log.Info(ctx, "authenticated call rejected, ending session", "path", r.path, "request_id", reqID)
			c.onUnauthorized(ctx, token)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", form: form}, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", ErrNoToken
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, creds models.Credentials) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/auth/register", json: creds}, nil)
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, request{method: http.MethodGet, path: "/user/profile", auth: true}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error {
	return c.do(ctx, request{method: http.MethodPut, path: "/user/profile", json: upd, auth: true}, nil)
}

func (c *HTTPClient) ListSocialLinks(ctx context.Context) ([]models.SocialLink, error) {
	links := make([]models.SocialLink, 0)
	if err := c.do(ctx, request{method: http.MethodGet, path: "/user/social-links", auth: true}, &links); err != nil {
		return nil, err
	}
	if links == nil {
		links = []models.SocialLink{}
	}
	return links, nil
}

func (c *HTTPClient) CreateSocialLink(ctx context.Context, in models.SocialLinkInput) (*models.SocialLink, error) {
	var link models.SocialLink
	if err := c.do(ctx, request{method: http.MethodPost, path: "/user/social-links", json: in, auth: true}, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *HTTPClient) UpdateSocialLink(ctx context.Context, id int64, in models.SocialLinkInput) (*models.SocialLink, error) {
	var link models.SocialLink
	path := "/user/social-links/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, request{method: http.MethodPut, path: path, json: in, auth: true}, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *HTTPClient) DeleteSocialLink(ctx context.Context, id int64) error {
	path := "/user/social-links/" + strconv.FormatInt(id, 10)
	return c.do(ctx, request{method: http.MethodDelete, path: path, auth: true}, nil)
}

func (c *HTTPClient) GetPublicProfile(ctx context.Context, accountID string) (*models.Profile, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, errors.New("empty account identifier")
	}

	var p models.Profile
	path := "/user/api/user/profile/" + url.PathEscape(accountID)
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
