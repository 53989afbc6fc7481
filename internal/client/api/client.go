package api

import (
	"context"

	"github.com/dmitrijs2005/tapcard/internal/client/models"
)

type Client interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, creds models.Credentials) error

	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) error

	ListSocialLinks(ctx context.Context) ([]models.SocialLink, error)
	CreateSocialLink(ctx context.Context, in models.SocialLinkInput) (*models.SocialLink, error)
	UpdateSocialLink(ctx context.Context, id int64, in models.SocialLinkInput) (*models.SocialLink, error)
	DeleteSocialLink(ctx context.Context, id int64) error

	// GetPublicProfile looks up another user's card; it is sent without credentials.
	GetPublicProfile(ctx context.Context, accountID string) (*models.Profile, error)
}

// TokenSource yields the bearer token to attach to an authenticated call.
// It may block until the token is known; "" means no token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
