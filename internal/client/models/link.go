package models

import (
	"fmt"
	"strings"
)

// SocialLink is one entry of a user's link list. A link without an ID has not
// been saved yet; saving it creates it, saving a link with an ID updates it.
type SocialLink struct {
	ID           *int64 `json:"id,omitempty"`
	PlatformName string `json:"platform_name" validate:"required"`
	URL          string `json:"link_url" validate:"required"`
}

// IsSaved reports whether the backend has assigned the link an ID.
func (l SocialLink) IsSaved() bool {
	return l.ID != nil
}

// Label identifies the link in messages.
func (l SocialLink) Label() string {
	if l.ID != nil {
		return fmt.Sprintf("%s (#%d)", l.PlatformName, *l.ID)
	}
	return fmt.Sprintf("%s (new)", l.PlatformName)
}

// SocialLinkInput is the body sent to create or update a link.
type SocialLinkInput struct {
	PlatformName string `json:"platform_name"`
	URL          string `json:"link_url"`
}

// Input is the request body for l, with surrounding whitespace removed.
func (l SocialLink) Input() SocialLinkInput {
	return SocialLinkInput{
		PlatformName: strings.TrimSpace(l.PlatformName),
		URL:          strings.TrimSpace(l.URL),
	}
}

// Credentials is the registration payload.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
