// Package models defines the client-side view of TapCard backend entities.
package models

import (
	"strings"
	"time"
)

// Profile is owned by the backend; the client only holds the last fetched copy.
type Profile struct {
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	FullName       string       `json:"full_name,omitempty"`
	JobTitle       string       `json:"job_title,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	ProfilePicture string       `json:"profile_picture,omitempty"`
	CreatedAt      *time.Time   `json:"created_at,omitempty"`
	SocialLinks    []SocialLink `json:"social_links,omitempty"`
}

// ProfileUpdate is the body of PUT /user/profile.
type ProfileUpdate struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name"`
	JobTitle string `json:"job_title,omitempty"`
	Bio      string `json:"bio"`
}

// Update returns the editable subset of p.
func (p *Profile) Update() ProfileUpdate {
	return ProfileUpdate{
		Username: p.Username,
		Email:    p.Email,
		FullName: p.FullName,
		JobTitle: p.JobTitle,
		Bio:      p.Bio,
	}
}

// IsComplete reports whether the profile has everything a shared card shows.
// Only complete profiles get a QR code.
func (p *Profile) IsComplete() bool {
	if p == nil {
		return false
	}
	for _, f := range []string{p.FullName, p.JobTitle, p.Bio, p.Username} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// DisplayName is what a greeting shows for the profile.
func (p *Profile) DisplayName() string {
	if p == nil || strings.TrimSpace(p.FullName) == "" {
		return "User"
	}
	return p.FullName
}
