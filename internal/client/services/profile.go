// Package services contains the application services behind the TapCard
// REPL. ProfileService edits the signed-in user's card and saves its links in
// one concurrent batch; ShareService turns a card into a QR payload and back.
package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/tapcard/internal/client/api"
	"github.com/dmitrijs2005/tapcard/internal/client/models"
	"github.com/dmitrijs2005/tapcard/internal/client/validate"
	"github.com/dmitrijs2005/tapcard/internal/logging"
)

const DefaultBatchConcurrency = 4

// ProfileService manages the signed-in user's profile and social links.
//
// Contract:
//   - SaveLinks validates every link's required fields before any request;
//     the first invalid link aborts the whole save with *validate.Errors.
//   - Within a batch each link is created (no ID) or updated (has ID)
//     independently; one failing link never cancels the others.
//   - SaveAll saves the profile first; if that fails no link is sent.
type ProfileService interface {
	Get(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, upd models.ProfileUpdate) error
	ListLinks(ctx context.Context) ([]models.SocialLink, error)
	DeleteLink(ctx context.Context, id int64) error
	SaveLinks(ctx context.Context, links []models.SocialLink) (*BatchResult, error)
	SaveAll(ctx context.Context, upd models.ProfileUpdate, links []models.SocialLink) (*BatchResult, error)
}

type profileService struct {
	client      api.Client
	concurrency int
	log         logging.Logger
}

func NewProfileService(client api.Client, concurrency int, log logging.Logger) ProfileService {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	if log == nil {
		log = logging.Discard()
	}
	return &profileService{client: client, concurrency: concurrency, log: log.With("component", "profile")}
}

func (s *profileService) Get(ctx context.Context) (*models.Profile, error) {
	p, err := s.client.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, upd models.ProfileUpdate) error {
	if err := validate.Struct(upd); err != nil {
		return err
	}
	if err := s.client.UpdateProfile(ctx, upd); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *profileService) ListLinks(ctx context.Context) ([]models.SocialLink, error) {
	links, err := s.client.ListSocialLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load links: %w", err)
	}
	return links, nil
}

func (s *profileService) DeleteLink(ctx context.Context, id int64) error {
	if err := s.client.DeleteSocialLink(ctx, id); err != nil {
		return fmt.Errorf("delete link %d: %w", id, err)
	}
	return nil
}

func (s *profileService) SaveAll(ctx context.Context, upd models.ProfileUpdate, links []models.SocialLink) (*BatchResult, error) {
	if err := validate.Struct(upd); err != nil {
		return nil, err
	}
	if err := preflight(links); err != nil {
		return nil, err
	}
	if err := s.client.UpdateProfile(ctx, upd); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return s.saveBatch(ctx, links), nil
}

func (s *profileService) SaveLinks(ctx context.Context, links []models.SocialLink) (*BatchResult, error) {
	if err := preflight(links); err != nil {
		return nil, err
	}
	return s.saveBatch(ctx, links), nil
}

func preflight(links []models.SocialLink) error {
	for _, l := range links {
		if err := validate.Struct(l); err != nil {
			return err
		}
	}
	return nil
}

func (s *profileService) saveBatch(ctx context.Context, links []models.SocialLink) *BatchResult {
	res := &BatchResult{Results: make([]LinkResult, len(links))}

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, link := range links {
		g.Go(func() error {
			saved, err := s.saveLink(ctx, link)
			res.Results[i] = LinkResult{Index: i, Link: saved, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	out := res.Outcome()
	if out == AllSucceeded {
		s.log.Info(ctx, "links saved", "count", len(links))
	} else {
		s.log.Warn(ctx, "links saved with failures", "outcome", out.String(), "failed", len(res.Failed()), "count", len(links))
	}
	return res
}

func (s *profileService) saveLink(ctx context.Context, link models.SocialLink) (models.SocialLink, error) {
	if err := validate.URL("link_url", link.URL); err != nil {
		return link, err
	}

	var (
		saved *models.SocialLink
		err   error
	)
	if link.IsSaved() {
		saved, err = s.client.UpdateSocialLink(ctx, *link.ID, link.Input())
	} else {
		saved, err = s.client.CreateSocialLink(ctx, link.Input())
	}
	if err != nil {
		s.log.Debug(ctx, "link save failed", "link", link.Label(), "error", err)
		return link, err
	}

	if saved == nil {
		return link, nil
	}
	if saved.ID == nil {
		saved.ID = link.ID
	}
	return *saved, nil
}
