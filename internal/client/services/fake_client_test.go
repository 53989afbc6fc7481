package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/tapcard/internal/client/api"
	"github.com/dmitrijs2005/tapcard/internal/client/models"
)

// fakeClient is an in-memory api.Client. Links whose URL is listed in
// rejectURL fail with a 422.
type fakeClient struct {
	mu sync.Mutex

	profile   *models.Profile
	public    map[string]*models.Profile
	links     map[int64]models.SocialLink
	nextID    int64
	rejectURL map[string]bool

	profileErr error
	updates    []models.ProfileUpdate
	creates    int
	linkCalls  int
	lookups    []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		profile:   &models.Profile{Username: "ann", Email: "ann@x.io"},
		public:    map[string]*models.Profile{},
		links:     map[int64]models.SocialLink{},
		nextID:    100,
		rejectURL: map[string]bool{},
	}
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(context.Context, string, string) (string, error) {
	return "tok", nil
}

func (f *fakeClient) Register(context.Context, models.Credentials) error { return nil }

func (f *fakeClient) GetProfile(context.Context) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, upd models.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.profileErr != nil {
		return f.profileErr
	}
	f.updates = append(f.updates, upd)
	return nil
}

func (f *fakeClient) ListSocialLinks(context.Context) ([]models.SocialLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.SocialLink, 0, len(f.links))
	for _, l := range f.links {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeClient) CreateSocialLink(_ context.Context, in models.SocialLinkInput) (*models.SocialLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkCalls++
	if f.rejectURL[in.URL] {
		return nil, &api.APIError{Status: 422, Detail: api.TextDetail("link rejected")}
	}
	f.creates++
	f.nextID++
	id := f.nextID
	l := models.SocialLink{ID: &id, PlatformName: in.PlatformName, URL: in.URL}
	f.links[id] = l
	return &l, nil
}

func (f *fakeClient) UpdateSocialLink(_ context.Context, id int64, in models.SocialLinkInput) (*models.SocialLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkCalls++
	if f.rejectURL[in.URL] {
		return nil, &api.APIError{Status: 422, Detail: api.TextDetail("link rejected")}
	}
	if _, ok := f.links[id]; !ok {
		return nil, &api.APIError{Status: 404, Detail: api.TextDetail("Link not found")}
	}
	l := models.SocialLink{ID: &id, PlatformName: in.PlatformName, URL: in.URL}
	f.links[id] = l
	return &l, nil
}

func (f *fakeClient) DeleteSocialLink(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.links[id]; !ok {
		return &api.APIError{Status: 404}
	}
	delete(f.links, id)
	return nil
}

func (f *fakeClient) GetPublicProfile(_ context.Context, accountID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, accountID)
	p, ok := f.public[accountID]
	if !ok {
		return nil, &api.APIError{Status: 404, Detail: api.TextDetail("User not found")}
	}
	return p, nil
}

var errBoom = errors.New("boom")
