package devserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/tapcard/internal/client/models"
)

// detailError is an error whose text is sent to the client as "detail".
type detailError string

func (e detailError) Error() string { return string(e) }

const (
	ErrEmailTaken         detailError = "Email already registered"
	ErrUsernameTaken      detailError = "Username already taken"
	ErrInvalidCredentials detailError = "Incorrect username or password"
	ErrUserNotFound       detailError = "User not found"
	ErrLinkNotFound       detailError = "Link not found"
)

type user struct {
	ID           string
	PasswordHash []byte
	Profile      models.Profile
}

// memStore keeps every account in memory. It is safe for concurrent use.
type memStore struct {
	mu       sync.RWMutex
	users    map[string]*user // by ID
	links    map[int64]ownedLink
	nextLink int64
	now      func() time.Time
}

type ownedLink struct {
	owner string
	link  models.SocialLink
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[string]*user),
		links: make(map[int64]ownedLink),
		now:   time.Now,
	}
}

func (s *memStore) findLocked(match func(*user) bool) *user {
	for _, u := range s.users {
		if match(u) {
			return u
		}
	}
	return nil
}

func (s *memStore) byEmailLocked(email string) *user {
	return s.findLocked(func(u *user) bool { return strings.EqualFold(u.Profile.Email, email) })
}

func (s *memStore) byUsernameLocked(name string) *user {
	return s.findLocked(func(u *user) bool { return u.Profile.Username == name })
}

func (s *memStore) createUser(username, email, password string) (*user, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byEmailLocked(email) != nil {
		return nil, ErrEmailTaken
	}
	if s.byUsernameLocked(username) != nil {
		return nil, ErrUsernameTaken
	}

	created := s.now().UTC()
	u := &user{
		ID:           uuid.NewString(),
		PasswordHash: hash,
		Profile:      models.Profile{Username: username, Email: email, CreatedAt: &created},
	}
	s.users[u.ID] = u
	return u, nil
}

// authenticate accepts either the email or the username as login.
func (s *memStore) authenticate(login, password string) (*user, error) {
	s.mu.RLock()
	u := s.byEmailLocked(login)
	if u == nil {
		u = s.byUsernameLocked(login)
	}
	s.mu.RUnlock()

	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *memStore) profile(userID string) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return models.Profile{}, ErrUserNotFound
	}
	return u.Profile, nil
}

func (s *memStore) updateProfile(userID string, upd models.ProfileUpdate) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return models.Profile{}, ErrUserNotFound
	}
	if other := s.byEmailLocked(upd.Email); other != nil && other != u {
		return models.Profile{}, ErrEmailTaken
	}
	if other := s.byUsernameLocked(upd.Username); other != nil && other != u {
		return models.Profile{}, ErrUsernameTaken
	}

	p := &u.Profile
	p.Username, p.Email, p.FullName, p.JobTitle, p.Bio = upd.Username, upd.Email, upd.FullName, upd.JobTitle, upd.Bio
	return *p, nil
}

// publicProfile looks a user up by username, falling back to ID, and embeds
// their links.
func (s *memStore) publicProfile(accountID string) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.byUsernameLocked(accountID)
	if u == nil {
		u = s.users[accountID]
	}
	if u == nil {
		return models.Profile{}, ErrUserNotFound
	}
	p := u.Profile
	p.Email = ""
	p.SocialLinks = s.linksLocked(u.ID)
	return p, nil
}

func (s *memStore) listLinks(userID string) []models.SocialLink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.linksLocked(userID)
}

func (s *memStore) linksLocked(userID string) []models.SocialLink {
	out := make([]models.SocialLink, 0)
	for _, ol := range s.links {
		if ol.owner == userID {
			out = append(out, ol.link)
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].ID < *out[j].ID })
	return out
}

func (s *memStore) createLink(userID string, in models.SocialLinkInput) models.SocialLink {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextLink++
	id := s.nextLink
	l := models.SocialLink{ID: &id, PlatformName: in.PlatformName, URL: in.URL}
	s.links[id] = ownedLink{owner: userID, link: l}
	return l
}

func (s *memStore) updateLink(userID string, id int64, in models.SocialLinkInput) (models.SocialLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ol, ok := s.links[id]
	if !ok || ol.owner != userID {
		return models.SocialLink{}, ErrLinkNotFound
	}
	ol.link.PlatformName, ol.link.URL = in.PlatformName, in.URL
	s.links[id] = ol
	return ol.link, nil
}

func (s *memStore) deleteLink(userID string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ol, ok := s.links[id]
	if !ok || ol.owner != userID {
		return ErrLinkNotFound
	}
	delete(s.links, id)
	return nil
}
