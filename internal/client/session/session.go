package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/tapcard/internal/client/models"
	"github.com/dmitrijs2005/tapcard/internal/client/store"
	"github.com/dmitrijs2005/tapcard/internal/logging"
)

type State int

const (
	Unknown State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the session state at one point in time.
type Snapshot struct {
	State   State
	Token   string
	Email   string
	Loading bool
}

// Authenticator is the part of the backend API the session drives.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, creds models.Credentials) error
}

// Navigator is told when the user has to be sent back to the login entry.
type Navigator interface {
	ToLogin(ctx context.Context)
}

type Session struct {
	store store.Store
	auth  Authenticator
	log   logging.Logger
	now   func() time.Time

	mu          sync.Mutex
	nav         Navigator
	state       State
	token       string
	email       string
	initialized bool
	ready       chan struct{}

	subMu     sync.Mutex
	nextSubID int
	subs      map[int]func(Snapshot)
}

type Option func(*Session)

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = l.With("component", "session") }
}

func WithNavigator(n Navigator) Option {
	return func(s *Session) { s.nav = n }
}

// WithClock overrides the time source used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New returns a session in the Unknown state. Call Initialize before use.
func New(st store.Store, auth Authenticator, opts ...Option) *Session {
	s := &Session{
		store: st,
		auth:  auth,
		log:   logging.Discard(),
		now:   time.Now,
		state: Unknown,
		ready: make(chan struct{}),
		subs:  make(map[int]func(Snapshot)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetNavigator replaces the navigator. The front end is usually built after
// the session, so it registers itself here.
func (s *Session) SetNavigator(n Navigator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = n
}

// Initialize restores the session from the store. A stored JWT whose exp
// claim has passed counts as absent and is removed. Initialize runs once;
// later calls return ErrAlreadyInitialized.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	s.initialized = true

	token, _ := s.store.Get(ctx, store.KeyToken)
	email, _ := s.store.Get(ctx, store.KeyEmail)

	if token != "" && s.expired(token) {
		s.log.Info(ctx, "stored token expired, discarding")
		s.forget(ctx)
		token, email = "", ""
	}

	if token != "" {
		s.state, s.token, s.email = Authenticated, token, email
	} else {
		s.state, s.token, s.email = Unauthenticated, "", ""
	}
	close(s.ready)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Debug(ctx, "session initialized", "state", snap.State.String())
	s.publish(snap)
	return nil
}

// Login authenticates with the backend and persists the token and email.
// On failure the state is left unchanged and an *AuthError is returned.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	err := s.loginLocked(ctx, email, password)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish(snap)
	return nil
}

func (s *Session) loginLocked(ctx context.Context, email, password string) error {
	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.log.Warn(ctx, "login failed", "email", email, "error", err)
		return newAuthError(ErrLoginFailed, err, LoginFailedMessage)
	}

	err = s.store.SetMany(ctx, map[string]string{
		store.KeyToken: token,
		store.KeyEmail: email,
	})
	if err != nil {
		s.log.Error(ctx, "failed to persist session", "error", err)
		return newAuthError(ErrLoginFailed, fmt.Errorf("persist session: %w", err), LoginFailedMessage)
	}

	s.state, s.token, s.email = Authenticated, token, email
	s.log.Info(ctx, "login succeeded", "email", email)
	return nil
}

// Register creates the account and then logs in with the same credentials,
// so a successful Register leaves the session Authenticated.
func (s *Session) Register(ctx context.Context, creds models.Credentials) error {
	s.mu.Lock()
	err := s.registerLocked(ctx, creds)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish(snap)
	return nil
}

func (s *Session) registerLocked(ctx context.Context, creds models.Credentials) error {
	if err := s.auth.Register(ctx, creds); err != nil {
		s.log.Warn(ctx, "registration failed", "email", creds.Email, "error", err)
		return newAuthError(ErrRegisterFailed, err, RegisterFailedMessage)
	}
	s.log.Info(ctx, "registered", "email", creds.Email)
	return s.loginLocked(ctx, creds.Email, creds.Password)
}

// Logout clears the persisted credentials and the in-memory state, then sends
// the user to the login entry. Storage failures are logged and never stop
// the logout.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.endLocked(ctx)
}

// HandleUnauthorized is the API client's hook for a rejected authenticated
// call. It ends the session only if rejected is still the current token, so
// a late 401 for a token that has since been replaced is ignored.
func (s *Session) HandleUnauthorized(ctx context.Context, rejected string) {
	s.mu.Lock()
	if s.state != Authenticated || rejected == "" || rejected != s.token {
		s.mu.Unlock()
		return
	}
	s.log.Warn(ctx, "backend rejected the session token")
	s.endLocked(ctx)
}

// endLocked must be called with s.mu held; it releases it before notifying
// subscribers and the navigator.
func (s *Session) endLocked(ctx context.Context) {
	s.forget(ctx)
	s.state, s.token, s.email = Unauthenticated, "", ""
	nav := s.nav
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.log.Info(ctx, "logged out")
	s.publish(snap)
	if nav != nil {
		nav.ToLogin(ctx)
	}
}

// forget removes both keys. A key that cannot be deleted is overwritten with
// an empty value, which every Store reports as absent.
func (s *Session) forget(ctx context.Context) {
	for _, key := range []string{store.KeyToken, store.KeyEmail} {
		err := s.store.Delete(ctx, key)
		if err == nil {
			continue
		}
		s.log.Warn(ctx, "failed to delete credential", "key", key, "error", err)
		if err := s.store.Set(ctx, key, ""); err != nil {
			s.log.Error(ctx, "failed to blank credential", "key", key, "error", err)
		}
	}
}

func (s *Session) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Not a JWT; the backend decides.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(s.now())
}

// Ready is closed once Initialize has completed.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// Token waits for Ready and returns the current bearer token, or "" when
// there is none.
func (s *Session) Token(ctx context.Context) (string, error) {
	select {
	case <-s.ready:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:   s.state,
		Token:   s.token,
		Email:   s.email,
		Loading: s.state == Unknown,
	}
}

// Subscribe registers fn to be called after every state change. The returned
// function removes it.
func (s *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) publish(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
