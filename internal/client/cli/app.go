package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/tapcard/internal/client/api"
	"github.com/dmitrijs2005/tapcard/internal/client/models"
	"github.com/dmitrijs2005/tapcard/internal/client/services"
	"github.com/dmitrijs2005/tapcard/internal/client/session"
	"github.com/dmitrijs2005/tapcard/internal/logging"
)

type Screen string

const (
	ScreenEntry Screen = "entry"
	ScreenHome  Screen = "home"
)

// Session is what the App needs from *session.Session.
type Session interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, creds models.Credentials) error
	Logout(ctx context.Context)
	Snapshot() session.Snapshot
}

// draft is the local copy of the card being edited.
type draft struct {
	profile models.ProfileUpdate
	links   []models.SocialLink
}

type App struct {
	session  Session
	profiles services.ProfileService
	share    services.ShareService
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer

	mu     sync.Mutex
	screen Screen
	draft  *draft
}

func NewApp(s Session, profiles services.ProfileService, share services.ShareService, log logging.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		session:  s,
		profiles: profiles,
		share:    share,
		log:      log.With("component", "cli"),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		screen:   ScreenEntry,
	}
}

// WithIO swaps the terminal for the given reader and writer.
func (a *App) WithIO(r io.Reader, w io.Writer) *App {
	a.reader = bufio.NewReader(r)
	a.out = w
	return a
}

// ToLogin implements session.Navigator.
func (a *App) ToLogin(ctx context.Context) {
	a.mu.Lock()
	was := a.screen
	a.screen = ScreenEntry
	a.draft = nil
	a.mu.Unlock()

	if was == ScreenHome {
		a.println("You are logged out. Type 'login' or 'register' to continue.")
	}
}

// ToHome switches to the signed-in prompt and greets the user. If loading the
// profile ended the session, nothing is printed.
func (a *App) ToHome(ctx context.Context) {
	a.mu.Lock()
	a.screen = ScreenHome
	a.mu.Unlock()

	name := "User"
	if p, err := a.profiles.Get(ctx); err == nil {
		name = p.DisplayName()
		if !p.IsComplete() {
			defer a.println("Your card is incomplete; use 'edit' and 'save' to finish it, then 'qr' to share it.")
		}
	} else {
		a.log.Debug(ctx, "greeting without profile", "error", err)
		if !a.isLoggedIn() {
			return
		}
	}
	a.printf("Welcome, %s!\n", name)
}

func (a *App) Screen() Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.screen
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().State == session.Authenticated
}

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if snap.State != session.Authenticated {
		return ""
	}
	if snap.Email == "" {
		return "(signed in)"
	}
	return fmt.Sprintf("(%s)", snap.Email)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// describe turns a command error into the line shown to the user.
func describe(err error) string {
	var authErr *session.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return api.Message(err, err.Error())
}
