package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/tapcard/internal/client/services"
)

// renderQR is a test seam for services.RenderQR.
var renderQR = services.RenderQR

// QR shows the signed-in user's card as a QR code.
func (a *App) QR(ctx context.Context) error {
	_, payload, err := a.share.Card(ctx)
	if errors.Is(err, services.ErrProfileIncomplete) {
		a.println("Complete your profile first: full name, job title, bio and username are needed. Use 'edit' and 'save'.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := renderQR(a.out, payload); err != nil {
		return err
	}
	a.println(payload)
	return nil
}

// Scan looks up the card a QR payload points to. The payload is the rest of
// the command line.
func (a *App) Scan(ctx context.Context, args []string) error {
	payload := strings.TrimSpace(strings.Join(args, " "))
	if payload == "" {
		var err error
		if payload, err = getSimpleText(a.reader, "Paste the scanned payload", a.out); err != nil {
			return err
		}
	}

	p, err := a.share.Lookup(ctx, payload)
	if err != nil {
		return err
	}
	printProfile(a, p)
	return nil
}
