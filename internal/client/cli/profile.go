package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tapcard/internal/client/models"
)

var errNoIndex = errors.New("usage: <command> <n>, where n is the number shown by 'links'")

// loadDraft fetches the profile and links the first time they are needed.
func (a *App) loadDraft(ctx context.Context) (*draft, error) {
	a.mu.Lock()
	d := a.draft
	a.mu.Unlock()
	if d != nil {
		return d, nil
	}

	p, err := a.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	links, err := a.profiles.ListLinks(ctx)
	if err != nil {
		return nil, err
	}

	d = &draft{profile: p.Update(), links: links}
	a.mu.Lock()
	a.draft = d
	a.mu.Unlock()
	return d, nil
}

// Profile prints the card as stored on the backend.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.profiles.Get(ctx)
	if err != nil {
		return err
	}
	links, err := a.profiles.ListLinks(ctx)
	if err != nil {
		return err
	}
	p.SocialLinks = links
	printProfile(a, p)
	return nil
}

func printProfile(a *App, p *models.Profile) {
	a.printf("%s (@%s)\n", p.DisplayName(), p.Username)
	for _, f := range []struct{ label, value string }{
		{"Job title", p.JobTitle},
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Bio", p.Bio},
	} {
		if f.value != "" {
			a.printf("  %-10s %s\n", f.label+":", f.value)
		}
	}
	if p.CreatedAt != nil {
		a.printf("  %-10s %s\n", "Joined:", p.CreatedAt.Format("2006-01-02"))
	}
	if len(p.SocialLinks) == 0 {
		a.println("  No social links.")
		return
	}
	a.println("  Links:")
	for _, l := range p.SocialLinks {
		a.printf("    %s: %s\n", l.PlatformName, l.URL)
	}
}

// Edit prompts for every editable field of the draft. Enter keeps a value.
func (a *App) Edit(ctx context.Context) error {
	d, err := a.loadDraft(ctx)
	if err != nil {
		return err
	}

	upd := d.profile
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Username", &upd.Username},
		{"Email", &upd.Email},
		{"Full name", &upd.FullName},
		{"Job title", &upd.JobTitle},
	}
	for _, f := range fields {
		v, err := GetTextWithDefault(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if upd.Bio != "" {
		a.printf("Current bio:\n%s\n", upd.Bio)
	}
	bio, err := GetMultiline(a.reader, "Bio (empty line keeps the current one)", a.out)
	if err != nil {
		return err
	}
	if bio != "" {
		upd.Bio = bio
	}

	a.mu.Lock()
	d.profile = upd
	a.mu.Unlock()
	a.println("Draft updated. Type 'save' to send it.")
	return nil
}

// Links lists the draft's links with the numbers the other link commands take.
func (a *App) Links(ctx context.Context) error {
	d, err := a.loadDraft(ctx)
	if err != nil {
		return err
	}
	if len(d.links) == 0 {
		a.println("No links. Use 'addlink' to add one.")
		return nil
	}
	for i, l := range d.links {
		a.printf("%d. %s %s\n", i+1, l.Label(), l.URL)
	}
	return nil
}

func (a *App) AddLink(ctx context.Context) error {
	d, err := a.loadDraft(ctx)
	if err != nil {
		return err
	}
	platform, err := getSimpleText(a.reader, "Platform (e.g. GitHub)", a.out)
	if err != nil {
		return err
	}
	url, err := getSimpleText(a.reader, "URL (https://example.com)", a.out)
	if err != nil {
		return err
	}

	a.mu.Lock()
	d.links = append(d.links, models.SocialLink{PlatformName: platform, URL: url})
	n := len(d.links)
	a.mu.Unlock()
	a.printf("Added link %d to the draft.\n", n)
	return nil
}

func (a *App) SetLink(ctx context.Context, args []string) error {
	d, err := a.loadDraft(ctx)
	if err != nil {
		return err
	}
	i, err := linkIndex(args, len(d.links))
	if err != nil {
		return err
	}

	l := d.links[i]
	if l.PlatformName, err = GetTextWithDefault(a.reader, "Platform", l.PlatformName, a.out); err != nil {
		return err
	}
	if l.URL, err = GetTextWithDefault(a.reader, "URL", l.URL, a.out); err != nil {
		return err
	}

	a.mu.Lock()
	d.links[i] = l
	a.mu.Unlock()
	a.printf("Link %d updated in the draft.\n", i+1)
	return nil
}

// RmLink drops a link from the draft only; a saved link stays on the backend.
func (a *App) RmLink(ctx context.Context, args []string) error {
	d, err := a.loadDraft(ctx)
	if err != nil {
		return err
	}
	i, err := linkIndex(args, len(d.links))
	if err != nil {
		return err
	}

	a.mu.Lock()
	d.links = append(d.links[:i], d.links[i+1:]...)
	a.mu.Unlock()
	a.printf("Link %d removed from the draft.\n", i+1)
	return nil
}

// DelLink deletes a saved link on the backend right away.
func (a *App) DelLink(ctx context.Context, args []string) error {
	d, err := a.loadDraft(ctx)
	if err != nil {
		return err
	}
	i, err := linkIndex(args, len(d.links))
	if err != nil {
		return err
	}

	l := d.links[i]
	if l.IsSaved() {
		if err := a.profiles.DeleteLink(ctx, *l.ID); err != nil {
			return err
		}
	}

	a.mu.Lock()
	d.links = append(d.links[:i], d.links[i+1:]...)
	a.mu.Unlock()
	a.printf("Deleted %s.\n", l.Label())
	return nil
}

// Save sends the draft profile and links. Links that failed stay in the
// draft as submitted so they can be fixed and saved again.
func (a *App) Save(ctx context.Context) error {
	d, err := a.loadDraft(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	upd := d.profile
	links := append([]models.SocialLink(nil), d.links...)
	a.mu.Unlock()

	res, err := a.profiles.SaveAll(ctx, upd, links)
	if err != nil {
		return err
	}

	next := make([]models.SocialLink, 0, len(res.Results))
	for _, r := range res.Results {
		next = append(next, r.Link)
	}
	a.mu.Lock()
	d.links = next
	a.mu.Unlock()

	a.println("Profile saved.")
	a.println(res.Summary())
	return nil
}

func linkIndex(args []string, n int) (int, error) {
	if len(args) == 0 {
		return 0, errNoIndex
	}
	i, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, errNoIndex
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("no link %d (have %d)", i, n)
	}
	return i - 1, nil
}
