package services

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tapcard/internal/client/api"
	"github.com/dmitrijs2005/tapcard/internal/client/models"
)

// Outcome summarises a batch save.
type Outcome int

const (
	AllSucceeded Outcome = iota
	PartialSuccess
	TotalFailure
)

func (o Outcome) String() string {
	switch o {
	case AllSucceeded:
		return "all succeeded"
	case PartialSuccess:
		return "partial success"
	case TotalFailure:
		return "total failure"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// LinkResult is the outcome for one link. On success Link is the saved
// version returned by the backend; on failure it is the link as submitted.
type LinkResult struct {
	Index int
	Link  models.SocialLink
	Err   error
}

func (r LinkResult) OK() bool { return r.Err == nil }

// BatchResult holds one LinkResult per submitted link, in submission order.
type BatchResult struct {
	Results []LinkResult
}

func (b *BatchResult) Outcome() Outcome {
	failed := len(b.Failed())
	switch {
	case failed == 0:
		return AllSucceeded
	case failed == len(b.Results):
		return TotalFailure
	default:
		return PartialSuccess
	}
}

func (b *BatchResult) Failed() []LinkResult {
	var out []LinkResult
	for _, r := range b.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// Saved returns the links as they are now stored on the backend.
func (b *BatchResult) Saved() []models.SocialLink {
	var out []models.SocialLink
	for _, r := range b.Results {
		if r.OK() {
			out = append(out, r.Link)
		}
	}
	return out
}

// Summary is a short user-facing description, listing every failed link.
func (b *BatchResult) Summary() string {
	switch b.Outcome() {
	case AllSucceeded:
		return fmt.Sprintf("saved %d link(s)", len(b.Results))
	case TotalFailure:
		if len(b.Results) == 1 {
			r := b.Results[0]
			return fmt.Sprintf("failed to save %s: %s", r.Link.Label(), api.Message(r.Err, r.Err.Error()))
		}
	}

	failed := b.Failed()
	var sb strings.Builder
	fmt.Fprintf(&sb, "saved %d of %d link(s); failed:", len(b.Results)-len(failed), len(b.Results))
	for _, r := range failed {
		fmt.Fprintf(&sb, "\n  - %s: %s", r.Link.Label(), api.Message(r.Err, r.Err.Error()))
	}
	return sb.String()
}
