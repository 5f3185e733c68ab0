// Package ptal runs the notification pipeline: parse or decode, fetch,
// reconcile, aggregate, render. Each invocation is one linear pass to
// completion or to its first failure; nothing is persisted between
// invocations except the rendered notification itself.
package ptal

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/ptalbot/ptal/internal/forge"
	"github.com/ptalbot/ptal/internal/notice"
	"github.com/ptalbot/ptal/internal/refparse"
	"github.com/ptalbot/ptal/internal/review"
	"github.com/ptalbot/ptal/models"
)

// Service wires the pipeline to one code-host collaborator.
type Service struct {
	forge forge.Forge
	isBot func(models.ReviewEvent) bool
}

// New creates a Service backed by f.
func New(f forge.Forge) *Service {
	return &Service{forge: f, isBot: review.IsBotReviewer}
}

// Request is the initial-request input.
type Request struct {
	ReferenceText string
	Description   string
	DeploymentURL string
	Requester     models.Identity
}

// Create handles an initial PTAL request: validate, parse, fetch, reconcile,
// aggregate, render.
func (s *Service) Create(ctx context.Context, req Request) (*models.RenderedNotification, error) {
	if err := validateDeploymentURL(req.DeploymentURL); err != nil {
		return nil, err
	}

	ref, err := refparse.Parse(req.ReferenceText)
	if err != nil {
		return nil, &ParseError{Input: req.ReferenceText, Err: err}
	}

	nctx := models.NotificationContext{
		Reference:          ref,
		RequesterName:      req.Requester.DisplayName,
		RequesterAvatarURL: req.Requester.AvatarURL,
		Description:        req.Description,
		DeploymentURL:      req.DeploymentURL,
	}
	return s.run(ctx, nctx, false)
}

// Refresh regenerates a previously rendered notification in place. The
// notification itself is the only state: its context is decoded afresh, the
// item re-fetched, and the result rendered with the original requester intact.
func (s *Service) Refresh(ctx context.Context, existing *models.RenderedNotification, by models.Identity) (*models.RenderedNotification, error) {
	nctx, err := notice.Decode(existing)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	slog.Debug("refreshing notification", "ref", nctx.Reference.String(), "by", by.DisplayName)
	return s.run(ctx, nctx, true)
}

func (s *Service) run(ctx context.Context, nctx models.NotificationContext, refreshed bool) (*models.RenderedNotification, error) {
	snap, err := s.forge.GetPull(ctx, nctx.Reference)
	if err != nil {
		return nil, &FetchError{Kind: ItemNotFound, Ref: nctx.Reference, Err: err}
	}

	events, err := s.forge.ListReviewEvents(ctx, nctx.Reference)
	if err != nil {
		return nil, &FetchError{Kind: ReviewsUnavailable, Ref: nctx.Reference, Err: err}
	}

	verdicts := review.Reconcile(events, snap.AuthorID, s.isBot)
	status := review.Aggregate(verdicts, *snap)

	slog.Debug("pipeline complete",
		"ref", nctx.Reference.String(), "status", status.String(),
		"events", len(events), "verdicts", len(verdicts))

	return notice.Render(nctx, *snap, status, verdicts, refreshed)
}

// validateDeploymentURL rejects deployment links without an http(s) scheme
// before any fetch happens.
func validateDeploymentURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: "deployment link", Reason: "must be an http(s) URL"}
	}
	return nil
}
