package forge

import (
	"context"
	"fmt"
	"strings"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/ptalbot/ptal/internal/config"
	"github.com/ptalbot/ptal/models"
)

// GitLabForge implements Forge for GitLab (cloud and self-hosted).
//
// GitLab exposes no GitHub-style review verdict stream, so review events are
// synthesized from the merge request's system notes: approvals map to
// Approved, revoked approvals to Dismissed, change requests to
// ChangesRequested, and ordinary discussion notes to Commented.
type GitLabForge struct {
	client *gitlab.Client
	host   string
}

// NewGitLab creates a GitLabForge from the given configuration.
func NewGitLab(cfg config.GitLabConfig) (*GitLabForge, error) {
	opts := []gitlab.ClientOptionFunc{}
	if cfg.Host != "" && cfg.Host != "gitlab.com" {
		base := fmt.Sprintf("https://%s/api/v4/", cfg.Host)
		opts = append(opts, gitlab.WithBaseURL(base))
	}

	client, err := gitlab.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating GitLab client: %w", err)
	}

	return &GitLabForge{client: client, host: cfg.Host}, nil
}

func (g *GitLabForge) Name() string { return "gitlab" }

func (g *GitLabForge) GetPull(ctx context.Context, ref models.Reference) (*models.ItemSnapshot, error) {
	pid := ref.Namespace + "/" + ref.Collection
	mr, _, err := g.client.MergeRequests.GetMergeRequest(pid, int64(ref.Number), nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("getting merge request %s: %w", ref, err)
	}
	return &models.ItemSnapshot{
		Title:    mr.Title,
		HTMLURL:  mr.WebURL,
		Open:     mr.State == "opened",
		Merged:   mr.State == "merged",
		Draft:    mr.Draft,
		AuthorID: fmt.Sprintf("%d", mr.Author.ID),
	}, nil
}

func (g *GitLabForge) ListReviewEvents(ctx context.Context, ref models.Reference) ([]models.ReviewEvent, error) {
	pid := ref.Namespace + "/" + ref.Collection
	notes, _, err := g.client.Notes.ListMergeRequestNotes(pid, int64(ref.Number),
		&gitlab.ListMergeRequestNotesOptions{
			OrderBy:     gitlab.Ptr("created_at"),
			Sort:        gitlab.Ptr("asc"),
			ListOptions: gitlab.ListOptions{PerPage: 100},
		}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("listing merge request notes for %s: %w", ref, err)
	}

	events := make([]models.ReviewEvent, 0, len(notes))
	for _, n := range notes {
		if n == nil {
			continue
		}
		kind, ok := mapNote(n.System, n.Body)
		if !ok {
			continue
		}
		var submitted time.Time
		if n.CreatedAt != nil {
			submitted = *n.CreatedAt
		}
		events = append(events, models.ReviewEvent{
			ReviewerID:   fmt.Sprintf("%d", n.Author.ID),
			ReviewerName: n.Author.Username,
			ReviewerURL:  n.Author.WebURL,
			Kind:         kind,
			SubmittedAt:  submitted,
			Bot:          strings.HasSuffix(n.Author.Username, "-bot") || strings.HasSuffix(n.Author.Username, "[bot]"),
		})
	}
	return events, nil
}

// mapNote classifies a merge request note as a review event. System notes that
// are not review actions (pipeline, assignment, ...) are skipped.
func mapNote(system bool, body string) (models.VerdictKind, bool) {
	if !system {
		return models.VerdictCommented, true
	}
	switch {
	case strings.HasPrefix(body, "approved this merge request"):
		return models.VerdictApproved, true
	case strings.HasPrefix(body, "unapproved this merge request"):
		return models.VerdictDismissed, true
	case strings.HasPrefix(body, "requested changes"):
		return models.VerdictChangesRequested, true
	default:
		return "", false
	}
}
