package forge

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gogithub "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/ptalbot/ptal/internal/config"
	"github.com/ptalbot/ptal/models"
)

// GitHubForge implements Forge for GitHub and GitHub Enterprise.
type GitHubForge struct {
	client *gogithub.Client
	host   string
}

// NewGitHub creates a GitHubForge from the given configuration.
func NewGitHub(cfg config.GitHubConfig) (*GitHubForge, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(context.Background(), ts)
	client := gogithub.NewClient(tc)

	// Support GitHub Enterprise by overriding the base URL.
	if cfg.Host != "" && cfg.Host != "github.com" {
		base := fmt.Sprintf("https://%s/api/v3/", cfg.Host)
		upload := fmt.Sprintf("https://%s/api/uploads/", cfg.Host)
		var err error
		client, err = client.WithEnterpriseURLs(base, upload)
		if err != nil {
			return nil, fmt.Errorf("configuring GitHub enterprise URLs: %w", err)
		}
	}

	return &GitHubForge{client: client, host: cfg.Host}, nil
}

func (g *GitHubForge) Name() string { return "github" }

func (g *GitHubForge) GetPull(ctx context.Context, ref models.Reference) (*models.ItemSnapshot, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, ref.Namespace, ref.Collection, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("getting pull request %s: %w", ref, err)
	}
	return &models.ItemSnapshot{
		Title:    pr.GetTitle(),
		HTMLURL:  pr.GetHTMLURL(),
		Open:     pr.GetState() == "open",
		Merged:   pr.GetMerged(),
		Draft:    pr.GetDraft(),
		AuthorID: strconv.FormatInt(pr.GetUser().GetID(), 10),
	}, nil
}

func (g *GitHubForge) ListReviewEvents(ctx context.Context, ref models.Reference) ([]models.ReviewEvent, error) {
	reviews, _, err := g.client.PullRequests.ListReviews(ctx, ref.Namespace, ref.Collection, ref.Number,
		&gogithub.ListOptions{PerPage: 100})
	if err != nil {
		return nil, fmt.Errorf("listing reviews for %s: %w", ref, err)
	}

	events := make([]models.ReviewEvent, 0, len(reviews))
	for _, rv := range reviews {
		if rv == nil {
			continue
		}
		user := rv.GetUser()
		events = append(events, models.ReviewEvent{
			ReviewerID:   strconv.FormatInt(user.GetID(), 10),
			ReviewerName: user.GetLogin(),
			ReviewerURL:  user.GetHTMLURL(),
			Kind:         mapReviewState(rv.GetState()),
			SubmittedAt:  rv.GetSubmittedAt().Time,
			Bot:          user.GetType() == "Bot" || strings.HasSuffix(user.GetLogin(), "[bot]"),
		})
	}
	return events, nil
}

// mapReviewState normalises GitHub review states to VerdictKind. Unknown
// states are treated as comments so they can never out-rank a real verdict.
func mapReviewState(state string) models.VerdictKind {
	switch state {
	case "APPROVED":
		return models.VerdictApproved
	case "CHANGES_REQUESTED":
		return models.VerdictChangesRequested
	case "DISMISSED":
		return models.VerdictDismissed
	case "PENDING":
		return models.VerdictPending
	default:
		return models.VerdictCommented
	}
}
