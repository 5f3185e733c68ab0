// Package forge talks to the code hosting platform a reference points at.
package forge

import (
	"context"
	"fmt"
	"strings"

	"github.com/ptalbot/ptal/internal/config"
	"github.com/ptalbot/ptal/models"
)

// Forge abstracts the two fetches the notification pipeline needs.
// Implementations: GitHub, GitLab.
type Forge interface {
	// Name identifies the provider (e.g. "github", "gitlab").
	Name() string

	// GetPull returns the lifecycle snapshot of the referenced item.
	GetPull(ctx context.Context, ref models.Reference) (*models.ItemSnapshot, error)

	// ListReviewEvents returns the raw review events for the referenced item,
	// in submission order as delivered by the platform.
	ListReviewEvents(ctx context.Context, ref models.Reference) ([]models.ReviewEvent, error)
}

// DetectProvider infers the hosting platform from reference text or a remote
// URL. Returns "" when the text does not imply one.
func DetectProvider(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "gitlab.") || strings.Contains(lower, "/-/merge_requests/"):
		return "gitlab"
	case strings.Contains(lower, "github."):
		return "github"
	default:
		return ""
	}
}

// New returns the appropriate Forge for the given platform.
func New(provider string, cfg *config.Config) (Forge, error) {
	switch provider {
	case "github":
		if len(cfg.Forge.GitHub) == 0 || cfg.Forge.GitHub[0].Token == "" {
			return nil, fmt.Errorf("no GitHub token configured; run 'ptal onboard'")
		}
		return NewGitHub(cfg.Forge.GitHub[0])
	case "gitlab":
		if len(cfg.Forge.GitLab) == 0 || cfg.Forge.GitLab[0].Token == "" {
			return nil, fmt.Errorf("no GitLab token configured; run 'ptal onboard'")
		}
		return NewGitLab(cfg.Forge.GitLab[0])
	default:
		return nil, fmt.Errorf("unsupported provider %q", provider)
	}
}
