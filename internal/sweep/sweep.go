// Package sweep periodically refreshes the notifications the bot has posted.
// The channel history is the work queue; no state is kept between runs.
package sweep

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/ptalbot/ptal/internal/chat"
	"github.com/ptalbot/ptal/internal/config"
	"github.com/ptalbot/ptal/internal/notice"
	"github.com/ptalbot/ptal/internal/ptal"
)

// Sweeper walks recent channel messages and refreshes each notification the
// bot authored that still carries a refresh action.
type Sweeper struct {
	chat     chat.Messenger
	svc      *ptal.Service
	schedule string
	limit    int
}

// New creates a Sweeper from cfg.
func New(m chat.Messenger, svc *ptal.Service, cfg config.SweepConfig) *Sweeper {
	return &Sweeper{chat: m, svc: svc, schedule: cfg.Schedule, limit: cfg.HistoryLimit}
}

// Run performs one immediate sweep, then follows the cron schedule until ctx
// is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() {
		if _, err := s.Sweep(context.Background()); err != nil {
			slog.Warn("sweep failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("parsing sweep schedule %q: %w", s.schedule, err)
	}

	if n, err := s.Sweep(ctx); err != nil {
		slog.Warn("initial sweep failed", "error", err)
	} else {
		slog.Info("initial sweep complete", "refreshed", n)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}

// Sweep refreshes eligible notifications once and returns how many it
// updated. Per-message failures are logged and skipped; only an identity or
// history failure aborts the sweep.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	me, err := s.chat.BotIdentity(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolving bot identity: %w", err)
	}
	msgs, err := s.chat.History(ctx, s.limit)
	if err != nil {
		return 0, fmt.Errorf("reading channel history: %w", err)
	}

	refreshed := 0
	for _, m := range msgs {
		if m.AuthorID != me.ID || m.Notification == nil {
			continue
		}
		// Merged notifications have no refresh action and are final.
		if m.Notification.ButtonByLabel(notice.LabelRefresh) == nil {
			continue
		}
		updated, err := s.svc.Refresh(ctx, m.Notification, me)
		if err != nil {
			slog.Warn("skipping message", "message", m.ID, "error", err)
			continue
		}
		if err := s.chat.Update(ctx, m.ID, updated); err != nil {
			slog.Warn("updating message failed", "message", m.ID, "error", err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}
