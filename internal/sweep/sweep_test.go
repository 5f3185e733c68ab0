package sweep

import (
	"context"
	"testing"

	"github.com/ptalbot/ptal/internal/chat"
	"github.com/ptalbot/ptal/internal/config"
	"github.com/ptalbot/ptal/internal/notice"
	"github.com/ptalbot/ptal/internal/ptal"
	"github.com/ptalbot/ptal/models"
)

type fakeMessenger struct {
	me       models.Identity
	history  []chat.PostedMessage
	updates  map[string]*models.RenderedNotification
	histReqs int
}

func (f *fakeMessenger) Name() string       { return "fake" }
func (f *fakeMessenger) IsConfigured() bool { return true }

func (f *fakeMessenger) Post(ctx context.Context, n *models.RenderedNotification) (string, error) {
	return "new", nil
}

func (f *fakeMessenger) Update(ctx context.Context, id string, n *models.RenderedNotification) error {
	if f.updates == nil {
		f.updates = make(map[string]*models.RenderedNotification)
	}
	f.updates[id] = n
	return nil
}

func (f *fakeMessenger) History(ctx context.Context, limit int) ([]chat.PostedMessage, error) {
	f.histReqs++
	return f.history, nil
}

func (f *fakeMessenger) Message(ctx context.Context, id string) (*chat.PostedMessage, error) {
	for i := range f.history {
		if f.history[i].ID == id {
			return &f.history[i], nil
		}
	}
	return nil, context.Canceled
}

func (f *fakeMessenger) BotIdentity(ctx context.Context) (models.Identity, error) {
	return f.me, nil
}

type staticForge struct {
	snap models.ItemSnapshot
}

func (s *staticForge) Name() string { return "static" }

func (s *staticForge) GetPull(ctx context.Context, ref models.Reference) (*models.ItemSnapshot, error) {
	snap := s.snap
	snap.HTMLURL = "https://github.com/acme/widgets/pull/42"
	return &snap, nil
}

func (s *staticForge) ListReviewEvents(ctx context.Context, ref models.Reference) ([]models.ReviewEvent, error) {
	return nil, nil
}

func renderFor(t *testing.T, snap models.ItemSnapshot, status models.Status) *models.RenderedNotification {
	t.Helper()
	snap.HTMLURL = "https://github.com/acme/widgets/pull/42"
	nctx := models.NotificationContext{
		Reference:     models.Reference{Namespace: "acme", Collection: "widgets", Number: 42},
		RequesterName: "mel",
		Description:   "please check",
	}
	n, err := notice.Render(nctx, snap, status, nil, false)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return n
}

func TestSweepRefreshesOwnRefreshableMessages(t *testing.T) {
	open := models.ItemSnapshot{Title: "Add frobnicator", Open: true}
	merged := models.ItemSnapshot{Title: "Old one", Merged: true}

	msgs := []chat.PostedMessage{
		{ID: "1", AuthorID: "bot", Notification: renderFor(t, open, models.StatusPending)},
		{ID: "2", AuthorID: "bot", Notification: renderFor(t, merged, models.StatusMerged)},
		{ID: "3", AuthorID: "someone", Notification: renderFor(t, open, models.StatusPending)},
		{ID: "4", AuthorID: "bot"}, // plain chat message
	}
	m := &fakeMessenger{me: models.Identity{ID: "bot", DisplayName: "ptal"}, history: msgs}
	svc := ptal.New(&staticForge{snap: open})

	s := New(m, svc, config.SweepConfig{Schedule: "@every 10m", HistoryLimit: 50})
	n, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("refreshed %d messages, want 1", n)
	}
	if _, ok := m.updates["1"]; !ok {
		t.Fatal("message 1 was not updated")
	}
	if _, ok := m.updates["2"]; ok {
		t.Fatal("merged message 2 was refreshed")
	}
	if _, ok := m.updates["3"]; ok {
		t.Fatal("foreign message 3 was refreshed")
	}
}

func TestSweepSkipsUndecodableMessages(t *testing.T) {
	m := &fakeMessenger{
		me: models.Identity{ID: "bot"},
		history: []chat.PostedMessage{
			{ID: "1", AuthorID: "bot", Notification: &models.RenderedNotification{
				Title:    "hand-written embed",
				TitleURL: "https://example.com/not-a-pull",
				Body:     "**PTAL** fake",
				Buttons:  []models.Button{{Label: notice.LabelRefresh, CustomID: notice.RefreshCustomID}},
			}},
		},
	}
	svc := ptal.New(&staticForge{snap: models.ItemSnapshot{Open: true}})
	s := New(m, svc, config.SweepConfig{Schedule: "@every 10m", HistoryLimit: 50})

	n, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if n != 0 || len(m.updates) != 0 {
		t.Fatalf("undecodable message was refreshed: n=%d updates=%v", n, m.updates)
	}
}

func TestRunRejectsBadSchedule(t *testing.T) {
	m := &fakeMessenger{me: models.Identity{ID: "bot"}}
	svc := ptal.New(&staticForge{})
	s := New(m, svc, config.SweepConfig{Schedule: "not a schedule"})
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected schedule parse error")
	}
}
