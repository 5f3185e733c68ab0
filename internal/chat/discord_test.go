package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ptalbot/ptal/internal/config"
	"github.com/ptalbot/ptal/models"
)

func testNotification() *models.RenderedNotification {
	return &models.RenderedNotification{
		Title:    "Add frobnicator",
		TitleURL: "https://github.com/acme/widgets/pull/42",
		Color:    0x3498db,
		Body:     "**PTAL** please check",
		Author:   models.EmbedAuthor{Name: "mel", IconURL: "https://cdn.example/mel.png"},
		Fields: []models.EmbedField{
			{Name: "Repository", Value: "[acme/widgets#42](https://github.com/acme/widgets/pull/42)"},
			{Name: "Status", Value: "⏳ Awaiting Review"},
		},
		Buttons: []models.Button{
			{Label: "View source", Emoji: "🔗", URL: "https://github.com/acme/widgets/pull/42"},
			{Label: "Refresh", Emoji: "🔁", CustomID: "ptal-refresh"},
		},
	}
}

func newTestDiscord(t *testing.T, handler http.HandlerFunc) *Discord {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	d := NewDiscord(config.DiscordConfig{Token: "token", ChannelID: "123"})
	d.baseURL = srv.URL
	return d
}

func TestDiscordPost(t *testing.T) {
	var got discordMessage
	d := newTestDiscord(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/channels/123/messages" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bot token" {
			t.Fatalf("auth header = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		got.ID = "999"
		json.NewEncoder(w).Encode(got)
	})

	id, err := d.Post(context.Background(), testNotification())
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if id != "999" {
		t.Fatalf("message id = %q", id)
	}
	if got.Content != "**PTAL** please check" {
		t.Fatalf("content = %q", got.Content)
	}
	if len(got.Embeds) != 1 || got.Embeds[0].URL != "https://github.com/acme/widgets/pull/42" {
		t.Fatalf("embeds = %+v", got.Embeds)
	}
	if len(got.Components) != 1 || len(got.Components[0].Components) != 2 {
		t.Fatalf("components = %+v", got.Components)
	}
	link := got.Components[0].Components[0]
	if link.Style != buttonStyleLink || link.URL == "" {
		t.Fatalf("link button = %+v", link)
	}
	refresh := got.Components[0].Components[1]
	if refresh.Style != buttonStylePrimary || refresh.CustomID != "ptal-refresh" {
		t.Fatalf("refresh button = %+v", refresh)
	}
}

func TestDiscordUpdateUsesPatch(t *testing.T) {
	var method, path string
	d := newTestDiscord(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	})
	if err := d.Update(context.Background(), "999", testNotification()); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if method != http.MethodPatch || path != "/channels/123/messages/999" {
		t.Fatalf("got %s %s", method, path)
	}
}

func TestDiscordHistoryRoundTripsNotification(t *testing.T) {
	posted := toMessage(testNotification())
	posted.ID = "42"
	posted.Author = &discordUser{ID: "bot-1", Username: "ptal"}
	d := newTestDiscord(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "10" {
			t.Fatalf("limit = %q", r.URL.Query().Get("limit"))
		}
		json.NewEncoder(w).Encode([]discordMessage{
			*posted,
			{ID: "43", Content: "just chatting", Author: &discordUser{ID: "user-2"}},
		})
	})

	msgs, err := d.History(context.Background(), 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages", len(msgs))
	}
	n := msgs[0].Notification
	if n == nil {
		t.Fatal("embed message lost its notification")
	}
	want := testNotification()
	if n.Title != want.Title || n.TitleURL != want.TitleURL || n.Body != want.Body {
		t.Fatalf("round trip mismatch: %+v", n)
	}
	if n.Field("Status") != "⏳ Awaiting Review" {
		t.Fatalf("status field = %q", n.Field("Status"))
	}
	if b := n.ButtonByLabel("Refresh"); b == nil || b.CustomID != "ptal-refresh" {
		t.Fatalf("refresh button = %+v", b)
	}
	if msgs[1].Notification != nil {
		t.Fatal("plain chat message decoded as a notification")
	}
}

func TestDiscordErrorStatus(t *testing.T) {
	d := newTestDiscord(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Missing Access"}`, http.StatusForbidden)
	})
	if _, err := d.Post(context.Background(), testNotification()); err == nil {
		t.Fatal("expected error on 403")
	}
}

func TestDiscordBotIdentity(t *testing.T) {
	d := newTestDiscord(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/@me" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(discordUser{ID: "7", Username: "ptal", Avatar: "abc"})
	})
	id, err := d.BotIdentity(context.Background())
	if err != nil {
		t.Fatalf("BotIdentity: %v", err)
	}
	if id.ID != "7" || id.DisplayName != "ptal" {
		t.Fatalf("identity = %+v", id)
	}
	if id.AvatarURL != "https://cdn.discordapp.com/avatars/7/abc.png" {
		t.Fatalf("avatar = %q", id.AvatarURL)
	}
}
