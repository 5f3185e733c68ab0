package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ptalbot/ptal/internal/config"
	"github.com/ptalbot/ptal/models"
)

const discordAPIBase = "https://discord.com/api/v10"

// Button component constants from the Discord component model.
const (
	componentActionRow = 1
	componentButton    = 2
	buttonStylePrimary = 1
	buttonStyleLink    = 5
)

// Discord posts and edits channel messages over the Discord REST API using a
// bot token. No gateway session is held; message create, edit and list are
// the whole delivery surface.
type Discord struct {
	cfg     config.DiscordConfig
	baseURL string
	client  *http.Client
}

// NewDiscord creates a Discord client from cfg.
func NewDiscord(cfg config.DiscordConfig) *Discord {
	return &Discord{
		cfg:     cfg,
		baseURL: discordAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *Discord) Name() string       { return "discord" }
func (d *Discord) IsConfigured() bool { return d.cfg.Token != "" && d.cfg.ChannelID != "" }

func (d *Discord) Post(ctx context.Context, n *models.RenderedNotification) (string, error) {
	var created discordMessage
	path := fmt.Sprintf("/channels/%s/messages", d.cfg.ChannelID)
	if err := d.do(ctx, http.MethodPost, path, toMessage(n), &created); err != nil {
		return "", fmt.Errorf("posting notification: %w", err)
	}
	return created.ID, nil
}

func (d *Discord) Update(ctx context.Context, messageID string, n *models.RenderedNotification) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", d.cfg.ChannelID, messageID)
	if err := d.do(ctx, http.MethodPatch, path, toMessage(n), nil); err != nil {
		return fmt.Errorf("updating message %s: %w", messageID, err)
	}
	return nil
}

func (d *Discord) History(ctx context.Context, limit int) ([]PostedMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var msgs []discordMessage
	path := fmt.Sprintf("/channels/%s/messages?limit=%d", d.cfg.ChannelID, limit)
	if err := d.do(ctx, http.MethodGet, path, nil, &msgs); err != nil {
		return nil, fmt.Errorf("listing channel messages: %w", err)
	}
	out := make([]PostedMessage, 0, len(msgs))
	for i := range msgs {
		out = append(out, fromMessage(&msgs[i]))
	}
	return out, nil
}

func (d *Discord) Message(ctx context.Context, messageID string) (*PostedMessage, error) {
	var msg discordMessage
	path := fmt.Sprintf("/channels/%s/messages/%s", d.cfg.ChannelID, messageID)
	if err := d.do(ctx, http.MethodGet, path, nil, &msg); err != nil {
		return nil, fmt.Errorf("getting message %s: %w", messageID, err)
	}
	pm := fromMessage(&msg)
	return &pm, nil
}

func (d *Discord) BotIdentity(ctx context.Context) (models.Identity, error) {
	var me discordUser
	if err := d.do(ctx, http.MethodGet, "/users/@me", nil, &me); err != nil {
		return models.Identity{}, fmt.Errorf("getting bot identity: %w", err)
	}
	identity := models.Identity{ID: me.ID, DisplayName: me.Username}
	if me.Avatar != "" {
		identity.AvatarURL = fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", me.ID, me.Avatar)
	}
	return identity, nil
}

func (d *Discord) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+d.cfg.Token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord API returned %d: %s", resp.StatusCode, detail)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Discord wire structures, limited to the fields this tool reads and writes.

type discordMessage struct {
	ID         string             `json:"id,omitempty"`
	Content    string             `json:"content,omitempty"`
	Author     *discordUser       `json:"author,omitempty"`
	Embeds     []discordEmbed     `json:"embeds,omitempty"`
	Components []discordActionRow `json:"components,omitempty"`
}

type discordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	Bot      bool   `json:"bot,omitempty"`
}

type discordEmbed struct {
	Title     string              `json:"title,omitempty"`
	URL       string              `json:"url,omitempty"`
	Color     int                 `json:"color,omitempty"`
	Timestamp string              `json:"timestamp,omitempty"`
	Author    *discordEmbedAuthor `json:"author,omitempty"`
	Footer    *discordEmbedFooter `json:"footer,omitempty"`
	Fields    []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedAuthor struct {
	Name    string `json:"name,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type discordEmbedFooter struct {
	Text string `json:"text,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordActionRow struct {
	Type       int             `json:"type"`
	Components []discordButton `json:"components"`
}

type discordButton struct {
	Type     int           `json:"type"`
	Style    int           `json:"style"`
	Label    string        `json:"label,omitempty"`
	URL      string        `json:"url,omitempty"`
	CustomID string        `json:"custom_id,omitempty"`
	Emoji    *discordEmoji `json:"emoji,omitempty"`
}

type discordEmoji struct {
	Name string `json:"name"`
}

// toMessage maps a rendered notification onto the Discord message shape: body
// as message content, everything else as one embed plus one button row.
func toMessage(n *models.RenderedNotification) *discordMessage {
	embed := discordEmbed{
		Title: n.Title,
		URL:   n.TitleURL,
		Color: int(n.Color),
	}
	if !n.Timestamp.IsZero() {
		embed.Timestamp = n.Timestamp.UTC().Format(time.RFC3339)
	}
	if n.Author.Name != "" || n.Author.IconURL != "" {
		embed.Author = &discordEmbedAuthor{Name: n.Author.Name, IconURL: n.Author.IconURL}
	}
	if n.Footer != "" {
		embed.Footer = &discordEmbedFooter{Text: n.Footer}
	}
	for _, f := range n.Fields {
		embed.Fields = append(embed.Fields, discordEmbedField{Name: f.Name, Value: f.Value})
	}

	msg := &discordMessage{
		Content: n.Body,
		Embeds:  []discordEmbed{embed},
	}
	if len(n.Buttons) > 0 {
		row := discordActionRow{Type: componentActionRow}
		for _, b := range n.Buttons {
			btn := discordButton{Type: componentButton, Label: b.Label}
			if b.Emoji != "" {
				btn.Emoji = &discordEmoji{Name: b.Emoji}
			}
			if b.URL != "" {
				btn.Style = buttonStyleLink
				btn.URL = b.URL
			} else {
				btn.Style = buttonStylePrimary
				btn.CustomID = b.CustomID
			}
			row.Components = append(row.Components, btn)
		}
		msg.Components = []discordActionRow{row}
	}
	return msg
}

// fromMessage is the inverse of toMessage, recovering a RenderedNotification
// from a fetched channel message.
func fromMessage(m *discordMessage) PostedMessage {
	pm := PostedMessage{ID: m.ID}
	if m.Author != nil {
		pm.AuthorID = m.Author.ID
	}
	if len(m.Embeds) == 0 {
		return pm
	}
	embed := m.Embeds[0]

	n := &models.RenderedNotification{
		Title:    embed.Title,
		TitleURL: embed.URL,
		Color:    uint32(embed.Color),
		Body:     m.Content,
	}
	if embed.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, embed.Timestamp); err == nil {
			n.Timestamp = ts
		}
	}
	if embed.Author != nil {
		n.Author = models.EmbedAuthor{Name: embed.Author.Name, IconURL: embed.Author.IconURL}
	}
	if embed.Footer != nil {
		n.Footer = embed.Footer.Text
	}
	for _, f := range embed.Fields {
		n.Fields = append(n.Fields, models.EmbedField{Name: f.Name, Value: f.Value})
	}
	for _, row := range m.Components {
		for _, b := range row.Components {
			btn := models.Button{Label: b.Label, URL: b.URL, CustomID: b.CustomID}
			if b.Emoji != nil {
				btn.Emoji = b.Emoji.Name
			}
			n.Buttons = append(n.Buttons, btn)
		}
	}
	pm.Notification = n
	return pm
}
