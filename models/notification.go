package models

import "time"

// NotificationContext is everything a notification needs to be regenerated
// later. It is never stored anywhere except embedded, human-readable, inside
// the rendered notification itself.
type NotificationContext struct {
	Reference          Reference `json:"reference"`
	RequesterName      string    `json:"requester_name"`
	RequesterAvatarURL string    `json:"requester_avatar_url"`
	Description        string    `json:"description"`
	DeploymentURL      string    `json:"deployment_url"` // empty = absent
}

// EmbedAuthor is the author slot of a rendered notification.
type EmbedAuthor struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// EmbedField is one labeled value in a rendered notification.
type EmbedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Button is one action on a rendered notification. URL buttons are links;
// buttons with a CustomID instead are handled by the chat platform.
type Button struct {
	Label    string `json:"label"`
	Emoji    string `json:"emoji,omitempty"`
	URL      string `json:"url,omitempty"`
	CustomID string `json:"custom_id,omitempty"`
}

// RenderedNotification is the displayed artifact: title, fields, author slot,
// body and action buttons. Its field layout is a wire-format contract — the
// encoder and decoder must agree on it bit-for-bit, because the displayed
// message is the only state this system persists.
type RenderedNotification struct {
	Title     string       `json:"title"`
	TitleURL  string       `json:"title_url"`
	Color     uint32       `json:"color"`
	Body      string       `json:"body"`
	Author    EmbedAuthor  `json:"author"`
	Fields    []EmbedField `json:"fields"`
	Buttons   []Button     `json:"buttons"`
	Timestamp time.Time    `json:"timestamp"`
	Footer    string       `json:"footer,omitempty"`
}

// Field returns the value of the named field, or "" if absent.
func (n *RenderedNotification) Field(name string) string {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// ButtonByLabel returns the button with the given label, or nil.
func (n *RenderedNotification) ButtonByLabel(label string) *Button {
	for i := range n.Buttons {
		if n.Buttons[i].Label == label {
			return &n.Buttons[i]
		}
	}
	return nil
}
