// Package chat delivers rendered notifications to the team channel.
package chat

import (
	"context"

	"github.com/ptalbot/ptal/models"
)

// PostedMessage is a channel message as read back from the platform.
// Notification is nil when the message does not carry an embed this tool
// could have produced.
type PostedMessage struct {
	ID           string
	AuthorID     string
	Notification *models.RenderedNotification
}

// Messenger is implemented by each chat platform client.
type Messenger interface {
	Name() string
	IsConfigured() bool

	// Post sends a new notification and returns the platform message ID.
	Post(ctx context.Context, n *models.RenderedNotification) (string, error)

	// Update replaces the notification content of an existing message.
	Update(ctx context.Context, messageID string, n *models.RenderedNotification) error

	// History returns the most recent channel messages, newest first.
	History(ctx context.Context, limit int) ([]PostedMessage, error)

	// Message returns a single channel message by ID.
	Message(ctx context.Context, messageID string) (*PostedMessage, error)

	// BotIdentity returns the posting account's own identity.
	BotIdentity(ctx context.Context) (models.Identity, error)
}
