package notice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ptalbot/ptal/internal/refparse"
	"github.com/ptalbot/ptal/models"
)

// ErrNotNotification is returned when a message does not conform to the
// rendering contract. For notifications produced by this system that is a
// consistency violation, not a user error; no partial recovery is attempted.
var ErrNotNotification = errors.New("message is not a review notification")

// Decode recovers the NotificationContext embedded in a rendered notification.
// It is the exact inverse of Render's embedding rules and needs no state
// beyond the notification itself.
func Decode(n *models.RenderedNotification) (models.NotificationContext, error) {
	var nctx models.NotificationContext

	ref, err := refparse.ParseURL(n.TitleURL)
	if err != nil {
		return nctx, fmt.Errorf("%w: title link %q carries no reference", ErrNotNotification, n.TitleURL)
	}
	nctx.Reference = ref

	desc, err := decodeBody(n.Body)
	if err != nil {
		return nctx, err
	}
	nctx.Description = desc

	nctx.RequesterName = n.Author.Name
	nctx.RequesterAvatarURL = n.Author.IconURL

	if b := n.ButtonByLabel(LabelViewDeployment); b != nil {
		nctx.DeploymentURL = b.URL
	}

	return nctx, nil
}

func decodeBody(body string) (string, error) {
	if body == BodyPrefix {
		return "", nil
	}
	desc, ok := strings.CutPrefix(body, BodyPrefix+" ")
	if !ok {
		return "", fmt.Errorf("%w: body does not start with %q", ErrNotNotification, BodyPrefix)
	}
	return desc, nil
}
