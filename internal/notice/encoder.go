package notice

import (
	"fmt"
	"strings"
	"time"

	"github.com/ptalbot/ptal/models"
)

// Render builds the complete notification for one pipeline run. All context
// needed to regenerate the notification later is embedded in stable fields:
// the reference in the title link target, the requester in the author slot,
// the description after BodyPrefix, and the deployment link as the URL of the
// button labeled LabelViewDeployment.
func Render(nctx models.NotificationContext, snap models.ItemSnapshot, status models.Status,
	verdicts []models.ReconciledVerdict, refreshed bool) (*models.RenderedNotification, error) {

	style, err := StyleFor(status)
	if err != nil {
		return nil, err
	}

	n := &models.RenderedNotification{
		Title:    titlePrefix(snap) + snap.Title,
		TitleURL: snap.HTMLURL,
		Color:    style.Color,
		Body:     encodeBody(nctx.Description),
		Author: models.EmbedAuthor{
			Name:    nctx.RequesterName,
			IconURL: nctx.RequesterAvatarURL,
		},
		Timestamp: time.Now().UTC(),
	}
	if refreshed {
		n.Footer = "Last refreshed"
	}

	n.Fields = append(n.Fields, models.EmbedField{
		Name:  fieldRepository,
		Value: fmt.Sprintf("[%s](%s)", nctx.Reference, snap.HTMLURL),
	})
	n.Fields = append(n.Fields, models.EmbedField{
		Name:  fieldStatus,
		Value: style.Emoji + " " + style.Label,
	})
	if lines := reviewLines(verdicts, snap.Open); lines != "" {
		n.Fields = append(n.Fields, models.EmbedField{Name: fieldReviews, Value: lines})
	}

	n.Buttons = append(n.Buttons,
		models.Button{Label: LabelViewSource, Emoji: "🔗", URL: snap.HTMLURL},
		models.Button{Label: LabelFilesChanged, Emoji: "📁", URL: filesURL(snap.HTMLURL)},
	)
	if nctx.DeploymentURL != "" {
		n.Buttons = append(n.Buttons, models.Button{Label: LabelViewDeployment, Emoji: "🚀", URL: nctx.DeploymentURL})
	}
	if status.Refreshable() {
		n.Buttons = append(n.Buttons, models.Button{Label: LabelRefresh, Emoji: "🔁", CustomID: RefreshCustomID})
	}

	return n, nil
}

// titlePrefix marks closed and draft items, merged taking priority.
func titlePrefix(snap models.ItemSnapshot) string {
	switch {
	case snap.Merged:
		return "[MERGED] "
	case !snap.Open:
		return "[CLOSED] "
	case snap.Draft:
		return "[DRAFT] "
	default:
		return ""
	}
}

func encodeBody(description string) string {
	if description == "" {
		return BodyPrefix
	}
	return BodyPrefix + " " + description
}

// reviewLines renders one line per reconciled verdict. Reviewer identity is
// only linked while the item is open; on a closed item the icon alone remains.
func reviewLines(verdicts []models.ReconciledVerdict, open bool) string {
	var b strings.Builder
	for _, v := range verdicts {
		if open {
			fmt.Fprintf(&b, "[%s %s](%s)\n", verdictEmoji(v.Kind), v.ReviewerName, v.ReviewerURL)
		} else {
			b.WriteString(verdictEmoji(v.Kind) + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// filesURL derives the changed-files page from the item's own URL.
func filesURL(htmlURL string) string {
	if strings.Contains(htmlURL, "/-/merge_requests/") {
		return htmlURL + "/diffs"
	}
	return htmlURL + "/files"
}
