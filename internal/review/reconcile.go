// Package review collapses raw review event streams into per-reviewer verdicts
// and folds those verdicts into a single aggregate status.
package review

import (
	"strings"

	"github.com/ptalbot/ptal/models"
)

// IsBotReviewer is the default automation-account predicate: either the code
// host flagged the account as a bot, or the login carries the "[bot]" suffix.
func IsBotReviewer(e models.ReviewEvent) bool {
	return e.Bot || strings.HasSuffix(e.ReviewerName, "[bot]")
}

// Reconcile produces one current verdict per distinct reviewer from a raw,
// time-ordered event stream. Events by the item's own author, by automation
// accounts, and pending (unsubmitted) reviews are dropped up front. Dismissed
// events are never candidates for a reviewer's final verdict, but a dismissal
// does not disqualify the reviewer's other events.
//
// Within one reviewer's remaining history the precedence is:
//   - an approval replaces a standing comment, and replaces a standing
//     changes-request only when it was submitted strictly later;
//   - a changes-request replaces a standing comment;
//   - a comment never replaces anything.
//
// Output order follows each reviewer's first appearance in the input.
func Reconcile(events []models.ReviewEvent, authorID string, isBot func(models.ReviewEvent) bool) []models.ReconciledVerdict {
	if isBot == nil {
		isBot = IsBotReviewer
	}

	var order []string
	groups := make(map[string][]models.ReviewEvent)
	for _, e := range events {
		if e.ReviewerID == authorID || isBot(e) || e.Kind == models.VerdictPending {
			continue
		}
		if _, seen := groups[e.ReviewerID]; !seen {
			order = append(order, e.ReviewerID)
		}
		groups[e.ReviewerID] = append(groups[e.ReviewerID], e)
	}

	var verdicts []models.ReconciledVerdict
	for _, id := range order {
		var cur *models.ReviewEvent
		for i := range groups[id] {
			e := groups[id][i]
			if e.Kind == models.VerdictDismissed {
				continue
			}
			if cur == nil {
				cur = &e
				continue
			}
			switch e.Kind {
			case models.VerdictApproved:
				if cur.Kind == models.VerdictCommented ||
					(cur.Kind == models.VerdictChangesRequested && e.SubmittedAt.After(cur.SubmittedAt)) {
					cur = &e
				}
			case models.VerdictChangesRequested:
				if cur.Kind == models.VerdictCommented {
					cur = &e
				}
			}
		}
		if cur == nil {
			// Every event for this reviewer was dismissed.
			continue
		}
		verdicts = append(verdicts, models.ReconciledVerdict{
			ReviewerID:   cur.ReviewerID,
			ReviewerName: cur.ReviewerName,
			ReviewerURL:  cur.ReviewerURL,
			Kind:         cur.Kind,
		})
	}
	return verdicts
}
