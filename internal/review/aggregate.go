package review

import "github.com/ptalbot/ptal/models"

// Aggregate combines reconciled verdicts with the item's lifecycle state into
// the single status a notification displays.
//
// A closed item is Merged or Closed purely from its lifecycle flags; verdicts
// are ignored for status purposes. For an open item the verdicts are folded in
// reconciled order: a changes-request is sticky and cannot be out-voted by
// approvals from other reviewers, an approval upgrades anything weaker, and a
// comment only lifts the status out of Pending. Draft overrides the folded
// result last — an open draft is never shown as reviewable.
func Aggregate(verdicts []models.ReconciledVerdict, snap models.ItemSnapshot) models.Status {
	if !snap.Open {
		if snap.Merged {
			return models.StatusMerged
		}
		return models.StatusClosed
	}

	status := models.StatusPending
	for _, v := range verdicts {
		switch v.Kind {
		case models.VerdictChangesRequested:
			status = models.StatusChangesRequested
		case models.VerdictApproved:
			if status != models.StatusChangesRequested {
				status = models.StatusApproved
			}
		case models.VerdictCommented:
			if status == models.StatusPending {
				status = models.StatusReviewed
			}
		}
	}

	if snap.Draft {
		return models.StatusDraft
	}
	return status
}
