package review

import (
	"testing"

	"github.com/ptalbot/ptal/models"
)

func verdict(reviewer string, kind models.VerdictKind) models.ReconciledVerdict {
	return models.ReconciledVerdict{ReviewerID: reviewer, ReviewerName: reviewer, Kind: kind}
}

func openSnap() models.ItemSnapshot {
	return models.ItemSnapshot{Open: true}
}

func TestAggregateNoVerdictsIsPending(t *testing.T) {
	if got := Aggregate(nil, openSnap()); got != models.StatusPending {
		t.Fatalf("got %s", got)
	}
}

func TestAggregateChangesRequestedIsSticky(t *testing.T) {
	verdicts := []models.ReconciledVerdict{
		verdict("alice", models.VerdictApproved),
		verdict("bob", models.VerdictChangesRequested),
	}
	if got := Aggregate(verdicts, openSnap()); got != models.StatusChangesRequested {
		t.Fatalf("got %s", got)
	}
	// Order does not matter: a later approval from a different reviewer
	// cannot lift a standing block either.
	verdicts[0], verdicts[1] = verdicts[1], verdicts[0]
	if got := Aggregate(verdicts, openSnap()); got != models.StatusChangesRequested {
		t.Fatalf("got %s after swap", got)
	}
}

func TestAggregateApprovedBeatsReviewed(t *testing.T) {
	verdicts := []models.ReconciledVerdict{
		verdict("alice", models.VerdictCommented),
		verdict("bob", models.VerdictApproved),
	}
	if got := Aggregate(verdicts, openSnap()); got != models.StatusApproved {
		t.Fatalf("got %s", got)
	}
}

func TestAggregateCommentOnlyLiftsPending(t *testing.T) {
	verdicts := []models.ReconciledVerdict{verdict("alice", models.VerdictCommented)}
	if got := Aggregate(verdicts, openSnap()); got != models.StatusReviewed {
		t.Fatalf("got %s", got)
	}
	verdicts = append(verdicts, verdict("bob", models.VerdictApproved), verdict("carol", models.VerdictCommented))
	if got := Aggregate(verdicts, openSnap()); got != models.StatusApproved {
		t.Fatalf("comment downgraded approval: %s", got)
	}
}

func TestAggregateDraftOverridesFoldedResult(t *testing.T) {
	snap := models.ItemSnapshot{Open: true, Draft: true}
	verdicts := []models.ReconciledVerdict{verdict("alice", models.VerdictApproved)}
	if got := Aggregate(verdicts, snap); got != models.StatusDraft {
		t.Fatalf("got %s", got)
	}
	if got := Aggregate(nil, snap); got != models.StatusDraft {
		t.Fatalf("empty draft got %s", got)
	}
}

func TestAggregateClosedIgnoresVerdicts(t *testing.T) {
	verdicts := []models.ReconciledVerdict{
		verdict("alice", models.VerdictApproved),
		verdict("bob", models.VerdictChangesRequested),
	}
	if got := Aggregate(verdicts, models.ItemSnapshot{Merged: true}); got != models.StatusMerged {
		t.Fatalf("got %s", got)
	}
	if got := Aggregate(verdicts, models.ItemSnapshot{}); got != models.StatusClosed {
		t.Fatalf("got %s", got)
	}
	// Merged wins over a stale draft flag on a closed item.
	if got := Aggregate(nil, models.ItemSnapshot{Merged: true, Draft: true}); got != models.StatusMerged {
		t.Fatalf("got %s", got)
	}
}

func TestReconcileThenAggregateResolvesSameReviewerBlock(t *testing.T) {
	// ChangesRequested followed by a strictly later approval from the same
	// reviewer reconciles to Approved, so aggregation sees no block.
	events := []models.ReviewEvent{
		ev("alice", models.VerdictChangesRequested, 0),
		ev("alice", models.VerdictApproved, 1),
	}
	verdicts := Reconcile(events, "author", nil)
	if got := Aggregate(verdicts, openSnap()); got != models.StatusApproved {
		t.Fatalf("got %s", got)
	}
}
