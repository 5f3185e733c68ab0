package notice

import (
	"strconv"
	"testing"

	"github.com/ptalbot/ptal/models"
)

// The round-trip law: decode(render(ctx)) == ctx for every representable
// context, regardless of item state, status or verdict set.
func TestRoundTrip(t *testing.T) {
	contexts := []models.NotificationContext{
		{
			Reference:          models.Reference{Namespace: "acme", Collection: "widgets", Number: 42},
			RequesterName:      "mel",
			RequesterAvatarURL: "https://cdn.example/avatars/mel.png",
			Description:        "please check",
			DeploymentURL:      "https://preview.example/pr-42",
		},
		{
			Reference:     models.Reference{Namespace: "acme", Collection: "widgets", Number: 42},
			RequesterName: "mel",
			Description:   "",
			DeploymentURL: "",
		},
		{
			Reference:     models.Reference{Namespace: "My-Org.io", Collection: "dotted.repo", Number: 1},
			RequesterName: "Someone With Spaces",
			Description:   "**bold** and [a link](https://example.com) and #42 and **PTAL** again",
		},
		{
			Reference:     models.Reference{Namespace: "a", Collection: "b", Number: 2147483647},
			RequesterName: "edge",
			Description:   " leading and trailing spaces ",
			DeploymentURL: "https://deploy.example/x?query=1&b=2",
		},
	}

	snaps := []models.ItemSnapshot{
		{Title: "Add frobnicator", Open: true},
		{Title: "Add frobnicator", Open: true, Draft: true},
		{Title: "Add frobnicator", Merged: true},
		{Title: "Add frobnicator"},
	}

	verdictSets := [][]models.ReconciledVerdict{
		nil,
		{{ReviewerID: "1", ReviewerName: "alice", ReviewerURL: "https://github.com/alice", Kind: models.VerdictApproved}},
		{
			{ReviewerID: "1", ReviewerName: "alice", ReviewerURL: "https://github.com/alice", Kind: models.VerdictChangesRequested},
			{ReviewerID: "2", ReviewerName: "bob", ReviewerURL: "https://github.com/bob", Kind: models.VerdictCommented},
		},
	}

	statuses := []models.Status{
		models.StatusPending, models.StatusReviewed, models.StatusChangesRequested,
		models.StatusApproved, models.StatusDraft, models.StatusMerged, models.StatusClosed,
	}

	for _, nctx := range contexts {
		// The title link target carries the reference, so the snapshot URL
		// must denote the same item the context does.
		for _, snap := range snaps {
			snap.HTMLURL = "https://github.com/" + nctx.Reference.Namespace + "/" +
				nctx.Reference.Collection + "/pull/" + strconv.Itoa(nctx.Reference.Number)
			for _, verdicts := range verdictSets {
				for _, status := range statuses {
					for _, refreshed := range []bool{false, true} {
						n, err := Render(nctx, snap, status, verdicts, refreshed)
						if err != nil {
							t.Fatalf("Render(%v, %s): %v", nctx.Reference, status, err)
						}
						got, err := Decode(n)
						if err != nil {
							t.Fatalf("Decode after Render(%v, %s): %v", nctx.Reference, status, err)
						}
						if got != nctx {
							t.Fatalf("round trip mismatch for status %s:\n got  %+v\n want %+v", status, got, nctx)
						}
					}
				}
			}
		}
	}
}

func TestRoundTripGitLabURL(t *testing.T) {
	nctx := models.NotificationContext{
		Reference:     models.Reference{Namespace: "acme", Collection: "widgets", Number: 7},
		RequesterName: "mel",
		Description:   "gitlab flavoured",
	}
	snap := models.ItemSnapshot{
		Title:   "Fix pipeline",
		HTMLURL: "https://gitlab.com/acme/widgets/-/merge_requests/7",
		Open:    true,
	}
	n, err := Render(nctx, snap, models.StatusPending, nil, false)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got, err := Decode(n)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != nctx {
		t.Fatalf("got %+v, want %+v", got, nctx)
	}
}
