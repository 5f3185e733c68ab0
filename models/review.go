package models

import "time"

// VerdictKind is a reviewer's stance on a change at one point in time.
type VerdictKind string

const (
	VerdictApproved         VerdictKind = "APPROVED"
	VerdictChangesRequested VerdictKind = "CHANGES_REQUESTED"
	VerdictCommented        VerdictKind = "COMMENTED"
	VerdictDismissed        VerdictKind = "DISMISSED"
	VerdictPending          VerdictKind = "PENDING"
)

func (k VerdictKind) String() string {
	return string(k)
}

// ReviewEvent is a single raw review submission as delivered by the code host,
// in submission order. Read-only.
type ReviewEvent struct {
	ReviewerID   string      `json:"reviewer_id"`
	ReviewerName string      `json:"reviewer_name"`
	ReviewerURL  string      `json:"reviewer_url"`
	Kind         VerdictKind `json:"kind"`
	SubmittedAt  time.Time   `json:"submitted_at"`
	Bot          bool        `json:"bot"`
}

// ReconciledVerdict is one reviewer's current effective stance after collapsing
// their event history. Kind is always Approved, ChangesRequested or Commented.
type ReconciledVerdict struct {
	ReviewerID   string      `json:"reviewer_id"`
	ReviewerName string      `json:"reviewer_name"`
	ReviewerURL  string      `json:"reviewer_url"`
	Kind         VerdictKind `json:"kind"`
}

// ItemSnapshot is the lifecycle state of the reviewed change at fetch time.
type ItemSnapshot struct {
	Title    string `json:"title"`
	HTMLURL  string `json:"html_url"`
	Open     bool   `json:"open"`
	Merged   bool   `json:"merged"`
	Draft    bool   `json:"draft"`
	AuthorID string `json:"author_id"`
}
