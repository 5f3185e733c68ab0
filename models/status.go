package models

// Status is the single aggregate review status shown on a notification.
type Status string

const (
	StatusPending          Status = "PENDING"
	StatusReviewed         Status = "REVIEWED"
	StatusChangesRequested Status = "CHANGES_REQUESTED"
	StatusApproved         Status = "APPROVED"
	StatusDraft            Status = "DRAFT"
	StatusMerged           Status = "MERGED"
	StatusClosed           Status = "CLOSED"
)

func (s Status) String() string {
	return string(s)
}

// Refreshable reports whether a notification in this status keeps its
// refresh action. Merged is final: the review outcome can no longer change.
func (s Status) Refreshable() bool {
	return s != StatusMerged
}
