// Package notice renders review notifications and decodes them back into the
// context they were rendered from. The rendered message is the only state this
// system persists, so the field layout here is a wire-format contract: every
// embedding rule in the encoder has an exact inverse in the decoder.
package notice

import (
	"fmt"

	"github.com/ptalbot/ptal/models"
)

// Button labels and the refresh interaction ID. The decoder matches on these
// verbatim; changing one is a wire-format break for every live notification.
const (
	LabelViewSource     = "View source"
	LabelFilesChanged   = "Files changed"
	LabelViewDeployment = "View deployment"
	LabelRefresh        = "Refresh"

	RefreshCustomID = "ptal-refresh"

	// BodyPrefix opens every notification body. The description follows after
	// a single space, verbatim; an empty description leaves the bare prefix.
	BodyPrefix = "**PTAL**"
)

// Embed field names.
const (
	fieldRepository = "Repository"
	fieldStatus     = "Status"
	fieldReviews    = "Reviews"
)

// StatusStyle is the fixed display mapping for one aggregate status.
type StatusStyle struct {
	Label string
	Emoji string
	Color uint32
}

// StyleFor returns the display mapping for status. The mapping is enumerated,
// not computed; an unknown status is an internal error, never a fallback.
func StyleFor(status models.Status) (StatusStyle, error) {
	switch status {
	case models.StatusPending:
		return StatusStyle{Label: "Awaiting Review", Emoji: "⏳", Color: 0x3498db}, nil
	case models.StatusReviewed:
		return StatusStyle{Label: "Reviewed", Emoji: "💬", Color: 0xf1c40f}, nil
	case models.StatusChangesRequested:
		return StatusStyle{Label: "Blocked", Emoji: "⭕", Color: 0xed4245}, nil
	case models.StatusApproved:
		return StatusStyle{Label: "Approved", Emoji: "✅", Color: 0x57f287}, nil
	case models.StatusDraft:
		return StatusStyle{Label: "Draft", Emoji: "📝", Color: 0x95a5a6}, nil
	case models.StatusMerged:
		return StatusStyle{Label: "Merged", Emoji: "🟣", Color: 0xa590d4}, nil
	case models.StatusClosed:
		return StatusStyle{Label: "Closed", Emoji: "🗑️", Color: 0x95a5a6}, nil
	default:
		return StatusStyle{}, fmt.Errorf("no display style for status %q", status)
	}
}

// verdictEmoji maps an effective verdict to its review-line icon.
func verdictEmoji(kind models.VerdictKind) string {
	switch kind {
	case models.VerdictApproved:
		return "✅"
	case models.VerdictChangesRequested:
		return "⭕"
	default:
		return "💬"
	}
}
