package ptal

import (
	"errors"
	"fmt"

	"github.com/ptalbot/ptal/models"
)

// FetchErrorKind distinguishes the two upstream fetches.
type FetchErrorKind int

const (
	// ItemNotFound: the item snapshot fetch failed.
	ItemNotFound FetchErrorKind = iota
	// ReviewsUnavailable: the review events fetch failed.
	ReviewsUnavailable
)

// ParseError reports malformed reference text. User-correctable; no fetch is
// attempted.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing reference %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports invalid supplementary input, rejected before any
// fetch.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FetchError reports an upstream failure. Terminal for the invocation; no
// partial render is sent and nothing is retried.
type FetchError struct {
	Kind FetchErrorKind
	Ref  models.Reference
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Ref, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError reports a refresh attempted on a message that does not conform
// to the rendering contract. An internal consistency error, never expected in
// normal operation.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding notification: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UserMessage maps any pipeline failure to the single message shown to the
// invoking user.
func UserMessage(err error) string {
	var (
		parseErr *ParseError
		valErr   *ValidationError
		fetchErr *FetchError
		decErr   *DecodeError
	)
	switch {
	case errors.As(err, &parseErr):
		return "Please provide a valid pull request. Use owner/repo#number or a full URL."
	case errors.As(err, &valErr):
		return "The deployment link must be an http(s) URL."
	case errors.As(err, &fetchErr):
		if fetchErr.Kind == ItemNotFound {
			return "Failed to retrieve the pull request. Are you sure it exists?"
		}
		return "Failed to retrieve the pull request reviews."
	case errors.As(err, &decErr):
		return "That message is not a PTAL notification I can refresh."
	default:
		return "Something went wrong while building the notification."
	}
}
