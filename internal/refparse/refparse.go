// Package refparse extracts pull request references from free-form user input.
package refparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/ptalbot/ptal/models"
)

// ErrInvalidReference is returned when input matches neither accepted form.
var ErrInvalidReference = errors.New("invalid pull request reference")

var (
	// Full URL form, host optional: [scheme://host/]ns/repo/pull/N.
	// GitLab merge request paths are accepted alongside GitHub pull paths.
	urlForm = regexp.MustCompile(`((https?://)?[\w.-]+/)?(?P<ns>[\w.-]+)/(?P<coll>[\w.-]+)/(pull|-/merge_requests)/(?P<num>\d+)`)

	// Shorthand form: ns/repo#N.
	shortForm = regexp.MustCompile(`(?P<ns>[\w.-]+)/(?P<coll>[\w.-]+)#(?P<num>\d+)`)
)

// Parse extracts a Reference from input, trying the URL form first and the
// shorthand form second. Segments are not case-normalised.
func Parse(input string) (models.Reference, error) {
	if ref, err := ParseURL(input); err == nil {
		return ref, nil
	}
	return match(shortForm, input)
}

// ParseURL accepts only the URL form. The decoder uses this against a title
// link target, where shorthand input can never legitimately appear.
func ParseURL(input string) (models.Reference, error) {
	return match(urlForm, input)
}

func match(re *regexp.Regexp, input string) (models.Reference, error) {
	m := re.FindStringSubmatch(input)
	if m == nil {
		return models.Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, input)
	}
	num, err := strconv.Atoi(m[re.SubexpIndex("num")])
	if err != nil {
		// Digits only at this point, so this is a range overflow.
		return models.Reference{}, fmt.Errorf("%w: number out of range in %q", ErrInvalidReference, input)
	}
	return models.Reference{
		Namespace:  m[re.SubexpIndex("ns")],
		Collection: m[re.SubexpIndex("coll")],
		Number:     num,
	}, nil
}
