package forge

import (
	"fmt"
	"strconv"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/ptalbot/ptal/internal/refparse"
	"github.com/ptalbot/ptal/models"
)

// InferReference resolves free-form input to a Reference. Input that already
// parses is returned as-is; a bare number (with or without a leading '#') is
// resolved against the origin remote of the git working tree at dir, so
// "ptal send 42" works from inside a checkout.
func InferReference(input, dir string) (models.Reference, error) {
	if ref, err := refparse.Parse(input); err == nil {
		return ref, nil
	}

	num, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(input), "#"))
	if err != nil || num < 0 {
		return models.Reference{}, fmt.Errorf("%w: %q", refparse.ErrInvalidReference, input)
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return models.Reference{}, fmt.Errorf("resolving %q against a local checkout: %w", input, err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return models.Reference{}, fmt.Errorf("reading origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return models.Reference{}, fmt.Errorf("origin remote has no URL")
	}

	ns, coll, err := SplitRemoteURL(urls[0])
	if err != nil {
		return models.Reference{}, err
	}
	return models.Reference{Namespace: ns, Collection: coll, Number: num}, nil
}

// SplitRemoteURL extracts namespace and collection from an https or scp-style
// git remote URL.
func SplitRemoteURL(raw string) (string, string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(raw, "/"), ".git")

	var path string
	if i := strings.Index(trimmed, "://"); i >= 0 {
		// https://host/ns/coll
		rest := trimmed[i+3:]
		slash := strings.Index(rest, "/")
		if slash < 0 {
			return "", "", fmt.Errorf("remote URL %q has no path", raw)
		}
		path = rest[slash+1:]
	} else if i := strings.Index(trimmed, ":"); i >= 0 {
		// git@host:ns/coll
		path = trimmed[i+1:]
	} else {
		return "", "", fmt.Errorf("unrecognised remote URL %q", raw)
	}

	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("remote URL %q has no namespace/repository path", raw)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
