package assessment

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	// ErrNoJustification is returned when an assessment has an empty
	// justification.
	ErrNoJustification = errors.New("assessment has no justification")

	// ErrBadCitation is returned when a citation index does not point
	// into the evidence list.
	ErrBadCitation = errors.New("citation index out of evidence range")
)

// Validate checks an assessment against its evidence:
// the TRL string must parse to a level on the scale, the justification
// must be non-empty, and every citation must be a 1-based index into
// evidence.
func Validate(a *Assessment, evidence []Evidence) error {
	if a == nil {
		return errors.New("assessment is nil")
	}

	if _, err := a.Level(); err != nil {
		return fmt.Errorf("assessment TRL: %w", err)
	}

	if strings.TrimSpace(a.Justification) == "" {
		return ErrNoJustification
	}

	for _, idx := range a.Citations {
		if idx < 1 || idx > len(evidence) {
			return fmt.Errorf("citation [%d] with %d evidence items: %w", idx, len(evidence), ErrBadCitation)
		}
	}

	return nil
}

// CitationURLs returns the source URLs for the assessment's citations,
// in citation order, with duplicates removed. Citations that fail to
// resolve are skipped; call Validate first to reject them.
func CitationURLs(a *Assessment, evidence []Evidence) []string {
	seen := make(map[string]bool)
	var urls []string

	for _, idx := range a.Citations {
		if idx < 1 || idx > len(evidence) {
			continue
		}
		url := evidence[idx-1].SourceURL
		if url == "" || seen[url] {
			continue
		}
		seen[url] = true
		urls = append(urls, url)
	}

	return urls
}
