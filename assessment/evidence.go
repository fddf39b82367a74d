package assessment

import "strings"

// Limits on evidence handling. Snippets are truncated before storage or
// display; evidence lists are capped before citation numbering so that
// citation indices stay stable.
const (
	// MaxSnippetLen is the maximum snippet length retained per item.
	MaxSnippetLen = 300

	// MaxEvidenceResults is the maximum number of evidence items kept
	// for a single assessment.
	MaxEvidenceResults = 15
)

// Evidence is one supporting item for an assessment: a short excerpt
// and where it came from.
type Evidence struct {
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
	SourceURL string `json:"source_url"`
}

// SanitizeSnippet escapes backslashes and double quotes so the snippet
// can be embedded safely in JSON or prompt text downstream.
func SanitizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, `\`, `\\`)
	return strings.ReplaceAll(snippet, `"`, `\"`)
}

// TruncateSnippet bounds a snippet to MaxSnippetLen characters.
// Truncation never splits a multi-byte rune.
func TruncateSnippet(snippet string) string {
	if len(snippet) <= MaxSnippetLen {
		return snippet
	}
	runes := []rune(snippet)
	if len(runes) <= MaxSnippetLen {
		return snippet
	}
	return string(runes[:MaxSnippetLen])
}

// CapEvidence bounds an evidence list to MaxEvidenceResults items.
// The original order is preserved.
func CapEvidence(evidence []Evidence) []Evidence {
	if len(evidence) > MaxEvidenceResults {
		return evidence[:MaxEvidenceResults]
	}
	return evidence
}
