package trl

import _ "embed"

//go:embed rubric.md
var rubric string

// Rubric returns the full rubric as markdown, suitable for display or
// for inclusion in assessment prompts.
func Rubric() string {
	return rubric
}
