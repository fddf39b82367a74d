// Package assessment provides TRL assessment records: the assessed
// level for a topic, its justification, and citations into the evidence
// that supports it.
//
// Assessments arrive with the TRL in string form ("4" or "TRL 4") and
// citations as 1-based indices into the evidence list, matching the
// numbering shown to the assessor ([1], [2], ...).
package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/readiness/trl"
)

// Assessment is a readiness assessment of a single topic.
type Assessment struct {
	ID            string    `json:"id"`
	Topic         string    `json:"topic"`
	TRL           string    `json:"trl"`
	Justification string    `json:"justification"`
	Citations     []int     `json:"citations"`
	CreatedAt     time.Time `json:"created_at"`
}

// New creates an assessment with a generated ID and creation timestamp.
func New(topic, trlValue, justification string, citations []int) *Assessment {
	return &Assessment{
		ID:            uuid.New().String(),
		Topic:         topic,
		TRL:           trlValue,
		Justification: justification,
		Citations:     citations,
		CreatedAt:     time.Now(),
	}
}

// Level parses the assessment's TRL string into a numeric level.
func (a *Assessment) Level() (int, error) {
	return trl.ParseLevel(a.TRL)
}
