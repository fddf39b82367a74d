// Package graph provides utilities for publishing readiness entities to
// the knowledge graph.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/readiness/assessment"
	"github.com/c360studio/readiness/proposal"
	assessmentvocab "github.com/c360studio/readiness/vocabulary/assessment"
	proposalvocab "github.com/c360studio/readiness/vocabulary/proposal"
)

// GraphIngestSubject is the subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// EntityIngestMessage is the message format for graph ingestion.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PublishAssessment publishes an assessment entity to the knowledge
// graph, including its gate decision when one has been recorded.
func PublishAssessment(ctx context.Context, nc *natsclient.Client, a *assessment.Assessment, evidence []assessment.Evidence, gate *assessment.GateResult) error {
	if nc == nil {
		return nil // Skip publishing if no NATS client (graceful degradation)
	}

	now := time.Now()
	return publish(ctx, nc, AssessmentEntityID(a.ID), assessmentTriples(a, evidence, gate, now), now)
}

// assessmentTriples builds the triple set for an assessment entity.
func assessmentTriples(a *assessment.Assessment, evidence []assessment.Evidence, gate *assessment.GateResult, now time.Time) []message.Triple {
	entityID := AssessmentEntityID(a.ID)

	triples := []message.Triple{
		{
			Subject:    entityID,
			Predicate:  assessmentvocab.PredicateTopic,
			Object:     a.Topic,
			Source:     "readiness.assess",
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  assessmentvocab.PredicateTRL,
			Object:     a.TRL,
			Source:     "readiness.assess",
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  assessmentvocab.PredicateJustification,
			Object:     a.Justification,
			Source:     "readiness.assess",
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  assessmentvocab.PredicateCreatedAt,
			Object:     a.CreatedAt.Format(time.RFC3339),
			Source:     "readiness.assess",
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  assessmentvocab.PredicateEvidenceCount,
			Object:     len(evidence),
			Source:     "readiness.assess",
			Timestamp:  now,
			Confidence: 1.0,
		},
	}

	if gate != nil {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  assessmentvocab.PredicateDecision,
			Object:     string(gate.Decision),
			Source:     "readiness.assess",
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	for _, url := range assessment.CitationURLs(a, evidence) {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  assessmentvocab.PredicateCitation,
			Object:     url,
			Source:     "readiness.assess",
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	return triples
}

// PublishDraft publishes a proposal draft entity to the knowledge
// graph, including any sections currently marked stale.
func PublishDraft(ctx context.Context, nc *natsclient.Client, draft *proposal.Draft, stale []proposal.Section) error {
	if nc == nil {
		return nil
	}

	now := time.Now()
	return publish(ctx, nc, DraftEntityID(draft.Slug), draftTriples(draft, stale, now), now)
}

// draftTriples builds the triple set for a draft entity.
func draftTriples(draft *proposal.Draft, stale []proposal.Section, now time.Time) []message.Triple {
	entityID := DraftEntityID(draft.Slug)

	triples := []message.Triple{
		{
			Subject:    entityID,
			Predicate:  proposalvocab.PredicateTitle,
			Object:     draft.Title,
			Source:     "readiness.draft",
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  proposalvocab.PredicateSlug,
			Object:     draft.Slug,
			Source:     "readiness.draft",
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  proposalvocab.PredicateStatus,
			Object:     string(draft.Status),
			Source:     "readiness.draft",
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  proposalvocab.PredicateAuthor,
			Object:     draft.Author,
			Source:     "readiness.draft",
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  proposalvocab.PredicateCreatedAt,
			Object:     draft.CreatedAt.Format(time.RFC3339),
			Source:     "readiness.draft",
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  proposalvocab.PredicateUpdatedAt,
			Object:     draft.UpdatedAt.Format(time.RFC3339),
			Source:     "readiness.draft",
			Timestamp:  now,
			Confidence: 1.0,
		},
	}

	if draft.AssessmentID != "" {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  proposalvocab.PredicateAssessment,
			Object:     AssessmentEntityID(draft.AssessmentID),
			Source:     "readiness.draft",
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	for _, section := range proposal.AllSections() {
		if draft.Sections[section] {
			triples = append(triples, message.Triple{
				Subject:    entityID,
				Predicate:  proposalvocab.PredicateHasSection,
				Object:     section.String(),
				Source:     "readiness.draft",
				Timestamp:  now,
				Confidence: 1.0,
			})
		}
	}

	for _, section := range stale {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  proposalvocab.PredicateStaleSection,
			Object:     section.String(),
			Source:     "readiness.draft",
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	return triples
}

func publish(ctx context.Context, nc *natsclient.Client, entityID string, triples []message.Triple, now time.Time) error {
	msg := EntityIngestMessage{
		ID:        entityID,
		Triples:   triples,
		UpdatedAt: now,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal entity: %w", err)
	}

	if err := nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish entity: %w", err)
	}

	return nil
}

// AssessmentEntityID generates a consistent entity ID for an assessment.
// Format: readiness.local.assessment.assessment.<id>
func AssessmentEntityID(id string) string {
	return fmt.Sprintf("readiness.local.assessment.assessment.%s", id)
}

// DraftEntityID generates a consistent entity ID for a proposal draft.
// Format: readiness.local.proposal.draft.<slug>
func DraftEntityID(slug string) string {
	return fmt.Sprintf("readiness.local.proposal.draft.%s", slug)
}
