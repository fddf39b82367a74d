package assessment

import "github.com/c360studio/semstreams/vocabulary"

// Namespace for assessment predicates.
const Namespace = "https://readiness.dev/vocabulary/assessment#"

// PROV-O IRI constants for temporal predicates.
const (
	// ProvGeneratedAtTime indicates when an entity was generated.
	ProvGeneratedAtTime = "http://www.w3.org/ns/prov#generatedAtTime"
)

// Core assessment predicates.
const (
	// PredicateTopic is the technology or concept being assessed.
	PredicateTopic = "readiness.assessment.topic"

	// PredicateTRL is the assessed technology readiness level.
	// Values: "1" through "9"
	PredicateTRL = "readiness.assessment.trl"

	// PredicateJustification explains why the level was assigned.
	PredicateJustification = "readiness.assessment.justification"

	// PredicateDecision is the gate outcome against the minimum
	// acceptable TRL. Values: accepted, rejected
	PredicateDecision = "readiness.assessment.decision"

	// PredicateCreatedAt is the RFC3339 timestamp when the assessment
	// was recorded.
	PredicateCreatedAt = "readiness.assessment.created_at"
)

// Evidence predicates.
const (
	// PredicateCitation links an assessment to a cited evidence source
	// URL.
	PredicateCitation = "readiness.assessment.citation"

	// PredicateEvidenceCount is the number of evidence items the
	// assessment was based on.
	PredicateEvidenceCount = "readiness.assessment.evidence_count"
)

func init() {
	vocabulary.Register(PredicateTopic,
		vocabulary.WithDescription("Technology or concept being assessed"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"topic"))

	vocabulary.Register(PredicateTRL,
		vocabulary.WithDescription("Assessed technology readiness level"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"trl"))

	vocabulary.Register(PredicateJustification,
		vocabulary.WithDescription("Justification for the assigned level"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"justification"))

	vocabulary.Register(PredicateDecision,
		vocabulary.WithDescription("Gate decision against minimum acceptable TRL"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"decision"))

	vocabulary.Register(PredicateCreatedAt,
		vocabulary.WithDescription("Creation timestamp (RFC3339)"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(ProvGeneratedAtTime))

	vocabulary.Register(PredicateCitation,
		vocabulary.WithDescription("Cited evidence source URL"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"citation"))

	vocabulary.Register(PredicateEvidenceCount,
		vocabulary.WithDescription("Number of evidence items considered"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(Namespace+"evidenceCount"))
}
