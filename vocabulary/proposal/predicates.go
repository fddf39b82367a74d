package proposal

import "github.com/c360studio/semstreams/vocabulary"

// Namespace for proposal predicates.
const Namespace = "https://readiness.dev/vocabulary/proposal#"

// PROV-O IRI constants for temporal predicates.
const (
	// ProvGeneratedAtTime indicates when an entity was generated.
	ProvGeneratedAtTime = "http://www.w3.org/ns/prov#generatedAtTime"
)

// Core proposal predicates.
const (
	// PredicateTitle is the draft title.
	PredicateTitle = "readiness.proposal.title"

	// PredicateSlug is the URL-safe identifier for the draft.
	PredicateSlug = "readiness.proposal.slug"

	// PredicateStatus is the draft lifecycle status.
	// Values: created, drafted, assessed, archived
	PredicateStatus = "readiness.proposal.status"

	// PredicateAuthor is the user who created the draft.
	PredicateAuthor = "readiness.proposal.author"

	// PredicateCreatedAt is the RFC3339 timestamp when the draft was created.
	PredicateCreatedAt = "readiness.proposal.created_at"

	// PredicateUpdatedAt is the RFC3339 timestamp when the draft was last updated.
	PredicateUpdatedAt = "readiness.proposal.updated_at"
)

// Section predicates.
const (
	// PredicateHasSection indicates a section file exists for the draft.
	PredicateHasSection = "readiness.proposal.has_section"

	// PredicateStaleSection marks a section awaiting regeneration after
	// a cascade.
	PredicateStaleSection = "readiness.proposal.stale_section"
)

// Relationship predicates.
const (
	// PredicateAssessment links a draft to its readiness assessment
	// entity.
	PredicateAssessment = "readiness.proposal.assessment"
)

func init() {
	vocabulary.Register(PredicateTitle,
		vocabulary.WithDescription("Draft title"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"title"))

	vocabulary.Register(PredicateSlug,
		vocabulary.WithDescription("URL-safe identifier"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"slug"))

	vocabulary.Register(PredicateStatus,
		vocabulary.WithDescription("Draft lifecycle status"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"status"))

	vocabulary.Register(PredicateAuthor,
		vocabulary.WithDescription("Creator of the draft"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.ProvWasAttributedTo))

	vocabulary.Register(PredicateCreatedAt,
		vocabulary.WithDescription("Creation timestamp (RFC3339)"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(ProvGeneratedAtTime))

	vocabulary.Register(PredicateUpdatedAt,
		vocabulary.WithDescription("Last update timestamp (RFC3339)"),
		vocabulary.WithDataType("datetime"))

	vocabulary.Register(PredicateHasSection,
		vocabulary.WithDescription("Section file present for the draft"),
		vocabulary.WithDataType("string"))

	vocabulary.Register(PredicateStaleSection,
		vocabulary.WithDescription("Section awaiting regeneration"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"staleSection"))

	vocabulary.Register(PredicateAssessment,
		vocabulary.WithDescription("Link to readiness assessment entity"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(Namespace+"hasAssessment"))
}
