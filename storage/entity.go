// Package storage provides entity storage for readiness using NATS KV.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/readiness/assessment"
	"github.com/c360studio/readiness/proposal"
)

// EntityType represents the type of entity stored in KV.
type EntityType string

const (
	EntityTypeAssessment EntityType = "assessment"
	EntityTypeDraft      EntityType = "draft"
)

// Bucket names for each entity type.
const (
	BucketAssessments = "READINESS_ASSESSMENTS"
	BucketDrafts      = "READINESS_DRAFTS"
)

// EntityID represents a typed entity identifier.
type EntityID struct {
	Type EntityType
	ID   string
}

// String returns the string representation of the entity ID.
func (e EntityID) String() string {
	return fmt.Sprintf("%s:%s", e.Type, e.ID)
}

// ParseEntityID parses an entity ID string into its components.
func ParseEntityID(s string) (EntityID, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return EntityID{}, fmt.Errorf("invalid entity ID format: %s", s)
	}
	entityType := EntityType(parts[0])
	switch entityType {
	case EntityTypeAssessment, EntityTypeDraft:
		return EntityID{Type: entityType, ID: parts[1]}, nil
	default:
		return EntityID{}, fmt.Errorf("unknown entity type: %s", parts[0])
	}
}

// NewEntityID generates a new unique entity ID for the given type.
func NewEntityID(t EntityType) EntityID {
	return EntityID{
		Type: t,
		ID:   uuid.New().String(),
	}
}

// AssessmentRecord is a stored assessment together with the evidence it
// was based on and its gate outcome.
type AssessmentRecord struct {
	ID         string                 `json:"id"`
	Assessment *assessment.Assessment `json:"assessment"`
	Evidence   []assessment.Evidence  `json:"evidence,omitempty"`
	Gate       *assessment.GateResult `json:"gate,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// DraftRecord is a stored snapshot of a proposal draft's metadata,
// including any sections currently awaiting regeneration.
type DraftRecord struct {
	ID            string             `json:"id"`
	Draft         *proposal.Draft    `json:"draft"`
	StaleSections []proposal.Section `json:"stale_sections,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// Store provides entity storage operations backed by NATS KV.
type Store struct {
	assessments jetstream.KeyValue
	drafts      jetstream.KeyValue
}

// NewStore creates a new Store with the given JetStream context.
// It creates the necessary KV buckets if they don't exist.
func NewStore(ctx context.Context, js jetstream.JetStream) (*Store, error) {
	assessments, err := getOrCreateBucket(ctx, js, BucketAssessments)
	if err != nil {
		return nil, fmt.Errorf("create assessments bucket: %w", err)
	}

	drafts, err := getOrCreateBucket(ctx, js, BucketDrafts)
	if err != nil {
		return nil, fmt.Errorf("create drafts bucket: %w", err)
	}

	return &Store{
		assessments: assessments,
		drafts:      drafts,
	}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: fmt.Sprintf("Readiness %s storage", strings.ToLower(name)),
		History:     5, // Keep last 5 revisions
	})
}

// CreateAssessment stores a new assessment record and returns its ID.
func (s *Store) CreateAssessment(ctx context.Context, r *AssessmentRecord) (EntityID, error) {
	id := NewEntityID(EntityTypeAssessment)
	r.ID = id.String()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt

	data, err := json.Marshal(r)
	if err != nil {
		return EntityID{}, fmt.Errorf("marshal assessment: %w", err)
	}

	if _, err := s.assessments.Create(ctx, id.ID, data); err != nil {
		return EntityID{}, fmt.Errorf("store assessment: %w", err)
	}

	return id, nil
}

// GetAssessment retrieves an assessment record by ID.
func (s *Store) GetAssessment(ctx context.Context, id EntityID) (*AssessmentRecord, error) {
	if id.Type != EntityTypeAssessment {
		return nil, fmt.Errorf("invalid entity type: expected assessment, got %s", id.Type)
	}

	entry, err := s.assessments.Get(ctx, id.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get assessment: %w", err)
	}

	var r AssessmentRecord
	if err := json.Unmarshal(entry.Value(), &r); err != nil {
		return nil, fmt.Errorf("unmarshal assessment: %w", err)
	}

	return &r, nil
}

// UpdateAssessment updates an existing assessment record.
func (s *Store) UpdateAssessment(ctx context.Context, r *AssessmentRecord) error {
	id, err := ParseEntityID(r.ID)
	if err != nil {
		return fmt.Errorf("parse assessment ID: %w", err)
	}

	r.UpdatedAt = time.Now()

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}

	if _, err := s.assessments.Put(ctx, id.ID, data); err != nil {
		return fmt.Errorf("update assessment: %w", err)
	}

	return nil
}

// ListAssessments returns all stored assessment records.
func (s *Store) ListAssessments(ctx context.Context) ([]*AssessmentRecord, error) {
	keys, err := s.assessments.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list assessment keys: %w", err)
	}

	records := make([]*AssessmentRecord, 0, len(keys))
	for _, key := range keys {
		entry, err := s.assessments.Get(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		var r AssessmentRecord
		if err := json.Unmarshal(entry.Value(), &r); err != nil {
			continue
		}
		records = append(records, &r)
	}

	return records, nil
}

// PutDraft stores or replaces a draft record keyed by slug.
func (s *Store) PutDraft(ctx context.Context, r *DraftRecord) error {
	if r.Draft == nil || r.Draft.Slug == "" {
		return fmt.Errorf("draft record requires a draft with a slug")
	}

	now := time.Now()
	if r.ID == "" {
		r.ID = EntityID{Type: EntityTypeDraft, ID: r.Draft.Slug}.String()
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	if _, err := s.drafts.Put(ctx, r.Draft.Slug, data); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}

	return nil
}

// GetDraft retrieves a draft record by slug.
func (s *Store) GetDraft(ctx context.Context, slug string) (*DraftRecord, error) {
	entry, err := s.drafts.Get(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var r DraftRecord
	if err := json.Unmarshal(entry.Value(), &r); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}

	return &r, nil
}

// ListDrafts returns all stored draft records.
func (s *Store) ListDrafts(ctx context.Context) ([]*DraftRecord, error) {
	keys, err := s.drafts.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list draft keys: %w", err)
	}

	records := make([]*DraftRecord, 0, len(keys))
	for _, key := range keys {
		entry, err := s.drafts.Get(ctx, key)
		if err != nil {
			continue
		}
		var r DraftRecord
		if err := json.Unmarshal(entry.Value(), &r); err != nil {
			continue
		}
		records = append(records, &r)
	}

	return records, nil
}

// DeleteDraft removes a draft record by slug.
func (s *Store) DeleteDraft(ctx context.Context, slug string) error {
	if err := s.drafts.Delete(ctx, slug); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound)
}
