package proposal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Directory constants for the .readiness structure.
const (
	RootDir      = ".readiness"
	DraftsDir    = "drafts"
	ArchiveDir   = "archive"
	MetadataFile = "metadata.json"
	SectionExt   = ".md"
)

// Status represents the lifecycle state of a draft.
type Status string

const (
	// StatusCreated indicates the draft directory exists but no
	// sections have been written.
	StatusCreated Status = "created"
	// StatusDrafted indicates at least the core sections are written.
	StatusDrafted Status = "drafted"
	// StatusAssessed indicates a readiness assessment has been recorded.
	StatusAssessed Status = "assessed"
	// StatusArchived indicates the draft has been archived.
	StatusArchived Status = "archived"
)

// IsValid returns true if the status is a known draft status.
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusDrafted, StatusAssessed, StatusArchived:
		return true
	default:
		return false
	}
}

// CanTransitionTo returns true if the status can move to target.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusCreated:
		return target == StatusDrafted
	case StatusDrafted:
		return target == StatusAssessed || target == StatusArchived
	case StatusAssessed:
		return target == StatusArchived
	default:
		return false
	}
}

// Draft is the metadata record for one proposal draft.
type Draft struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// AssessmentID is the readiness assessment this draft was gated
	// on, set when an accepted assessment is linked to the draft.
	AssessmentID string `json:"assessment_id,omitempty"`

	// Sections reports which section files currently exist. Populated
	// on load, not persisted.
	Sections map[Section]bool `json:"-"`
}

// Manager provides file operations for proposal drafts.
type Manager struct {
	repoRoot string
}

// NewManager creates a manager rooted at the given repository root.
func NewManager(repoRoot string) *Manager {
	return &Manager{repoRoot: repoRoot}
}

// RootPath returns the full path to the .readiness directory.
func (m *Manager) RootPath() string {
	return filepath.Join(m.repoRoot, RootDir)
}

// DraftsPath returns the path to the drafts directory.
func (m *Manager) DraftsPath() string {
	return filepath.Join(m.RootPath(), DraftsDir)
}

// ArchivePath returns the path to the archive directory.
func (m *Manager) ArchivePath() string {
	return filepath.Join(m.RootPath(), ArchiveDir)
}

// DraftPath returns the path to a specific draft directory.
func (m *Manager) DraftPath(slug string) string {
	return filepath.Join(m.DraftsPath(), slug)
}

// SectionPath returns the path to a section file within a draft.
func (m *Manager) SectionPath(slug string, section Section) string {
	return filepath.Join(m.DraftPath(slug), section.String()+SectionExt)
}

// EnsureDirectories creates the .readiness directory structure.
func (m *Manager) EnsureDirectories() error {
	dirs := []string{
		m.RootPath(),
		m.DraftsPath(),
		m.ArchivePath(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Slugify converts a title to a URL-friendly slug.
func Slugify(title string) string {
	slug := strings.ToLower(title)

	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")

	reg := regexp.MustCompile(`[^a-z0-9-]`)
	slug = reg.ReplaceAllString(slug, "")

	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")

	slug = strings.Trim(slug, "-")

	if len(slug) > 50 {
		slug = slug[:50]
		slug = strings.TrimRight(slug, "-")
	}

	return slug
}

// CreateDraft creates a new draft directory with initial metadata.
func (m *Manager) CreateDraft(title, author string) (*Draft, error) {
	if err := m.EnsureDirectories(); err != nil {
		return nil, err
	}

	slug := Slugify(title)
	if slug == "" {
		return nil, fmt.Errorf("title must produce a valid slug")
	}

	draftPath := m.DraftPath(slug)

	if _, err := os.Stat(draftPath); err == nil {
		return nil, fmt.Errorf("draft '%s' already exists", slug)
	}

	if err := os.MkdirAll(draftPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create draft directory: %w", err)
	}

	now := time.Now()
	draft := &Draft{
		Slug:      slug,
		Title:     title,
		Author:    author,
		Status:    StatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.SaveDraftMetadata(draft); err != nil {
		os.RemoveAll(draftPath)
		return nil, err
	}

	return draft, nil
}

// SaveDraftMetadata saves the draft metadata to metadata.json.
func (m *Manager) SaveDraftMetadata(draft *Draft) error {
	metadataPath := filepath.Join(m.DraftPath(draft.Slug), MetadataFile)

	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(metadataPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	return nil
}

// LoadDraft loads a draft from its directory.
func (m *Manager) LoadDraft(slug string) (*Draft, error) {
	metadataPath := filepath.Join(m.DraftPath(slug), MetadataFile)

	data, err := os.ReadFile(metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("draft '%s' not found", slug)
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	m.updateSectionFlags(&draft)

	return &draft, nil
}

// updateSectionFlags checks which section files exist for a draft.
func (m *Manager) updateSectionFlags(draft *Draft) {
	draft.Sections = make(map[Section]bool, len(sectionOrder))
	for _, section := range sectionOrder {
		draft.Sections[section] = fileExists(m.SectionPath(draft.Slug, section))
	}
}

// ListDrafts returns all active drafts.
func (m *Manager) ListDrafts() ([]*Draft, error) {
	entries, err := os.ReadDir(m.DraftsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return []*Draft{}, nil
		}
		return nil, fmt.Errorf("failed to read drafts directory: %w", err)
	}

	var drafts []*Draft
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		draft, err := m.LoadDraft(entry.Name())
		if err != nil {
			// Skip invalid drafts
			continue
		}

		drafts = append(drafts, draft)
	}

	return drafts, nil
}

// UpdateDraftStatus updates the status of a draft.
func (m *Manager) UpdateDraftStatus(slug string, status Status) error {
	draft, err := m.LoadDraft(slug)
	if err != nil {
		return err
	}

	if !draft.Status.CanTransitionTo(status) {
		return fmt.Errorf("cannot transition from %s to %s", draft.Status, status)
	}

	draft.Status = status
	draft.UpdatedAt = time.Now()

	return m.SaveDraftMetadata(draft)
}

// WriteSection writes a section file for a draft.
func (m *Manager) WriteSection(slug string, section Section, content string) error {
	if !section.IsValid() {
		return fmt.Errorf("unknown section %q", section)
	}
	return m.writeFile(m.SectionPath(slug, section), content)
}

// ReadSection reads a section file for a draft.
func (m *Manager) ReadSection(slug string, section Section) (string, error) {
	if !section.IsValid() {
		return "", fmt.Errorf("unknown section %q", section)
	}
	return m.readFile(m.SectionPath(slug, section))
}

// ArchiveDraft moves a draft to the archive.
func (m *Manager) ArchiveDraft(slug string) error {
	draft, err := m.LoadDraft(slug)
	if err != nil {
		return err
	}

	if !draft.Status.CanTransitionTo(StatusArchived) {
		return fmt.Errorf("cannot archive draft with status %s", draft.Status)
	}

	draft.Status = StatusArchived
	draft.UpdatedAt = time.Now()
	if err := m.SaveDraftMetadata(draft); err != nil {
		return err
	}

	srcPath := m.DraftPath(slug)
	dstPath := filepath.Join(m.ArchivePath(), slug)

	if err := os.Rename(srcPath, dstPath); err != nil {
		return fmt.Errorf("failed to archive draft: %w", err)
	}

	return nil
}

func (m *Manager) writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (m *Manager) readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
