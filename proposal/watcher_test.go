package proposal

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func watchTestConfig() WatchConfig {
	return WatchConfig{
		Enabled:        true,
		DebounceDelay:  "50ms",
		FileExtensions: []string{".md"},
		ExcludeDirs:    []string{".git", ArchiveDir},
	}
}

func startTestWatcher(t *testing.T, draftsDir string) (*DraftWatcher, context.CancelFunc) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	watcher, err := NewDraftWatcher(watchTestConfig(), draftsDir, logger)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := watcher.Start(ctx); err != nil {
		cancel()
		t.Fatalf("failed to start watcher: %v", err)
	}

	t.Cleanup(func() { watcher.Stop() })

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)

	return watcher, cancel
}

func TestNewDraftWatcher(t *testing.T) {
	watcher, err := NewDraftWatcher(watchTestConfig(), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	if !watcher.extensions[".md"] {
		t.Error("expected .md extension to be watched")
	}
	if !watcher.excludes[".git"] {
		t.Error("expected .git to be excluded")
	}
	if !watcher.excludes[ArchiveDir] {
		t.Error("expected archive dir to be excluded")
	}
}

func TestDraftWatcherSectionCreation(t *testing.T) {
	draftsDir := t.TempDir()
	draftDir := filepath.Join(draftsDir, "my-draft")
	if err := os.MkdirAll(draftDir, 0755); err != nil {
		t.Fatalf("failed to create draft dir: %v", err)
	}

	watcher, cancel := startTestWatcher(t, draftsDir)
	defer cancel()

	sectionFile := filepath.Join(draftDir, "title.md")
	if err := os.WriteFile(sectionFile, []byte("# Graphene Membrane"), 0644); err != nil {
		t.Fatalf("failed to write section file: %v", err)
	}

	select {
	case event := <-watcher.Events():
		if event.Operation != WatchOpCreate {
			t.Errorf("expected create operation, got %s", event.Operation)
		}
		if event.Slug != "my-draft" {
			t.Errorf("expected slug my-draft, got %s", event.Slug)
		}
		if event.Section != SectionTitle {
			t.Errorf("expected section title, got %s", event.Section)
		}
	case <-time.After(1 * time.Second):
		t.Error("timeout waiting for create event")
	}
}

func TestDraftWatcherSectionModification(t *testing.T) {
	draftsDir := t.TempDir()
	draftDir := filepath.Join(draftsDir, "my-draft")
	if err := os.MkdirAll(draftDir, 0755); err != nil {
		t.Fatalf("failed to create draft dir: %v", err)
	}

	sectionFile := filepath.Join(draftDir, "kpi_table.md")
	if err := os.WriteFile(sectionFile, []byte("| KPI | Target |"), 0644); err != nil {
		t.Fatalf("failed to write section file: %v", err)
	}

	watcher, cancel := startTestWatcher(t, draftsDir)
	defer cancel()

	// Seed a hash so the change registers as a modification.
	watcher.SetHash(filepath.Join("my-draft", "kpi_table.md"), "initial-hash")

	if err := os.WriteFile(sectionFile, []byte("| KPI | Target | Actual |"), 0644); err != nil {
		t.Fatalf("failed to modify section file: %v", err)
	}

	select {
	case event := <-watcher.Events():
		if event.Operation != WatchOpModify {
			t.Errorf("expected modify operation, got %s", event.Operation)
		}
		if event.Section != SectionKPITable {
			t.Errorf("expected section kpi_table, got %s", event.Section)
		}
	case <-time.After(1 * time.Second):
		t.Error("timeout waiting for modify event")
	}
}

func TestDraftWatcherSectionDeletion(t *testing.T) {
	draftsDir := t.TempDir()
	draftDir := filepath.Join(draftsDir, "my-draft")
	if err := os.MkdirAll(draftDir, 0755); err != nil {
		t.Fatalf("failed to create draft dir: %v", err)
	}

	sectionFile := filepath.Join(draftDir, "references.md")
	if err := os.WriteFile(sectionFile, []byte("[1] Source"), 0644); err != nil {
		t.Fatalf("failed to write section file: %v", err)
	}

	watcher, cancel := startTestWatcher(t, draftsDir)
	defer cancel()

	watcher.SetHash(filepath.Join("my-draft", "references.md"), "some-hash")

	if err := os.Remove(sectionFile); err != nil {
		t.Fatalf("failed to remove section file: %v", err)
	}

	select {
	case event := <-watcher.Events():
		if event.Operation != WatchOpDelete {
			t.Errorf("expected delete operation, got %s", event.Operation)
		}
		if event.Section != SectionReferences {
			t.Errorf("expected section references, got %s", event.Section)
		}
	case <-time.After(1 * time.Second):
		t.Error("timeout waiting for delete event")
	}
}

func TestDraftWatcherIgnoresNonSectionFiles(t *testing.T) {
	draftsDir := t.TempDir()
	draftDir := filepath.Join(draftsDir, "my-draft")
	if err := os.MkdirAll(draftDir, 0755); err != nil {
		t.Fatalf("failed to create draft dir: %v", err)
	}

	watcher, cancel := startTestWatcher(t, draftsDir)
	defer cancel()

	// Wrong extension and unknown section name: neither should emit.
	if err := os.WriteFile(filepath.Join(draftDir, MetadataFile), []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to write metadata file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(draftDir, "notes.md"), []byte("scratch"), 0644); err != nil {
		t.Fatalf("failed to write notes file: %v", err)
	}

	select {
	case event := <-watcher.Events():
		t.Errorf("unexpected event for non-section file: %+v", event)
	case <-time.After(300 * time.Millisecond):
		// Expected
	}
}

func TestDraftWatcherIgnoresExcludedDirectories(t *testing.T) {
	draftsDir := t.TempDir()
	excludedDir := filepath.Join(draftsDir, ArchiveDir)
	if err := os.MkdirAll(excludedDir, 0755); err != nil {
		t.Fatalf("failed to create excluded dir: %v", err)
	}

	watcher, cancel := startTestWatcher(t, draftsDir)
	defer cancel()

	if err := os.WriteFile(filepath.Join(excludedDir, "title.md"), []byte("# Archived"), 0644); err != nil {
		t.Fatalf("failed to write file in excluded dir: %v", err)
	}

	select {
	case event := <-watcher.Events():
		t.Errorf("unexpected event for file in excluded directory: %+v", event)
	case <-time.After(300 * time.Millisecond):
		// Expected
	}
}

func TestDraftWatcherHashBasedChangeDetection(t *testing.T) {
	draftsDir := t.TempDir()
	draftDir := filepath.Join(draftsDir, "my-draft")
	if err := os.MkdirAll(draftDir, 0755); err != nil {
		t.Fatalf("failed to create draft dir: %v", err)
	}

	content := []byte("# Same Content")
	sectionFile := filepath.Join(draftDir, "title.md")
	if err := os.WriteFile(sectionFile, content, 0644); err != nil {
		t.Fatalf("failed to write section file: %v", err)
	}

	watcher, cancel := startTestWatcher(t, draftsDir)
	defer cancel()

	// Seed the hash of the current content; rewriting the same bytes
	// must not emit an event.
	watcher.SetHash(filepath.Join("my-draft", "title.md"), contentHash(content))

	if err := os.WriteFile(sectionFile, content, 0644); err != nil {
		t.Fatalf("failed to rewrite section file: %v", err)
	}

	select {
	case event := <-watcher.Events():
		t.Errorf("unexpected event when content unchanged: %+v", event)
	case <-time.After(300 * time.Millisecond):
		// Expected
	}
}

func TestDraftWatcherSetGetHash(t *testing.T) {
	watcher, err := NewDraftWatcher(DefaultWatchConfig(), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer watcher.Stop()

	watcher.SetHash("my-draft/title.md", "abc123")

	hash, ok := watcher.GetHash("my-draft/title.md")
	if !ok {
		t.Error("expected hash to exist")
	}
	if hash != "abc123" {
		t.Errorf("expected hash abc123, got %s", hash)
	}

	if _, ok := watcher.GetHash("my-draft/references.md"); ok {
		t.Error("expected hash to not exist for untracked file")
	}
}

func TestWatcherSplitSectionPath(t *testing.T) {
	tests := []struct {
		name        string
		relPath     string
		wantSlug    string
		wantSection Section
		wantOK      bool
	}{
		{
			name:        "valid section file",
			relPath:     "graphene-membrane/kpi_table.md",
			wantSlug:    "graphene-membrane",
			wantSection: SectionKPITable,
			wantOK:      true,
		},
		{
			name:        "another valid section",
			relPath:     "my-draft/executive_summary.md",
			wantSlug:    "my-draft",
			wantSection: SectionExecutiveSummary,
			wantOK:      true,
		},
		{
			name:    "unknown section name",
			relPath: "my-draft/notes.md",
			wantOK:  false,
		},
		{
			name:    "metadata file",
			relPath: "my-draft/metadata.json",
			wantOK:  false,
		},
		{
			name:    "file at drafts root",
			relPath: "title.md",
			wantOK:  false,
		},
		{
			name:    "nested too deep",
			relPath: "a/b/title.md",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, section, ok := splitSectionPath(tt.relPath)
			if ok != tt.wantOK {
				t.Fatalf("splitSectionPath(%q) ok = %v, want %v", tt.relPath, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if slug != tt.wantSlug {
				t.Errorf("slug = %q, want %q", slug, tt.wantSlug)
			}
			if section != tt.wantSection {
				t.Errorf("section = %q, want %q", section, tt.wantSection)
			}
		})
	}
}

func TestGetDebounceDelay(t *testing.T) {
	cfg := DefaultWatchConfig()
	if cfg.GetDebounceDelay() != 500*time.Millisecond {
		t.Errorf("default debounce = %v, want 500ms", cfg.GetDebounceDelay())
	}

	cfg.DebounceDelay = "2s"
	if cfg.GetDebounceDelay() != 2*time.Second {
		t.Errorf("debounce = %v, want 2s", cfg.GetDebounceDelay())
	}

	cfg.DebounceDelay = "not-a-duration"
	if cfg.GetDebounceDelay() != 500*time.Millisecond {
		t.Errorf("invalid debounce should fall back to 500ms, got %v", cfg.GetDebounceDelay())
	}
}

func TestContentHashStable(t *testing.T) {
	a := contentHash([]byte("section content"))
	b := contentHash([]byte("section content"))
	if a != b {
		t.Error("same content should hash identically")
	}

	c := contentHash([]byte("different content"))
	if a == c {
		t.Error("different content should hash differently")
	}
}
