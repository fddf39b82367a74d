package proposal

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// eventChannelBuffer is the size of the watch event channel.
	eventChannelBuffer = 500
)

// WatchConfig configures draft file watching.
type WatchConfig struct {
	// Enabled controls whether file watching is active.
	Enabled bool `yaml:"enabled"`

	// DebounceDelay is how long to wait for more changes before processing.
	DebounceDelay string `yaml:"debounce_delay"`

	// FileExtensions lists file extensions to watch.
	FileExtensions []string `yaml:"file_extensions"`

	// ExcludeDirs lists directory names to skip.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Patterns lists extra drafts directories to watch, as glob
	// patterns resolved with ResolvePaths. Empty means watch only the
	// workspace drafts directory.
	Patterns []string `yaml:"patterns"`
}

// DefaultWatchConfig returns default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Enabled:        false,
		DebounceDelay:  "500ms",
		FileExtensions: []string{SectionExt},
		ExcludeDirs:    []string{".git", ArchiveDir},
	}
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// WatchOperation indicates the type of file operation.
type WatchOperation string

// WatchOpCreate, WatchOpModify, and WatchOpDelete enumerate the watch
// operation types.
const (
	WatchOpCreate WatchOperation = "create"
	WatchOpModify WatchOperation = "modify"
	WatchOpDelete WatchOperation = "delete"
)

// SectionEvent is emitted when a draft section file changes. Callers
// typically feed Section into Cascade to find what needs refreshing.
type SectionEvent struct {
	// Slug is the draft the changed file belongs to.
	Slug string

	// Section is the changed section, derived from the file name.
	Section Section

	// Operation is the type of change.
	Operation WatchOperation

	// AbsPath is the absolute file path.
	AbsPath string
}

// DraftWatcher watches the drafts directory and emits section change
// events after debouncing.
type DraftWatcher struct {
	config    WatchConfig
	draftsDir string
	watcher   *fsnotify.Watcher
	logger    *slog.Logger

	extensions map[string]bool
	excludes   map[string]bool

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Hash-based change detection
	hashMu sync.RWMutex
	hashes map[string]string

	// Output channel
	events chan SectionEvent
}

// NewDraftWatcher creates a watcher for the given drafts directory.
func NewDraftWatcher(config WatchConfig, draftsDir string, logger *slog.Logger) (*DraftWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	extensions := make(map[string]bool)
	if len(config.FileExtensions) == 0 {
		extensions[SectionExt] = true
	} else {
		for _, ext := range config.FileExtensions {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			extensions[ext] = true
		}
	}

	excludes := make(map[string]bool)
	if len(config.ExcludeDirs) == 0 {
		excludes[".git"] = true
		excludes[ArchiveDir] = true
	} else {
		for _, dir := range config.ExcludeDirs {
			excludes[dir] = true
		}
	}

	return &DraftWatcher{
		config:     config,
		draftsDir:  draftsDir,
		watcher:    fsw,
		logger:     logger,
		extensions: extensions,
		excludes:   excludes,
		pending:    make(map[string]fsnotify.Op),
		hashes:     make(map[string]string),
		events:     make(chan SectionEvent, eventChannelBuffer),
	}, nil
}

// Events returns the channel of section change events.
func (w *DraftWatcher) Events() <-chan SectionEvent {
	return w.events
}

// Start begins watching the drafts directory for changes.
func (w *DraftWatcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.draftsDir, 0755); err != nil {
		return err
	}

	if err := w.addWatchesRecursive(w.draftsDir); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Draft watcher started",
		"drafts_dir", w.draftsDir,
		"debounce", w.config.GetDebounceDelay(),
		"extensions", w.config.FileExtensions)

	return nil
}

// Stop stops the watcher.
// The events channel is closed by processEvents when it exits.
func (w *DraftWatcher) Stop() error {
	return w.watcher.Close()
}

// SetHash records the content hash for a draft-relative path.
func (w *DraftWatcher) SetHash(relPath, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[relPath] = hash
}

// GetHash returns the recorded content hash for a draft-relative path.
func (w *DraftWatcher) GetHash(relPath string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[relPath]
	return hash, ok
}

// addWatchesRecursive adds watches to all directories.
func (w *DraftWatcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if w.excludes[base] {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", path,
				"error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}

		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *DraftWatcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.config.GetDebounceDelay())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent processes a single fsnotify event.
func (w *DraftWatcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	ext := strings.ToLower(filepath.Ext(path))
	if !w.extensions[ext] {
		// Handle draft directory creation (for new watches).
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	relPath, _ := filepath.Rel(w.draftsDir, path)
	for excludeDir := range w.excludes {
		if strings.Contains(relPath, excludeDir+string(filepath.Separator)) {
			return
		}
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Section change detected",
		"path", relPath,
		"op", event.Op.String())
}

// handleNewDirectory adds a watch to a newly created draft directory.
func (w *DraftWatcher) handleNewDirectory(path string) {
	base := filepath.Base(path)
	if w.excludes[base] {
		return
	}

	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory",
			"path", path,
			"error", err)
	} else {
		w.logger.Debug("Added watch for new directory", "path", path)
	}
}

// flushPending processes accumulated changes.
func (w *DraftWatcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}

	toProcess := make(map[string]fsnotify.Op)
	for k, v := range w.pending {
		toProcess[k] = v
	}
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		relPath, _ := filepath.Rel(w.draftsDir, path)
		slug, section, ok := splitSectionPath(relPath)
		if !ok {
			w.logger.Debug("Ignoring non-section file", "path", relPath)
			continue
		}

		event := SectionEvent{
			Slug:    slug,
			Section: section,
			AbsPath: path,
		}

		if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
			event.Operation = WatchOpDelete

			w.hashMu.Lock()
			delete(w.hashes, relPath)
			w.hashMu.Unlock()

			w.sendEvent(event)
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			event.Operation = WatchOpDelete
			w.sendEvent(event)
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("Failed to read file for hash check",
				"path", relPath,
				"error", err)
			continue
		}

		newHash := contentHash(content)

		w.hashMu.RLock()
		oldHash, hadHash := w.hashes[relPath]
		w.hashMu.RUnlock()
		if hadHash && oldHash == newHash {
			// Content unchanged, skip
			continue
		}

		w.hashMu.Lock()
		w.hashes[relPath] = newHash
		w.hashMu.Unlock()

		if op.Has(fsnotify.Create) || !hadHash {
			event.Operation = WatchOpCreate
		} else {
			event.Operation = WatchOpModify
		}

		w.sendEvent(event)
	}
}

// sendEvent sends an event to the output channel without blocking.
func (w *DraftWatcher) sendEvent(event SectionEvent) {
	select {
	case w.events <- event:
		sectionEventsTotal.WithLabelValues(string(event.Operation)).Inc()
		w.logger.Debug("Sent section event",
			"slug", event.Slug,
			"section", event.Section,
			"op", event.Operation)
	default:
		sectionEventsDropped.Inc()
		w.logger.Warn("Event channel full, dropping event",
			"slug", event.Slug,
			"section", event.Section)
	}
}

// splitSectionPath maps "<slug>/<section>.md" to its slug and section.
// Files outside that shape, or with unknown section names, are ignored.
func splitSectionPath(relPath string) (string, Section, bool) {
	dir, file := filepath.Split(filepath.ToSlash(relPath))
	slug := strings.Trim(dir, "/")
	if slug == "" || strings.Contains(slug, "/") {
		return "", "", false
	}

	name := strings.TrimSuffix(file, filepath.Ext(file))
	section := Section(name)
	if !section.IsValid() {
		return "", "", false
	}

	return slug, section, true
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
