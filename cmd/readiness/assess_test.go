package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/readiness/assessment"
)

func writeEvidenceFile(t *testing.T, evidence []assessment.Evidence) string {
	t.Helper()

	data, err := json.Marshal(evidence)
	if err != nil {
		t.Fatalf("failed to marshal evidence: %v", err)
	}

	path := filepath.Join(t.TempDir(), "evidence.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write evidence file: %v", err)
	}
	return path
}

func TestLoadEvidenceFileNormalizes(t *testing.T) {
	var evidence []assessment.Evidence
	for i := 0; i < assessment.MaxEvidenceResults+3; i++ {
		evidence = append(evidence, assessment.Evidence{Title: "item"})
	}
	evidence[0].Snippet = `a "quoted" \ snippet`
	evidence[1].Snippet = strings.Repeat("x", assessment.MaxSnippetLen+50)

	loaded, err := loadEvidenceFile(writeEvidenceFile(t, evidence))
	if err != nil {
		t.Fatalf("loadEvidenceFile() error = %v", err)
	}

	if len(loaded) != assessment.MaxEvidenceResults {
		t.Errorf("expected %d evidence items, got %d", assessment.MaxEvidenceResults, len(loaded))
	}
	if loaded[0].Snippet != `a \"quoted\" \\ snippet` {
		t.Errorf("expected escaped snippet, got %q", loaded[0].Snippet)
	}
	if got := len(loaded[1].Snippet); got != assessment.MaxSnippetLen {
		t.Errorf("expected snippet truncated to %d, got %d", assessment.MaxSnippetLen, got)
	}
}
