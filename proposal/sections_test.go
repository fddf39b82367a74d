package proposal

import "testing"

func TestAllSections(t *testing.T) {
	sections := AllSections()

	if len(sections) != 17 {
		t.Fatalf("expected 17 sections, got %d", len(sections))
	}

	if sections[0] != SectionTitle {
		t.Errorf("expected title first, got %s", sections[0])
	}
	if sections[len(sections)-1] != SectionReferences {
		t.Errorf("expected references last, got %s", sections[len(sections)-1])
	}

	seen := make(map[Section]bool)
	for _, s := range sections {
		if seen[s] {
			t.Errorf("duplicate section %s", s)
		}
		seen[s] = true
		if !s.IsValid() {
			t.Errorf("catalog section %s fails IsValid", s)
		}
	}
}

func TestSectionIsValid(t *testing.T) {
	if !Section("kpi_table").IsValid() {
		t.Error("kpi_table should be valid")
	}
	for _, s := range []Section{"", "budget", "KPI_TABLE", "kpi-table"} {
		if s.IsValid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}
