package proposal

import (
	"testing"
)

func TestDependents(t *testing.T) {
	t.Run("returns direct dependents", func(t *testing.T) {
		deps := Dependents(SectionKPITable)
		if len(deps) != 1 || deps[0] != SectionExecutiveSummary {
			t.Errorf("Dependents(kpi_table) = %v, want [executive_summary]", deps)
		}
	})

	t.Run("sink sections have none", func(t *testing.T) {
		for _, s := range []Section{SectionTitle, SectionExecutiveSummary, SectionExperimentalDesign} {
			if deps := Dependents(s); deps != nil {
				t.Errorf("Dependents(%s) = %v, want nil", s, deps)
			}
		}
	})

	t.Run("callers cannot mutate the graph", func(t *testing.T) {
		deps := Dependents(SectionKPITable)
		deps[0] = SectionTitle
		fresh := Dependents(SectionKPITable)
		if fresh[0] != SectionExecutiveSummary {
			t.Error("mutation of a returned slice leaked into the graph")
		}
	})
}

func TestGraphIsWellFormed(t *testing.T) {
	for section, deps := range dependencies {
		if !section.IsValid() {
			t.Errorf("graph key %q is not a catalog section", section)
		}
		for _, dep := range deps {
			if !dep.IsValid() {
				t.Errorf("dependent %q of %q is not a catalog section", dep, section)
			}
			if dep == section {
				t.Errorf("section %q depends on itself", section)
			}
		}
	}
}

func TestCascade(t *testing.T) {
	t.Run("rejects unknown sections", func(t *testing.T) {
		if _, err := Cascade(Section("budget")); err == nil {
			t.Error("expected error for unknown section")
		}
	})

	t.Run("always includes the edited section", func(t *testing.T) {
		for _, s := range AllSections() {
			got, err := Cascade(s)
			if err != nil {
				t.Fatalf("Cascade(%s): unexpected error: %v", s, err)
			}
			if !contains(got, s) {
				t.Errorf("Cascade(%s) missing the edited section", s)
			}
		}
	})

	t.Run("sink section cascades to itself only", func(t *testing.T) {
		got, err := Cascade(SectionExecutiveSummary)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != SectionExecutiveSummary {
			t.Errorf("Cascade(executive_summary) = %v, want itself only", got)
		}
	})

	t.Run("kpi_table ripples one then no further", func(t *testing.T) {
		got, err := Cascade(SectionKPITable)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Section{SectionExecutiveSummary, SectionKPITable}
		assertSections(t, got, want)
	})

	t.Run("cost_feasibility includes second-order ripple", func(t *testing.T) {
		// First hop: work_plan, kpi_table, executive_summary.
		// Second hop adds validation_plan (via work_plan).
		got, err := Cascade(SectionCostFeasibility)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Section{
			SectionExecutiveSummary,
			SectionCostFeasibility,
			SectionValidationPlan,
			SectionWorkPlan,
			SectionKPITable,
		}
		assertSections(t, got, want)
	})

	t.Run("output follows catalog order", func(t *testing.T) {
		got, err := Cascade(SectionTechnicalDetails)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		order := make(map[Section]int, len(sectionOrder))
		for i, s := range sectionOrder {
			order[s] = i
		}
		for i := 1; i < len(got); i++ {
			if order[got[i-1]] >= order[got[i]] {
				t.Errorf("cascade out of catalog order: %v", got)
				break
			}
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		first, _ := Cascade(SectionTechnicalDetails)
		second, _ := Cascade(SectionTechnicalDetails)
		assertSections(t, first, second)
	})
}

func assertSections(t *testing.T, got, want []Section) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	wantSet := make(map[Section]bool, len(want))
	for _, s := range want {
		wantSet[s] = true
	}
	for _, s := range got {
		if !wantSet[s] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func contains(sections []Section, target Section) bool {
	for _, s := range sections {
		if s == target {
			return true
		}
	}
	return false
}
