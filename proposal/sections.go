// Package proposal manages proposal drafts: the canonical section
// catalog, the dependency cascade between sections, draft storage under
// .readiness/, and a filesystem watcher for section changes.
package proposal

// Section identifies one section of a proposal draft.
type Section string

// Canonical proposal sections in display order.
const (
	SectionTitle                Section = "title"
	SectionExecutiveSummary     Section = "executive_summary"
	SectionProblemStatement     Section = "problem_statement"
	SectionConceptOverview      Section = "concept_overview"
	SectionTechnicalDetails     Section = "technical_details"
	SectionPerformanceTargets   Section = "performance_targets"
	SectionManufacturingProcess Section = "manufacturing_process"
	SectionCostFeasibility      Section = "cost_feasibility"
	SectionRisksMitigations     Section = "risks_mitigations"
	SectionSustainability       Section = "sustainability"
	SectionApplications         Section = "applications"
	SectionExperimentalDesign   Section = "experimental_design"
	SectionValidationPlan       Section = "validation_plan"
	SectionWorkPlan             Section = "work_plan"
	SectionKPITable             Section = "kpi_table"
	SectionIPLandscape          Section = "ip_landscape"
	SectionReferences           Section = "references"
)

// sectionOrder is the canonical display order, also used to make
// cascade output deterministic.
var sectionOrder = []Section{
	SectionTitle,
	SectionExecutiveSummary,
	SectionProblemStatement,
	SectionConceptOverview,
	SectionTechnicalDetails,
	SectionPerformanceTargets,
	SectionManufacturingProcess,
	SectionCostFeasibility,
	SectionRisksMitigations,
	SectionSustainability,
	SectionApplications,
	SectionExperimentalDesign,
	SectionValidationPlan,
	SectionWorkPlan,
	SectionKPITable,
	SectionIPLandscape,
	SectionReferences,
}

// String returns the string form of the section.
func (s Section) String() string {
	return string(s)
}

// IsValid returns true if the section is part of the catalog.
func (s Section) IsValid() bool {
	for _, known := range sectionOrder {
		if s == known {
			return true
		}
	}
	return false
}

// AllSections returns the catalog in display order. The returned slice
// is freshly allocated on each call.
func AllSections() []Section {
	out := make([]Section, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}
