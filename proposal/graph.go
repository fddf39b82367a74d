package proposal

import "fmt"

// dependencies maps each section to the sections that must be
// refreshed when it changes. The graph is intentionally cyclic (e.g.
// performance_targets and technical_details refresh each other), so
// cascades are bounded to two hops rather than walked transitively.
var dependencies = map[Section][]Section{
	SectionProblemStatement: {
		SectionConceptOverview,
		SectionExecutiveSummary,
		SectionTitle,
	},
	SectionConceptOverview: {
		SectionTechnicalDetails,
		SectionPerformanceTargets,
		SectionManufacturingProcess,
		SectionSustainability,
		SectionApplications,
		SectionExecutiveSummary,
	},
	SectionTechnicalDetails: {
		SectionPerformanceTargets,
		SectionManufacturingProcess,
		SectionCostFeasibility,
		SectionRisksMitigations,
		SectionSustainability,
		SectionValidationPlan,
		SectionWorkPlan,
		SectionKPITable,
		SectionExecutiveSummary,
	},
	SectionManufacturingProcess: {
		SectionCostFeasibility,
		SectionRisksMitigations,
		SectionWorkPlan,
		SectionValidationPlan,
		SectionKPITable,
		SectionExecutiveSummary,
	},
	SectionPerformanceTargets: {
		SectionKPITable,
		SectionValidationPlan,
		SectionExecutiveSummary,
		SectionTechnicalDetails,
		SectionConceptOverview,
		SectionManufacturingProcess,
	},
	SectionCostFeasibility: {
		SectionWorkPlan,
		SectionKPITable,
		SectionExecutiveSummary,
	},
	SectionRisksMitigations: {
		SectionWorkPlan,
		SectionExecutiveSummary,
	},
	SectionSustainability: {
		SectionExecutiveSummary,
		SectionApplications,
	},
	SectionApplications: {
		SectionExecutiveSummary,
		SectionWorkPlan,
	},
	SectionWorkPlan: {
		SectionValidationPlan,
		SectionKPITable,
		SectionExecutiveSummary,
	},
	SectionValidationPlan: {
		SectionKPITable,
		SectionExecutiveSummary,
	},
	SectionKPITable:    {SectionExecutiveSummary},
	SectionIPLandscape: {SectionExecutiveSummary},
	SectionReferences:  {SectionExecutiveSummary},
}

// Dependents returns the sections directly refreshed when s changes.
// Sections with no outgoing edges (title, executive_summary,
// experimental_design) return nil.
func Dependents(s Section) []Section {
	deps := dependencies[s]
	if len(deps) == 0 {
		return nil
	}
	out := make([]Section, len(deps))
	copy(out, deps)
	return out
}

// Cascade computes the refresh set for an edited section: the section
// itself, its direct dependents, and the dependents of those (a
// two-hop ripple). The result is in canonical display order.
func Cascade(edited Section) ([]Section, error) {
	if !edited.IsValid() {
		return nil, fmt.Errorf("unknown section %q", edited)
	}

	set := map[Section]bool{edited: true}
	for _, dep := range dependencies[edited] {
		set[dep] = true
	}

	// Second-order ripple over the first-hop set.
	firstHop := make([]Section, 0, len(set))
	for s := range set {
		firstHop = append(firstHop, s)
	}
	for _, parent := range firstHop {
		for _, dep := range dependencies[parent] {
			set[dep] = true
		}
	}

	var ordered []Section
	for _, s := range sectionOrder {
		if set[s] {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}
