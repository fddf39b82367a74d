// Package assessment provides vocabulary predicates for readiness
// assessment entities.
//
// Assessments record the TRL assigned to a topic, the justification for
// that level, and the evidence citations supporting it.
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/c360studio/readiness/vocabulary/assessment"
package assessment
