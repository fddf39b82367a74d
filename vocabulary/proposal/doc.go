// Package proposal provides vocabulary predicates for proposal draft
// entities.
//
// Drafts capture a proposed technology concept as a set of dependent
// sections; the predicates here describe draft metadata and section
// staleness.
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/c360studio/readiness/vocabulary/proposal"
package proposal
