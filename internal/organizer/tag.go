// Package organizer implements the rule matching and relocation engine:
// deciding which vault files move where, resolving destination conflicts,
// and executing the moves safely.
package organizer

import "strings"

// NormalizeTag canonicalizes a tag for comparison: lower-cased, with at
// most one leading '#' stripped. Total over all strings; tag equality
// everywhere in the system is equality of normalized forms. Hierarchical
// tags (project/work) are compared as exact strings, never by segment.
func NormalizeTag(raw string) string {
	return strings.TrimPrefix(strings.ToLower(raw), "#")
}
