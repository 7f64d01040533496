package organizer

import (
	"strings"

	"github.com/starford/raido/internal/models"
)

// Match reports whether file satisfies rule.
//
// Evaluation order matters: a configured tag criterion is tested first and a
// hit satisfies the rule immediately, even when file_type or name_pattern
// would have failed. A tag miss does not fail the rule; the remaining
// criteria are then combined with AND semantics. A rule with no active
// criterion never matches.
func Match(file models.FileRecord, rule models.Rule) bool {
	if active(rule.Tag) && file.TagBearing() && file.HasTag(NormalizeTag(*rule.Tag)) {
		return true
	}

	matched := false
	if active(rule.FileType) {
		if !strings.EqualFold(file.Ext, *rule.FileType) {
			return false
		}
		matched = true
	}
	if active(rule.NamePattern) {
		if !strings.Contains(strings.ToLower(file.Base), strings.ToLower(*rule.NamePattern)) {
			return false
		}
		matched = true
	}
	return matched
}

func active(criterion *string) bool {
	return criterion != nil && *criterion != ""
}
