package organizer

import "strings"

// Excluded reports whether path falls under any of the excluded folder
// prefixes. The test is a pure prefix match of "prefix + separator" (no
// globs, no regex); paths are expected forward-slash separated but a
// backslash separator is tolerated. List order is irrelevant.
func Excluded(path string, exclusions []string) bool {
	for _, prefix := range exclusions {
		prefix = strings.TrimRight(strings.TrimSpace(prefix), `/\`)
		if prefix == "" {
			continue
		}
		if strings.HasPrefix(path, prefix+"/") || strings.HasPrefix(path, prefix+`\`) {
			return true
		}
	}
	return false
}
