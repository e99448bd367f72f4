package validation

import "strings"

// AppendUnique appends each value not already in set, keeping set semantics
// and insertion order. Empty values are skipped.
func AppendUnique(set []string, values ...string) []string {
	seen := make(map[string]bool, len(set)+len(values))
	for _, s := range set {
		seen[s] = true
	}

	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		set = append(set, v)
	}

	return set
}

// SplitList splits a separated string into trimmed, non-empty parts.
func SplitList(s, sep string) []string {
	var parts []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
