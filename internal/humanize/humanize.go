// Package humanize formats lists of names for user-facing messages.
package humanize

import "strings"

// Join renders items as a human-readable enumeration: "a", "a and b",
// "a, b and c". An empty slice renders as the empty string.
func Join(items []string) string {
	return joinWith(items, "and")
}

// JoinOr is Join with "or" as the final conjunction.
func JoinOr(items []string) string {
	return joinWith(items, "or")
}

func joinWith(items []string, conj string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " " + conj + " " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + " " + conj + " " + items[len(items)-1]
}

// JoinQuoted wraps each item in single quotes before joining.
func JoinQuoted(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return Join(quoted)
}
