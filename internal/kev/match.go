package kev

import "strings"

// MatchPattern reports whether key matches a minimal glob: "*" matches
// everything, "PRE*" is a prefix match, "*SUF" a suffix match and "PRE*SUF"
// requires both, even when prefix and suffix overlap in key. Anything else,
// including patterns with more than one inner "*", is compared for equality.
func MatchPattern(key, pattern string) bool {
	if pattern == "*" {
		return true
	}
	starts := strings.HasPrefix(pattern, "*")
	ends := strings.HasSuffix(pattern, "*")
	switch {
	case ends && !starts:
		return strings.HasPrefix(key, pattern[:len(pattern)-1])
	case starts && !ends:
		return strings.HasSuffix(key, pattern[1:])
	case !starts && !ends && strings.Count(pattern, "*") == 1:
		pre, suf, _ := strings.Cut(pattern, "*")
		return strings.HasPrefix(key, pre) && strings.HasSuffix(key, suf)
	}
	return key == pattern
}
