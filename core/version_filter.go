package core

import "strings"

// VersionFilter matches version strings against a dotted pattern such as
// "3.20.2.+". Segments are compared literally until a dynamic segment (one
// that is "+" or ends in "+") is reached, after which anything matches.
type VersionFilter struct {
	pattern  string
	segments []string
}

func NewVersionFilter(pattern string) VersionFilter {
	filter := VersionFilter{pattern: pattern}
	if strings.TrimSpace(pattern) != "" {
		filter.segments = strings.Split(pattern, ".")
	}
	return filter
}

func (this VersionFilter) Pattern() string { return this.pattern }

func (this VersionFilter) Match(candidate string) bool {
	if len(this.segments) == 0 {
		return true
	}
	numbers := strings.Split(candidate, ".")
	for i, segment := range this.segments {
		if isDynamic(segment) {
			return true
		}
		if i >= len(numbers) {
			return false // the pattern is longer than the candidate
		}
		if numbers[i] != segment {
			return false
		}
	}
	return true
}

func MatchVersion(pattern, candidate string) bool {
	return NewVersionFilter(pattern).Match(candidate)
}

func isDynamic(segment string) bool {
	return strings.HasSuffix(strings.TrimSpace(segment), "+")
}
