package adapter

import "strings"

// joinLocation builds a human-readable location string from address parts,
// skipping empty components so missing segments leave no joiner artifacts.
func joinLocation(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

// firstNonEmpty returns the first non-empty string from the candidates.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
