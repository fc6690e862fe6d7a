package command

import "strings"

// Filter returns the commands of level whose title contains query,
// case-insensitively, in their original order. Only the level itself is
// searched; children are not. An empty query returns level unchanged.
func Filter(level []Command, query string) []Command {
	if query == "" {
		return level
	}
	q := strings.ToLower(query)
	filtered := make([]Command, 0, len(level))
	for _, c := range level {
		if strings.Contains(strings.ToLower(c.Title), q) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
