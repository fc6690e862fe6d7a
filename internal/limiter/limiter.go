// Package limiter trims source records by limit, offset, or tail.
package limiter

import "fmt"

// Config holds the record-limiting parameters.
type Config struct {
	Limit  int `yaml:"limit" json:"limit" toml:"limit"`    // Keep only this many records (0 = unlimited)
	Offset int `yaml:"offset" json:"offset" toml:"offset"` // Skip the first N records (0 = no skip)
	Tail   int `yaml:"tail" json:"tail" toml:"tail"`       // Keep only the last N records (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting combinations and returns an error if invalid.
// Rules:
// - Limit and Tail are mutually exclusive
// - If Tail is set, Offset is ignored
// - All numeric values must be non-negative
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("limit and tail are mutually exclusive")
	}
	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Apply returns the window of items selected by c. The returned slice shares
// the backing array of items.
func Apply[T any](c Config, items []T) []T {
	if !c.IsActive() {
		return items
	}
	start, end := c.bounds(len(items))
	return items[start:end]
}

func (c Config) bounds(length int) (int, int) {
	if c.Tail > 0 {
		start := length - c.Tail
		if start < 0 {
			start = 0
		}
		return start, length
	}

	start := c.Offset
	if start > length {
		start = length
	}
	end := length
	if c.Limit > 0 {
		end = start + c.Limit
		if end > length {
			end = length
		}
	}
	if start > end {
		start = end
	}
	return start, end
}
