package loader

import (
	"encoding/json"
	"fmt"
)

// Decode copies a parsed document tree into out, honoring out's json tags.
// YAML and TOML trees are plain maps and slices, so a JSON round trip gives
// every format the same field mapping.
func Decode(node any, out any) error {
	if node == nil {
		return fmt.Errorf("decode: %w", ErrEmptyInput)
	}
	data, err := json.Marshal(node)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// DecodeFile loads path and decodes it into out.
func DecodeFile(path string, out any) error {
	root, err := LoadFile(path)
	if err != nil {
		return err
	}
	return Decode(root, out)
}
