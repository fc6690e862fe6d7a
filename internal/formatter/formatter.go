// Package formatter renders command lists and configuration for the
// non-interactive CLI: aligned tables, trees and structured encodings.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a non-interactive output format.
type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatTOML  Format = "toml"
)

// ValidFormats lists the accepted output formats.
var ValidFormats = []Format{FormatTable, FormatYAML, FormatJSON, FormatTOML}

// ParseFormat validates s against allowed. An empty s yields allowed[0].
func ParseFormat(s string, allowed ...Format) (Format, error) {
	if len(allowed) == 0 {
		allowed = ValidFormats
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return allowed[0], nil
	}
	names := make([]string, 0, len(allowed))
	for _, f := range allowed {
		if string(f) == s {
			return f, nil
		}
		names = append(names, string(f))
	}
	return "", fmt.Errorf("invalid output format %q (valid: %s)", s, strings.Join(names, "|"))
}

// Encode renders v as YAML, JSON or TOML. Table output is not an encoding
// and is rejected.
func Encode(v any, f Format) (string, error) {
	switch f {
	case FormatYAML:
		return FormatYAMLIndent(v, 2)
	case FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(out) + "\n", nil
	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(v); err != nil {
			return "", fmt.Errorf("encode toml: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("format %q is not a structured encoding", f)
	}
}

// FormatYAMLIndent renders v to YAML with the given indent. Multi-line
// strings are emitted as literal blocks.
func FormatYAMLIndent(v any, indent int) (string, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	applyLiteralStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if indent <= 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(&node); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}

func applyLiteralStyle(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && strings.Contains(n.Value, "\n") {
		n.Style = yaml.LiteralStyle
	}
	for _, c := range n.Content {
		applyLiteralStyle(c)
	}
}
