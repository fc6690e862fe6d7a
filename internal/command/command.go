// Package command defines the palette's command tree and the filter applied
// to the currently visible level of it.
package command

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Action selects what happens when a command is executed.
type Action string

const (
	// OpenPage navigates the host to Target.
	OpenPage Action = "openPage"
	// OpenList replaces the visible level with Children.
	OpenList Action = "openList"
)

// ErrInvalidCommand is returned by Validate when Target/Children do not match Action.
var ErrInvalidCommand = errors.New("invalid command")

// Target is the host location an OpenPage command navigates to.
type Target struct {
	Path  string            `json:"path" yaml:"path" toml:"path"`
	Query map[string]string `json:"query,omitempty" yaml:"query,omitempty" toml:"query,omitempty"`
}

// URL renders the target as a path with an encoded, key-sorted query string.
func (t Target) URL() string {
	if len(t.Query) == 0 {
		return t.Path
	}
	keys := make([]string, 0, len(t.Query))
	for k := range t.Query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(t.Path)
	b.WriteByte('?')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(t.Query[k]))
	}
	return b.String()
}

// Command is a node of the palette tree. Titles are display labels and are not
// guaranteed to be unique (two jobs may share a name).
type Command struct {
	Title    string    `json:"title" yaml:"title" toml:"title"`
	Action   Action    `json:"action" yaml:"action" toml:"action"`
	Target   *Target   `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
	Children []Command `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Page builds an OpenPage command.
func Page(title, path string, query map[string]string) Command {
	if query == nil {
		query = map[string]string{}
	}
	return Command{
		Title:  title,
		Action: OpenPage,
		Target: &Target{Path: path, Query: query},
	}
}

// List builds an OpenList command with the given children.
func List(title string, children ...Command) Command {
	if children == nil {
		children = []Command{}
	}
	return Command{
		Title:    title,
		Action:   OpenList,
		Children: children,
	}
}

// IsGroup reports whether executing the command drills into its children.
func (c Command) IsGroup() bool {
	return c.Action == OpenList
}

// Validate checks that exactly one of Target/Children is populated and that
// it matches Action. Children are validated recursively.
func (c Command) Validate() error {
	switch c.Action {
	case OpenPage:
		if c.Target == nil {
			return fmt.Errorf("%w: %q: openPage without target", ErrInvalidCommand, c.Title)
		}
		if c.Children != nil {
			return fmt.Errorf("%w: %q: openPage with children", ErrInvalidCommand, c.Title)
		}
	case OpenList:
		if c.Children == nil {
			return fmt.Errorf("%w: %q: openList without children", ErrInvalidCommand, c.Title)
		}
		if c.Target != nil {
			return fmt.Errorf("%w: %q: openList with target", ErrInvalidCommand, c.Title)
		}
		for i := range c.Children {
			if err := c.Children[i].Validate(); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %q: unknown action %q", ErrInvalidCommand, c.Title, c.Action)
	}
	return nil
}

// Count returns the number of nodes in the given levels, children included.
func Count(level []Command) int {
	n := 0
	for i := range level {
		n++
		n += Count(level[i].Children)
	}
	return n
}
