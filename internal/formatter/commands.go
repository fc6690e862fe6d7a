package formatter

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/cmdk/internal/command"
)

// CommandColumns are the headers of the command table.
var CommandColumns = []string{"#", "TITLE", "ACTION", "TARGET"}

// CommandRows flattens one level into table rows. Row numbers are the
// positional keys the palette uses; titles may repeat.
func CommandRows(cmds []command.Command) [][]string {
	rows := make([][]string, 0, len(cmds))
	for i, c := range cmds {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), c.Title, string(c.Action), describeTarget(c)})
	}
	return rows
}

// RenderCommands renders one level as a table.
func RenderCommands(cmds []command.Command, opts ColumnarOptions) string {
	return RenderColumnarTable(CommandColumns, CommandRows(cmds), opts)
}

func describeTarget(c command.Command) string {
	if c.IsGroup() {
		return fmt.Sprintf("%d commands", len(c.Children))
	}
	if c.Target == nil {
		return ""
	}
	return c.Target.URL()
}

// TreeOptions controls tree output.
type TreeOptions struct {
	// Root labels the top of the tree.
	Root string
	// MaxDepth limits nesting (0 = unlimited).
	MaxDepth int
	// ShowTargets appends each page command's location.
	ShowTargets bool
}

// FormatAsTree renders the command hierarchy with groups as branches.
func FormatAsTree(cmds []command.Command, opts TreeOptions) string {
	root := opts.Root
	if root == "" {
		root = "commands"
	}
	tree := treeprint.NewWithRoot(root)
	addCommands(tree, cmds, opts, 0)
	return tree.String()
}

func addCommands(branch treeprint.Tree, cmds []command.Command, opts TreeOptions, depth int) {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		if len(cmds) > 0 {
			branch.AddNode("...")
		}
		return
	}
	for _, c := range cmds {
		if c.IsGroup() {
			addCommands(branch.AddBranch(c.Title), c.Children, opts, depth+1)
			continue
		}
		label := c.Title
		if opts.ShowTargets && c.Target != nil {
			label += " → " + c.Target.URL()
		}
		branch.AddNode(label)
	}
}
