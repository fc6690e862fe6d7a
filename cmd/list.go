package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/cmdk/internal/command"
	"github.com/oakwood-commons/cmdk/internal/config"
	"github.com/oakwood-commons/cmdk/internal/formatter"
	"github.com/oakwood-commons/cmdk/internal/ui"
)

// commandDocument wraps a command level so TOML gets a top-level table.
type commandDocument struct {
	Commands []command.Command `json:"commands" yaml:"commands" toml:"commands"`
}

type listOptions struct {
	output  *outputFlag
	tree    bool
	depth   int
	targets bool
}

func (a *app) listCmd() *cobra.Command {
	opts := &listOptions{output: newOutputFlag(formatter.ValidFormats...)}
	c := &cobra.Command{
		Use:   "list",
		Short: "Build the command registry once and print it",
		Long: `Build the command registry from the configured pages and the backend's
projects, pipelines and jobs, then print the root level. Use --tree to show
project groups expanded.`,
		Example: "\n  cmdk list --fixture inventory.yaml\n  cmdk list --tree --targets\n  cmdk list -o json\n",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, cmds, err := a.rootCommands()
			if err != nil {
				return err
			}
			return a.printCommands(cmd.OutOrStdout(), cfg, cmds, opts)
		},
	}
	c.Flags().VarP(opts.output, "output", "o", opts.output.usage())
	c.Flags().BoolVar(&opts.tree, "tree", false, "print the full command hierarchy as a tree")
	c.Flags().IntVar(&opts.depth, "depth", 0, "limit tree depth (0 = unlimited)")
	c.Flags().BoolVar(&opts.targets, "targets", false, "show page locations in tree output")
	return c
}

func (a *app) searchCmd() *cobra.Command {
	opts := &listOptions{output: newOutputFlag(formatter.ValidFormats...)}
	c := &cobra.Command{
		Use:   "search <query>",
		Short: "Print the root commands whose title contains query",
		Long: `Build the command registry once and print the root-level commands whose
title contains the query, ignoring case. Order is preserved.`,
		Example: "\n  cmdk search project\n  cmdk search 'edit job' -o yaml\n",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cmds, err := a.rootCommands()
			if err != nil {
				return err
			}
			matches := command.Filter(cmds, strings.Join(args, " "))
			return a.printCommands(cmd.OutOrStdout(), cfg, matches, opts)
		},
	}
	c.Flags().VarP(opts.output, "output", "o", opts.output.usage())
	c.Flags().BoolVar(&opts.tree, "tree", false, "print matches as a tree with their children")
	c.Flags().IntVar(&opts.depth, "depth", 0, "limit tree depth (0 = unlimited)")
	c.Flags().BoolVar(&opts.targets, "targets", false, "show page locations in tree output")
	return c
}

// rootCommands loads the config and builds the root level once.
func (a *app) rootCommands() (config.Config, []command.Command, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return cfg, nil, err
	}
	store, err := a.buildRegistry(cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, store.Current().Commands, nil
}

func (a *app) printCommands(w io.Writer, cfg config.Config, cmds []command.Command, opts *listOptions) error {
	if opts.depth < 0 {
		return errors.New("--depth must be non-negative")
	}
	f := opts.output.Format()
	if opts.tree {
		if f != formatter.FormatTable {
			return fmt.Errorf("--tree cannot be combined with -o %s", f)
		}
		tree := formatter.FormatAsTree(cmds, formatter.TreeOptions{
			Root:        cfg.App.Name,
			MaxDepth:    opts.depth,
			ShowTargets: opts.targets,
		})
		fmt.Fprintln(w, strings.TrimRight(tree, "\n"))
		fmt.Fprintf(w, "%d commands\n", command.Count(cmds))
		return nil
	}
	if f != formatter.FormatTable {
		out, err := formatter.Encode(commandDocument{Commands: cmds}, f)
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
		return nil
	}

	run := a.runSettings()
	colors := formatter.TableColors{}
	if themeCfg, err := cfg.ActiveTheme(); err == nil {
		th := ui.ThemeFromConfig(themeCfg)
		colors = formatter.TableColors{HeaderFG: th.Accent, Value: th.Text, Separator: th.Muted}
	}
	fmt.Fprint(w, formatter.RenderCommands(cmds, formatter.ColumnarOptions{
		NoColor:    run.NoColor,
		TotalWidth: a.opts.width,
		Colors:     colors,
	}))
	return nil
}
