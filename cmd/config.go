package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/cmdk/internal/formatter"
)

func (a *app) configCmd() *cobra.Command {
	output := newOutputFlag(formatter.FormatYAML, formatter.FormatJSON, formatter.FormatTOML)
	c := &cobra.Command{
		Use:   "config",
		Short: "Show the merged cmdk configuration",
		Long: `Print the embedded defaults merged with the user config file and the
--url/--fixture overrides. Redirect the YAML output to
$XDG_CONFIG_HOME/cmdk/config.yaml to start a config of your own.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			out, err := formatter.Encode(cfg, output.Format())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	c.Flags().VarP(output, "output", "o", output.usage())
	c.AddCommand(a.themesCmd())
	return c
}

func (a *app) themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "themes",
		Aliases: []string{"theme"},
		Short:   "List available themes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			active := strings.TrimSpace(cfg.Theme.Default)
			for _, name := range cfg.ThemeNames() {
				marker := "  "
				if name == active {
					marker = "* "
				}
				fmt.Fprintln(cmd.OutOrStdout(), marker+name)
			}
			return nil
		},
	}
}
