package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/cmdk/internal/command"
	"github.com/oakwood-commons/cmdk/internal/config"
	"github.com/oakwood-commons/cmdk/internal/registry"
	"github.com/oakwood-commons/cmdk/internal/ui"
	"github.com/oakwood-commons/cmdk/pkg/logger"
	"github.com/oakwood-commons/cmdk/pkg/settings"
)

// rootOptions holds the values bound to the root command's flags.
type rootOptions struct {
	configFile string
	backendURL string
	fixture    string
	logFile    string
	keyMode    string
	debug      bool
	noColor    bool
	printURL   bool
	snapshot   bool
	startKeys  []string
	width      int
	height     int
}

// app carries state shared by the root command and its subcommands for one
// invocation.
type app struct {
	opts rootOptions
	ctx  context.Context
	sink io.Closer
}

// Execute runs the cmdk command tree against os.Args.
func Execute() error {
	a := &app{}
	defer a.close()
	return a.rootCmd().Execute()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   settings.CliBinaryName,
		Short: "Keyboard-driven command palette for an Orchest instance",
		Long: `cmdk opens a command palette over an Orchest instance. Press the palette
hotkey (ctrl+k by default), type to filter the commands, and press enter to
navigate. Commands are built from the configured pages plus the projects,
pipelines and jobs reported by the backend, and are refreshed every time the
palette closes.`,
		Example: "\n  cmdk --url http://localhost:8000\n  cmdk --fixture inventory.yaml --print-url\n  cmdk --fixture inventory.yaml --snapshot --press '<C-k>proj'\n  cmdk list -o yaml --fixture inventory.yaml\n",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.preRun,
		RunE:              a.runPalette,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.configFile, "config-file", "", "path to a YAML or TOML config file (default $XDG_CONFIG_HOME/cmdk/config.yaml)")
	pf.StringVar(&a.opts.backendURL, "url", "", "Orchest base URL (overrides backend.url)")
	pf.StringVar(&a.opts.fixture, "fixture", "", "read projects, pipelines and jobs from a JSON/YAML/TOML inventory file instead of the backend")
	pf.StringVar(&a.opts.logFile, "log-file", "", "append JSON logs to this file (logs are discarded when unset)")
	pf.BoolVar(&a.opts.debug, "debug", false, "log at debug level")
	pf.BoolVar(&a.opts.noColor, "no-color", false, "disable color output")
	pf.IntVar(&a.opts.width, "width", 0, "width in columns (affects table output and TUI layout)")

	f := root.Flags()
	f.StringVar(&a.opts.keyMode, "keymap", "", "keybinding mode: default, vim or emacs (default from config)")
	f.BoolVar(&a.opts.printURL, "print-url", false, "print the URL of the last navigation on exit")
	f.BoolVar(&a.opts.snapshot, "snapshot", false, "render a single TUI frame and exit (dev/test); honors --width/--height")
	f.StringArrayVar(&a.opts.startKeys, "press", nil, "Simulate keys on startup. Use <Key> for special keys (e.g. <C-k>, <CR>, <Esc>, <Down>). Literal text types normally. Example: --press \"<C-k>proj<CR>\"")
	f.IntVar(&a.opts.height, "height", 0, "height in rows (affects TUI layout)")

	root.Version = cliVersionString()
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(a.versionCmd(), a.configCmd(), a.listCmd(), a.searchCmd())
	return root
}

// preRun sets up the run settings and the structured logger, both carried
// to the subcommands through a.ctx.
func (a *app) preRun(cmd *cobra.Command, _ []string) error {
	run := settings.NewCliParams()
	if a.opts.debug {
		run.MinLogLevel = -1
	}
	run.LogFile = a.opts.logFile
	run.ConfigFile = config.ResolvePath(a.opts.configFile)
	run.NoColor = a.opts.noColor || os.Getenv("NO_COLOR") != ""
	run.PrintURL = a.opts.printURL

	sink, err := logger.OpenSink(run.LogFile)
	if err != nil {
		return err
	}
	var w io.Writer
	if sink != nil {
		a.sink = sink
		w = sink
	}
	lgr := logger.Get(run.MinLogLevel, w)
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)
	a.ctx = settings.IntoContext(ctx, run)
	return nil
}

func (a *app) close() {
	if a.sink != nil {
		_ = a.sink.Close()
		a.sink = nil
	}
}

func (a *app) context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

func (a *app) runSettings() *settings.Run {
	if run, ok := settings.FromContext(a.context()); ok && run != nil {
		return run
	}
	run := settings.NewCliParams()
	run.ConfigFile = config.ResolvePath(a.opts.configFile)
	return run
}

// loadConfig loads the merged config and applies the flag overrides. A --url
// override drops a fixture coming from the config file; --fixture wins over
// both.
func (a *app) loadConfig() (config.Config, error) {
	run := a.runSettings()
	cfg, err := config.Load(run.ConfigFile)
	if err != nil {
		return cfg, err
	}
	overridden := false
	if u := strings.TrimSpace(a.opts.backendURL); u != "" {
		cfg.Backend.URL = u
		cfg.Backend.Fixture = ""
		overridden = true
	}
	if fx := strings.TrimSpace(a.opts.fixture); fx != "" {
		cfg.Backend.Fixture = fx
		overridden = true
	}
	if km := strings.TrimSpace(a.opts.keyMode); km != "" {
		cfg.Palette.KeyMode = km
		overridden = true
	}
	if overridden {
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid flags: %w", err)
		}
	}
	return cfg, nil
}

// buildRegistry builds the command registry once and returns the store
// holding it.
func (a *app) buildRegistry(cfg config.Config) (*registry.Store, error) {
	agg, err := cfg.Aggregator()
	if err != nil {
		return nil, err
	}
	mode, err := cfg.Consistency()
	if err != nil {
		return nil, err
	}
	store := registry.NewStore(mode, agg.Seed())
	store.Refresh(a.context(), agg)
	return store, nil
}

func (a *app) runPalette(cmd *cobra.Command, _ []string) error {
	ctx := a.context()
	lgr := logger.FromContext(ctx)
	run := a.runSettings()

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	agg, err := cfg.Aggregator()
	if err != nil {
		return err
	}
	mode, err := cfg.Consistency()
	if err != nil {
		return err
	}
	km, err := cfg.Keymap()
	if err != nil {
		return err
	}
	themeCfg, err := cfg.ActiveTheme()
	if err != nil {
		return err
	}

	store := registry.NewStore(mode, agg.Seed())
	opts := ui.Options{
		AppName:        cfg.App.Name,
		Store:          store,
		Builder:        agg,
		Keymap:         km,
		Theme:          ui.ThemeFromConfig(themeCfg),
		NoColor:        run.NoColor,
		Placeholder:    cfg.Palette.Placeholder,
		MaxVisible:     cfg.Palette.MaxVisible,
		OpenOnStart:    cfg.Palette.OpenOnStart,
		ExitOnNavigate: cfg.Palette.ExitOnNavigate,
	}

	if a.opts.snapshot {
		// Snapshots never run tea commands, so build before the first frame.
		store.Refresh(ctx, agg)
		m := ui.NewModel(ctx, opts)
		frame := ui.RenderSnapshot(m, ui.SnapshotConfig{
			Width:     a.opts.width,
			Height:    a.opts.height,
			StartKeys: a.opts.startKeys,
		})
		fmt.Fprintln(cmd.OutOrStdout(), frame)
		a.printLocation(cmd.OutOrStdout(), cfg, m, run)
		return nil
	}

	lgr.V(1).Info("starting palette", "backend", backendLabel(cfg), "keymap", km.Mode())
	progOpts, cleanup := getProgramOptions()
	defer cleanup()

	m := ui.NewModel(ctx, opts)
	final, err := ui.Run(ctx, m, ui.RunConfig{
		Width:     a.opts.width,
		Height:    a.opts.height,
		StartKeys: a.opts.startKeys,
	}, progOpts...)
	if err != nil {
		return err
	}
	a.printLocation(cmd.OutOrStdout(), cfg, final, run)
	return nil
}

// printLocation writes the host URL reached by the last navigation when the
// palette runs as a launcher.
func (a *app) printLocation(w io.Writer, cfg config.Config, m *ui.Model, run *settings.Run) {
	if m == nil || !m.Navigated() {
		return
	}
	if !run.PrintURL && !cfg.Palette.ExitOnNavigate {
		return
	}
	fmt.Fprintln(w, hostURL(cfg.Backend.URL, m.Location()))
}

// hostURL renders target against base as <base><path>?<query>.
func hostURL(base string, target command.Target) string {
	return strings.TrimRight(base, "/") + target.URL()
}

func backendLabel(cfg config.Config) string {
	if fx := strings.TrimSpace(cfg.Backend.Fixture); fx != "" {
		return "fixture:" + fx
	}
	return cfg.Backend.URL
}
