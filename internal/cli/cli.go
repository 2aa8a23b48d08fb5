// Package cli implements the canvasnap command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasnap/pkg/align"
	"github.com/matzehuels/canvasnap/pkg/buildinfo"
	"github.com/matzehuels/canvasnap/pkg/config"
	"github.com/matzehuels/canvasnap/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "canvasnap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Canvasnap snaps dragged elements to alignment guides",
		Long:         `Canvasnap computes smart-guide snapping, alignment and distribution for elements on a 2D design canvas. It works on scene files from the command line, interactively in the terminal, or as an HTTP service.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/canvasnap/config.toml)")

	// Register all subcommands
	root.AddCommand(c.snapCommand())
	root.AddCommand(c.alignCommand())
	root.AddCommand(c.distributeCommand())
	root.AddCommand(c.dragCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig loads the configuration once and registers debug hooks.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	// --verbose wins over the configured level.
	if c.Logger.GetLevel() == log.InfoLevel {
		c.SetLogLevel(cfg.LogLevel())
	}
	registerLogHooks(c.Logger)
	c.cfg = cfg
	return cfg, nil
}

// snapFlags are the engine settings every snapping command accepts.
type snapFlags struct {
	tolerance  float64
	gridSize   float64
	showGrid   bool
	maxTracked int
	zoom       float64
}

func (f *snapFlags) register(cmd *cobra.Command) {
	d := align.DefaultSettings()
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", d.SnapTolerance, "snap tolerance in screen units")
	cmd.Flags().Float64Var(&f.gridSize, "grid", d.GridSize, "grid size in canvas units")
	cmd.Flags().BoolVar(&f.showGrid, "show-grid", d.ShowGrid, "snap to the grid")
	cmd.Flags().IntVar(&f.maxTracked, "max-tracked", d.MaxTracked, "elements with hysteresis memory (0 = unbounded)")
	cmd.Flags().Float64Var(&f.zoom, "zoom", 1, "view zoom factor")
}

// settings merges changed flags over the configured snap settings.
func (c *CLI) settings(cmd *cobra.Command, f *snapFlags) (align.Settings, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return align.Settings{}, err
	}
	s := cfg.Snap
	flags := cmd.Flags()
	if flags.Changed("tolerance") {
		s.SnapTolerance = f.tolerance
	}
	if flags.Changed("grid") {
		s.GridSize = f.gridSize
	}
	if flags.Changed("show-grid") {
		s.ShowGrid = f.showGrid
	}
	if flags.Changed("max-tracked") {
		s.MaxTracked = f.maxTracked
	}
	return s, nil
}

// sessionManager returns a manager over the CLI session directory.
func (c *CLI) sessionManager(settings align.Settings) (*session.Manager, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := session.NewFileStore(cfg.Server.SessionDir)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return session.NewManager(store,
		session.WithTTL(cfg.Server.SessionTTL.Duration),
		session.WithDefaults(settings),
		session.WithKillSwitch(cfg.KillSwitch()),
		session.WithManagerLogger(c.Logger),
	), nil
}
