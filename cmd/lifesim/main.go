package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/logging"
	"github.com/san-kum/lifesim/internal/session"
	"github.com/san-kum/lifesim/internal/stats"
	"github.com/san-kum/lifesim/internal/term"
	"github.com/san-kum/lifesim/internal/tui"
)

var (
	configFile     string
	preset         string
	sideLength     int
	generations    int
	frameDelayMs   int
	pattern        string
	frontend       string
	interruptible  bool
	stopWhenStable bool
	plot           bool
	logLevel       string
	logFile        string
)

var titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

// main registers the lifesim commands and runs an interactive session when
// no subcommand is given. It exits with status 1 when the command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "lifesim",
		Short:        "paint a pattern, then watch it live",
		Long:         "Move with the arrow keys, paint with space, press enter to run Conway's Game of Life.\nAny other key quits.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runSession,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file path (yaml)")
	flags.StringVar(&preset, "preset", "", "use preset configuration")
	flags.IntVar(&sideLength, "side", config.DefaultSideLength, "grid side length")
	flags.IntVar(&generations, "generations", config.DefaultGenerations, "generations to simulate")
	flags.IntVar(&frameDelayMs, "delay", config.DefaultFrameDelayMs, "delay between frames in milliseconds")
	flags.StringVar(&pattern, "pattern", "", "seed the grid with a built-in pattern")
	flags.StringVar(&frontend, "frontend", config.DefaultFrontend, "terminal frontend: tea or ansi")
	flags.BoolVar(&interruptible, "interruptible", false, "any key stops the simulation")
	flags.BoolVar(&stopWhenStable, "stop-when-stable", false, "stop once the grid no longer changes")
	flags.BoolVar(&plot, "plot", false, "plot population after the session")
	flags.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level: trace, debug, info, warn, error")
	flags.StringVar(&logFile, "log-file", "", "append logs to this file")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list built-in seed patterns",
		Args:  cobra.NoArgs,
		RunE:  listPatterns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(patternsCmd, presetsCmd, configCmd)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, later layers winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("side") {
		cfg.SideLength = sideLength
	}
	if flags.Changed("generations") {
		cfg.Generations = generations
	}
	if flags.Changed("delay") {
		cfg.FrameDelayMs = frameDelayMs
	}
	if flags.Changed("pattern") {
		cfg.Pattern = pattern
	}
	if flags.Changed("frontend") {
		cfg.Frontend = frontend
	}
	if flags.Changed("interruptible") {
		cfg.Interruptible = interruptible
	}
	if flags.Changed("stop-when-stable") {
		cfg.StopWhenStable = stopWhenStable
	}
	if flags.Changed("plot") {
		cfg.Plot = plot
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closer.Close()

	machine, err := session.New(session.Options{
		Size:           cfg.SideLength,
		Generations:    cfg.Generations,
		StopWhenStable: cfg.StopWhenStable,
		Pattern:        cfg.Pattern,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	recorder := stats.Default()
	machine.AddObserver(recorder)

	logger.Info("session starting",
		"frontend", cfg.Frontend,
		"side", cfg.SideLength,
		"generations", cfg.Generations,
		"delay_ms", cfg.FrameDelayMs,
	)

	switch cfg.Frontend {
	case config.FrontendANSI:
		err = runANSI(cmd.Context(), machine, cfg)
	default:
		err = runTea(machine, cfg)
	}
	if err != nil {
		logger.Error("session failed", "err", err)
		return err
	}

	logger.Info("session ended", slog.Any("stats", recorder.Values()))
	if cfg.Plot && machine.Generation() > 0 {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, recorder.Plot(80, 12))
		fmt.Fprintln(out)
		fmt.Fprint(out, recorder.Summary())
	}
	return nil
}

func runTea(machine *session.Machine, cfg *config.Config) error {
	m := tui.NewModel(machine, cfg.FrameDelay(), cfg.Interruptible)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runANSI(ctx context.Context, machine *session.Machine, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	t, err := term.Open()
	if err != nil {
		return err
	}
	defer t.Close()

	return session.Run(ctx, t, machine, session.RunOptions{
		FrameDelay:    cfg.FrameDelay(),
		Interruptible: cfg.Interruptible,
	})
}

func listPatterns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("patterns"))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tCELLS")
	for _, name := range life.ListPatterns() {
		rows := life.Patterns[name]
		h, wd := life.PatternSize(rows)
		g := life.NewGrid(max(h, wd))
		if err := life.Place(g, name); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%d\n", name, wd, h, g.Population())
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("presets"))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIDE\tGENERATIONS\tDELAY\tPATTERN\tFRONTEND")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		pat := p.Pattern
		if pat == "" {
			pat = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%s\t%s\n",
			name, p.SideLength, p.Generations, p.FrameDelay(), pat, p.Frontend)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := config.Save(args[0], cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
		return nil
	}
	return writeYAML(cmd.OutOrStdout(), cfg)
}

func writeYAML(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
