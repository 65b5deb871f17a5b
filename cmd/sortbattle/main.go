// Command sortbattle races two sorting algorithms over the same input,
// step by step, in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/exascience/sortbattle/audio"
	"github.com/exascience/sortbattle/audio/speaker"
	"github.com/exascience/sortbattle/battle"
	"github.com/exascience/sortbattle/config"
	"github.com/exascience/sortbattle/generate"
	"github.com/exascience/sortbattle/tui"
)

var (
	// Global flags
	verbose    bool
	configPath string
	logFile    string

	// Battle flags, applied on top of the config file when set
	left         string
	right        string
	elements     int
	distribution string
	speedMs      int
	sound        bool
	seed         int64

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sortbattle",
	Short: "Race two sorting algorithms step by step",
	Long: `sortbattle animates two sorting algorithms side by side over the same
generated array, one comparison at a time, with optional audio cues.

Run without a subcommand to open the interactive terminal view.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = loadConfig(cmd); err != nil {
			return err
		}
		// The interactive view owns the terminal; only log to a file there.
		interactive := cmd == cmd.Root()
		if logger, err = newLogger(cfg.Logging, interactive); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runInteractive,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.StringVarP(&left, "left", "l", "", "algorithm of the left panel")
	pf.StringVarP(&right, "right", "r", "", "algorithm of the right panel")
	pf.IntVarP(&elements, "elements", "n", 0, "number of elements (10-100)")
	pf.StringVarP(&distribution, "distribution", "d", "",
		"random, ascending, descending, split-ascending or split-descending")
	pf.IntVarP(&speedMs, "speed", "s", 0, "delay between steps in milliseconds (1-100)")
	pf.BoolVar(&sound, "sound", false, "play a tone for every step")
	pf.Int64Var(&seed, "seed", 0, "seed for random arrays (0 picks one)")

	rootCmd.AddCommand(raceCmd, benchCmd, listCmd, generateCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("left") {
		c.Left = left
	}
	if flags.Changed("right") {
		c.Right = right
	}
	if flags.Changed("elements") {
		c.Elements = elements
	}
	if flags.Changed("distribution") {
		d, err := generate.ParseDistribution(distribution)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidConfiguration, err)
		}
		c.Distribution = d
	}
	if flags.Changed("speed") {
		c.SpeedMs = speedMs
	}
	if flags.Changed("sound") {
		c.Sound = sound
	}
	if flags.Changed("seed") {
		c.Seed = seed
	}
	if flags.Changed("log-file") {
		c.Logging.File = logFile
	}
	if verbose {
		c.Logging.Level = "debug"
	}
	return c, nil
}

func newLogger(lc config.LoggingConfig, interactive bool) (*zap.Logger, error) {
	if interactive && lc.File == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	if lc.Level != "" {
		level, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	if lc.File != "" {
		zc.OutputPaths = []string{lc.File}
		zc.ErrorOutputPaths = []string{lc.File}
	}
	return zc.Build()
}

// newCue opens the audio device if sound may be needed. Without a
// device, the battle stays silent.
func newCue() *audio.Generator {
	backend, err := speaker.New()
	if err != nil {
		logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		return audio.NewGenerator(nil)
	}
	return audio.NewGenerator(backend, audio.WithLogger(logger))
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cue := newCue()
	defer cue.Close()

	b, err := battle.New(cfg, battle.WithLogger(logger), battle.WithCue(cue))
	if err != nil {
		return err
	}
	defer b.Close()
	return tui.Run(ctx, b)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
