package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exascience/sortbattle/battle"
	"github.com/exascience/sortbattle/sort"
	"github.com/exascience/sortbattle/trace"
)

var (
	traceOut    bool
	raceTimeout time.Duration
)

var raceCmd = &cobra.Command{
	Use:   "race",
	Short: "Run a battle without the terminal view",
	Long: `Run both algorithms to completion at the configured speed and print
the final counters of both panels.

With --trace, every snapshot is written to stdout as one line of JSON.`,
	RunE: runRace,
}

func init() {
	raceCmd.Flags().BoolVar(&traceOut, "trace", false, "stream snapshots as JSON lines to stdout")
	raceCmd.Flags().DurationVar(&raceTimeout, "timeout", 0, "give up after this long (0 waits forever)")
}

func runRace(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []battle.Option{battle.WithLogger(logger)}
	if cfg.Sound {
		cue := newCue()
		defer cue.Close()
		opts = append(opts, battle.WithCue(cue))
	}
	var w *trace.JSONWriter
	if traceOut {
		w = trace.NewJSONWriter(cmd.OutOrStdout())
		opts = append(opts, battle.WithObserver(func(side battle.Side, id sort.ID) trace.Observer {
			return w.For(side.String(), id.String())
		}))
	}

	b, err := battle.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer b.Close()

	waitCtx := ctx
	if raceTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, raceTimeout)
		defer cancel()
	}
	b.Start(ctx)
	if err := b.Wait(waitCtx); err != nil {
		logger.Warn("race interrupted", zap.Error(err))
		b.Close()
	}
	if w != nil {
		if err := w.Err(); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
		return nil
	}

	l, r := b.Snapshots()
	fmt.Fprintln(cmd.OutOrStdout(), raceTable(b, l, r))
	return nil
}

func raceTable(b *battle.Battle, l, r trace.Snapshot) string {
	status := func(s trace.Snapshot) string {
		if s.Complete {
			return "complete"
		}
		return "stopped"
	}
	row := func(side battle.Side, s trace.Snapshot) []string {
		return []string{
			side.String(),
			b.Driver(side).Algorithm().String(),
			fmt.Sprint(s.Comparisons),
			fmt.Sprint(s.Swaps),
			fmt.Sprint(s.Writes),
			fmt.Sprintf("%.2fs", s.ElapsedSeconds()),
			status(s),
		}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SIDE", "ALGORITHM", "COMPARISONS", "SWAPS", "WRITES", "TIME", "STATUS").
		Row(row(battle.Left, l)...).
		Row(row(battle.Right, r)...).
		String()
}
