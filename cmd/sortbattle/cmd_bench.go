package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/exascience/sortbattle/bench"
	"github.com/exascience/sortbattle/sort"
)

var (
	benchTrials     int
	benchBatches    int
	benchAlgorithms []string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare algorithms over many generated arrays",
	Long: `Run every algorithm without delays over the same series of generated
arrays and summarise its comparisons, swaps and writes.`,
	RunE: runBench,
}

func init() {
	f := benchCmd.Flags()
	f.IntVarP(&benchTrials, "trials", "t", 100, "number of arrays per algorithm")
	f.IntVar(&benchBatches, "batches", 0, "number of parallel batches (0 picks one)")
	f.StringSliceVarP(&benchAlgorithms, "algorithms", "a", nil, "algorithms to measure (default all)")
}

func runBench(cmd *cobra.Command, args []string) error {
	ids := make([]sort.ID, 0, len(benchAlgorithms))
	for _, name := range benchAlgorithms {
		id, err := sort.Parse(name)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	results, err := bench.Run(cmd.Context(), bench.Options{
		Algorithms:   ids,
		Elements:     cfg.Elements,
		Distribution: cfg.Distribution,
		Trials:       benchTrials,
		Seed:         cfg.Seed,
		Batches:      benchBatches,
		Log:          logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d trials, %d elements, %v\n",
		benchTrials, cfg.Elements, cfg.Distribution)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ALGORITHM", "COMPARISONS", "SWAPS", "WRITES")
	for _, r := range results {
		t.Row(r.Algorithm.String(), summary(r.Comparisons), summary(r.Swaps), summary(r.Writes))
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}

func summary(s bench.Summary) string {
	return fmt.Sprintf("%.1f ± %.1f [%.0f..%.0f]", s.Mean, s.StdDev, s.Min, s.Max)
}
