package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/exascience/sortbattle/generate"
	"github.com/exascience/sortbattle/sort"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List algorithms and distributions",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Algorithms:")
		for _, id := range sort.IDs() {
			fmt.Fprintf(out, "  %-10s %s\n", id.Slug(), id)
		}
		fmt.Fprintln(out, "Distributions:")
		for _, d := range generate.Distributions() {
			fmt.Fprintf(out, "  %s\n", d)
		}
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print an array with the configured distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		var rng *rand.Rand
		if cfg.Seed != 0 {
			rng = rand.New(rand.NewSource(cfg.Seed))
		}
		a, err := generate.Generate(cfg.Elements, cfg.Distribution, rng)
		if err != nil {
			return err
		}
		fields := make([]string, len(a))
		for i, v := range a {
			fields[i] = fmt.Sprint(v)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(fields, " "))
		return nil
	},
}
