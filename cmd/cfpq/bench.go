// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cfpq/bench"
)

func newBenchCmd(a *app) *cobra.Command {
	var only []string
	cmd := &cobra.Command{
		Use:   "bench [GRAPH GRAMMAR]",
		Short: "Time a solver per chunk for every configured chunk size and append CSV rows",
		Args:  cobra.MatchAll(cobra.RangeArgs(0, 2), exactlyZeroOrTwo),
		RunE: func(cmd *cobra.Command, args []string) error {
			insts, err := a.instances(args, only)
			if err != nil {
				return err
			}
			metrics, err := bench.NewMetrics()
			if err != nil {
				return err
			}
			r := a.runner(metrics)

			for _, inst := range insts {
				recs, err := r.Bench(cmd.Context(), inst, a.cfg.Algo, a.cfg.ChunkSizes)
				if err != nil {
					return err
				}
				if err = bench.AppendCSV(a.cfg.CSV, recs...); err != nil {
					return err
				}
				for _, rec := range recs {
					if _, err = fmt.Fprintf(a.out, "%s/%s %s size=%d chunks=%d total=%ss\n",
						rec.Graph, rec.Grammar, rec.Algo, rec.ChunkSize, len(rec.Times),
						bench.FormatSeconds(rec.Total())); err != nil {
						return err
					}
				}
			}

			if a.cfg.Metrics == "" {
				return nil
			}
			f, err := os.Create(a.cfg.Metrics)
			if err != nil {
				return err
			}
			if err = metrics.WriteText(f); err != nil {
				_ = f.Close()
				return err
			}

			return f.Close()
		},
	}
	cmd.Flags().StringSliceVar(&only, "only", nil, "restrict manifest cases to these graph or grammar names")

	return cmd
}
