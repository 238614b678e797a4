// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd(a *app) *cobra.Command {
	var only []string
	cmd := &cobra.Command{
		Use:   "verify [GRAPH GRAMMAR]",
		Short: "Check a solver against the reference fixpoint chunk by chunk and on the full range",
		Args:  cobra.MatchAll(cobra.RangeArgs(0, 2), exactlyZeroOrTwo),
		RunE: func(cmd *cobra.Command, args []string) error {
			insts, err := a.instances(args, only)
			if err != nil {
				return err
			}
			r := a.runner(nil)
			for _, inst := range insts {
				rep, err := r.Verify(cmd.Context(), inst, a.cfg.Algo, a.cfg.ChunkCount)
				if err != nil {
					return fmt.Errorf("%s/%s: %w", inst.GraphName, inst.GrammarName, err)
				}
				if _, err = fmt.Fprintf(a.out, "ok %s/%s %s chunks=%d size=%d\n",
					inst.GraphName, inst.GrammarName, rep.Algo, rep.Chunks, rep.ChunkSize); err != nil {
					return err
				}
			}

			return nil
		},
	}
	cmd.Flags().StringSliceVar(&only, "only", nil, "restrict manifest cases to these graph or grammar names")

	return cmd
}

// exactlyZeroOrTwo accepts either no positional arguments or a GRAPH GRAMMAR pair.
func exactlyZeroOrTwo(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		return fmt.Errorf("expected GRAPH GRAMMAR or no arguments, got %d", len(args))
	}

	return nil
}
