// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cfpq/cfpq"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		sources []int
		nonterm string
		count   bool
	)
	cmd := &cobra.Command{
		Use:   "solve GRAPH GRAMMAR",
		Short: "Print the (source, target) pairs derivable from a nonterminal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, gr, err := load(args[0], args[1])
			if err != nil {
				return err
			}
			if nonterm == "" {
				nonterm = gr.Start()
			}
			if _, ok := gr.Index(nonterm); !ok {
				return fmt.Errorf("nonterminal %q not in grammar %v", nonterm, gr.Nonterminals())
			}
			chunk := sources
			if len(chunk) == 0 {
				chunk = g.FullRange()
			}

			s, err := cfpq.New(a.cfg.Algo, g, gr, a.solverOptions()...)
			if err != nil {
				return err
			}
			res, err := s.Solve(chunk)
			if err != nil {
				return err
			}

			pairs := res.Pairs(nonterm)
			if count {
				_, err = fmt.Fprintln(a.out, len(pairs))
				return err
			}
			for _, p := range pairs {
				if _, err = fmt.Fprintf(a.out, "%d %d\n", p.From, p.To); err != nil {
					return err
				}
			}

			return nil
		},
	}
	cmd.Flags().IntSliceVar(&sources, "sources", nil, "source vertices (default: all)")
	cmd.Flags().StringVar(&nonterm, "nonterminal", "", "nonterminal to report (default: start symbol)")
	cmd.Flags().BoolVar(&count, "count", false, "print only the number of pairs")

	return cmd
}
