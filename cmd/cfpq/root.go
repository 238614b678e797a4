// SPDX-License-Identifier: MIT

package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/cfpq/bench"
	"github.com/katalvlaran/cfpq/cfpq"
	"github.com/katalvlaran/cfpq/config"
	"github.com/katalvlaran/cfpq/corpus"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/graph"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	v          *viper.Viper
	cfg        config.Config
	log        *zap.Logger
	out        io.Writer
	configPath string
	verbose    bool
}

// newRootCmd wires the command tree. Output of results goes to out; logs go
// to stderr.
func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: config.New(), out: out, log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "cfpq",
		Short: "Context-free path queries over labeled graphs",
		Long: `cfpq evaluates CNF grammars over edge-labeled graphs with boolean matrices.

Graphs are "src label dst" edge lists (optionally .gz); grammars list one CNF
production per line: "A B C", "A a" or "A" / "A eps" for nullable heads.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Sync() },
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ./cfpq.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.String("algo", config.Default().Algo, "solver: one of brute, opt, reference, smart")
	pf.Int("workers", 0, "Opt goroutines per round (0 = one per CPU)")
	_ = a.v.BindPFlag("algo", pf.Lookup("algo"))
	_ = a.v.BindPFlag("workers", pf.Lookup("workers"))

	root.AddCommand(newSolveCmd(a), newVerifyCmd(a), newBenchCmd(a))

	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	if a.verbose {
		lvl = zap.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	log, err := zc.Build()
	if err != nil {
		return err
	}
	a.log = log

	return nil
}

// solverOptions maps configuration onto solver options.
func (a *app) solverOptions() []cfpq.Option {
	return []cfpq.Option{
		cfpq.WithLogger(a.log),
		cfpq.WithWorkers(a.cfg.Workers),
	}
}

// runner returns a bench runner sharing the app's logger and options.
func (a *app) runner(metrics *bench.Metrics) *bench.Runner {
	return &bench.Runner{
		Logger:   a.log,
		Metrics:  metrics,
		Options:  a.solverOptions(),
		Parallel: a.cfg.ParallelChunks,
	}
}

// instances resolves the instances to run: the GRAPH GRAMMAR pair given on
// the command line, or every manifest case whose name is listed in only.
func (a *app) instances(args []string, only []string) ([]bench.Instance, error) {
	var cases []corpus.Case
	if len(args) == 2 {
		cases = []corpus.Case{{
			GraphPath:   args[0],
			GrammarPath: args[1],
			GraphName:   corpus.Name(args[0]),
			GrammarName: corpus.Name(args[1]),
		}}
	} else {
		m, err := corpus.Load(a.cfg.Manifest)
		if err != nil {
			return nil, err
		}
		cases = corpus.Filter(m.Cases(), only...)
	}

	out := make([]bench.Instance, 0, len(cases))
	for _, c := range cases {
		g, gr, err := c.Open()
		if err != nil {
			return nil, err
		}
		out = append(out, bench.Instance{
			GraphName:   c.GraphName,
			GrammarName: c.GrammarName,
			Graph:       g,
			Grammar:     gr,
		})
	}

	return out, nil
}

// load parses one graph and one grammar file.
func load(graphPath, grammarPath string) (*graph.LabeledGraph, *grammar.Grammar, error) {
	g, err := graph.ParseFile(graphPath)
	if err != nil {
		return nil, nil, err
	}
	gr, err := grammar.ParseFile(grammarPath)
	if err != nil {
		return nil, nil, err
	}

	return g, gr, nil
}
