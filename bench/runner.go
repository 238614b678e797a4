// SPDX-License-Identifier: MIT

package bench

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/cfpq/cfpq"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/graph"
)

// ErrMismatch is returned by Verify when a solver disagrees with the
// reference fixpoint.
var ErrMismatch = errors.New("bench: result differs from reference")

// Instance is one named (graph, grammar) pair.
type Instance struct {
	GraphName   string
	GrammarName string
	Graph       *graph.LabeledGraph
	Grammar     *grammar.Grammar
}

// Runner executes timing and verification runs and is safe for concurrent
// use. The zero value is usable: no logging, no metrics, a fresh run id per
// Runner. Fields must not change after the first run.
type Runner struct {
	Logger  *zap.Logger
	Metrics *Metrics

	// RunID tags every Record; uuid.Nil picks a random id on first use.
	RunID uuid.UUID

	// Options are passed to every solver the Runner builds.
	Options []cfpq.Option

	// Parallel bounds how many chunks Verify solves concurrently; < 1 means 1.
	Parallel int

	idOnce sync.Once
	id     uuid.UUID
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}

	return r.Logger
}

func (r *Runner) runID() uuid.UUID {
	r.idOnce.Do(func() {
		r.id = r.RunID
		if r.id == uuid.Nil {
			r.id = uuid.New()
		}
	})

	return r.id
}

// ChunkTimes solves every chunk in order and returns the wall time of each
// Solve call. It stops at the first error or when ctx is done.
func ChunkTimes(ctx context.Context, s cfpq.Solver, chunks [][]int) ([]time.Duration, error) {
	out := make([]time.Duration, 0, len(chunks))
	for i, c := range chunks {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		start := time.Now()
		if _, err := s.Solve(c); err != nil {
			return out, fmt.Errorf("chunk %d: %w", i, err)
		}
		out = append(out, time.Since(start))
	}

	return out, nil
}

// Bench times algo on inst once per chunk size and returns one Record each.
// Records are also observed by Metrics when set.
func (r *Runner) Bench(ctx context.Context, inst Instance, algo string, sizes []int) ([]Record, error) {
	s, err := cfpq.New(algo, inst.Graph, inst.Grammar, r.Options...)
	if err != nil {
		return nil, err
	}
	log := r.logger().With(
		zap.String("graph", inst.GraphName),
		zap.String("grammar", inst.GrammarName),
		zap.String("algo", algo))

	recs := make([]Record, 0, len(sizes))
	for _, size := range sizes {
		chunks, err := inst.Graph.Chunkify(size)
		if err != nil {
			return recs, err
		}
		times, err := ChunkTimes(ctx, s, chunks)
		if err != nil {
			return recs, fmt.Errorf("%s/%s %s size %d: %w", inst.GraphName, inst.GrammarName, algo, size, err)
		}
		rec := Record{
			RunID:     r.runID(),
			Graph:     inst.GraphName,
			Grammar:   inst.GrammarName,
			Algo:      algo,
			ChunkSize: size,
			Times:     times,
		}
		if r.Metrics != nil {
			r.Metrics.Observe(rec)
		}
		log.Info("bench",
			zap.Int("chunk_size", size),
			zap.Int("chunks", len(chunks)),
			zap.Duration("total", rec.Total()))
		recs = append(recs, rec)
	}

	return recs, nil
}

// Report summarizes a successful Verify.
type Report struct {
	Algo      string
	ChunkSize int
	Chunks    int
	Elapsed   time.Duration
}

// Verify checks algo against the reference fixpoint on inst:
//
//  1. chunks of size max(n/chunkCount, 1), each compared with the projected
//     reference rows;
//  2. the full range 0..n-1, compared bit for bit.
//
// Returns ErrMismatch naming the chunk and nonterminals on disagreement.
func (r *Runner) Verify(ctx context.Context, inst Instance, algo string, chunkCount int) (Report, error) {
	if chunkCount < 1 {
		chunkCount = 1
	}
	start := time.Now()
	ref, err := cfpq.NewReference(inst.Graph, inst.Grammar, r.Options...)
	if err != nil {
		return Report{}, err
	}
	want, err := ref.Solve(inst.Graph.FullRange())
	if err != nil {
		return Report{}, err
	}
	s, err := cfpq.New(algo, inst.Graph, inst.Grammar, r.Options...)
	if err != nil {
		return Report{}, err
	}

	size := inst.Graph.MatricesSize() / chunkCount
	if size < 1 {
		size = 1
	}
	chunks, err := inst.Graph.Chunkify(size)
	if err != nil {
		return Report{}, err
	}

	eg, ctx := errgroup.WithContext(ctx)
	parallel := r.Parallel
	if parallel < 1 {
		parallel = 1
	}
	eg.SetLimit(parallel)
	for _, c := range chunks {
		c := c
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return check(s, want, c)
		})
	}
	if err = eg.Wait(); err != nil {
		return Report{}, err
	}
	if err = check(s, want, inst.Graph.FullRange()); err != nil {
		return Report{}, fmt.Errorf("full range: %w", err)
	}

	rep := Report{Algo: algo, ChunkSize: size, Chunks: len(chunks), Elapsed: time.Since(start)}
	r.logger().Info("verified",
		zap.String("graph", inst.GraphName),
		zap.String("grammar", inst.GrammarName),
		zap.String("algo", algo),
		zap.Int("chunk_size", size),
		zap.Int("chunks", len(chunks)),
		zap.Duration("elapsed", rep.Elapsed))

	return rep, nil
}

// check solves chunk and compares it with the matching reference rows.
func check(s cfpq.Solver, want *cfpq.Result, chunk []int) error {
	got, err := s.Solve(chunk)
	if err != nil {
		return err
	}
	exp, err := want.Extract(chunk)
	if err != nil {
		return err
	}
	if !exp.Equal(got) {
		lo, hi := -1, -1
		if len(chunk) > 0 {
			lo, hi = chunk[0], chunk[len(chunk)-1]
		}
		return fmt.Errorf("%s chunk [%d..%d] differs on %v: %w", s.Name(), lo, hi, exp.Diff(got), ErrMismatch)
	}

	return nil
}
