package cfpq_test

import (
	"math/rand"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/cfpq/boolmat"
	"github.com/katalvlaran/cfpq/cfpq"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/graph"
)

// fixture returns a mid-sized random instance under the dyck grammar.
func fixture(t *testing.T, n int, seed int64) (*graph.LabeledGraph, *grammar.Grammar) {
	t.Helper()
	gr, err := grammar.ParseString(conformanceGrammars["dyck"])
	require.NoError(t, err)
	g, err := graph.RandomSparse(n, 0.08, []string{"a", "b"}, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)

	return g, gr
}

// TestConstructorErrors covers nil inputs, bad options and unknown names.
func TestConstructorErrors(t *testing.T) {
	g, gr := fixture(t, 4, 1)

	for _, name := range cfpq.Names() {
		_, err := cfpq.New(name, nil, gr)
		require.ErrorIs(t, err, cfpq.ErrNilGraph, name)

		_, err = cfpq.New(name, g, nil)
		require.ErrorIs(t, err, cfpq.ErrNilGrammar, name)

		_, err = cfpq.New(name, g, gr, cfpq.WithWorkers(-1))
		require.ErrorIs(t, err, cfpq.ErrOptionViolation, name)
	}

	_, err := cfpq.New("matrix", g, gr)
	require.ErrorIs(t, err, cfpq.ErrUnknownAlgorithm)
	require.Equal(t, []string{"brute", "opt", "reference", "smart"}, cfpq.Names())
}

// TestDefaultOptions pins the defaults.
func TestDefaultOptions(t *testing.T) {
	o := cfpq.DefaultOptions()
	require.NotNil(t, o.Logger)
	require.GreaterOrEqual(t, o.Workers, 1)
	require.Nil(t, o.OnRound)
}

// TestRoundCountIsMonotone observes the true-count per round: it never
// decreases and is bounded by |N|·n².
func TestRoundCountIsMonotone(t *testing.T) {
	const n = 30
	g, gr := fixture(t, n, 5)
	bound := gr.NumNonterminals() * n * n

	for _, name := range []string{cfpq.AlgoReference, cfpq.AlgoSmart, cfpq.AlgoOpt} {
		var counts []int
		s, err := cfpq.New(name, g, gr, cfpq.WithRoundHook(func(round, nnz int) {
			require.Equal(t, len(counts)+1, round)
			counts = append(counts, nnz)
		}))
		require.NoError(t, err)

		_, err = s.Solve(g.FullRange())
		require.NoError(t, err)
		require.NotEmpty(t, counts, name)
		for i := 1; i < len(counts); i++ {
			require.GreaterOrEqual(t, counts[i], counts[i-1], "%s round %d", name, i+1)
		}
		require.LessOrEqual(t, counts[len(counts)-1], bound)
	}
}

// TestBruteRestartsRoundsPerSource checks the hook numbering of Brute.
func TestBruteRestartsRoundsPerSource(t *testing.T) {
	g, gr := fixture(t, 10, 2)
	var firsts int
	s, err := cfpq.NewBrute(g, gr, cfpq.WithRoundHook(func(round, _ int) {
		if round == 1 {
			firsts++
		}
	}))
	require.NoError(t, err)

	_, err = s.Solve([]int{0, 4, 9})
	require.NoError(t, err)
	require.Equal(t, 3, firsts) // one closure per source
}

// TestOptWorkerCounts runs Opt sequentially and with parallel rounds.
func TestOptWorkerCounts(t *testing.T) {
	g, gr := fixture(t, 70, 8)
	want := referenceFull(t, g, gr)

	for _, w := range []int{0, 1, 2, 8} {
		s, err := cfpq.NewOpt(g, gr, cfpq.WithWorkers(w))
		require.NoError(t, err)
		got, err := s.Solve(g.FullRange())
		require.NoError(t, err)
		require.True(t, want.Equal(got), "workers=%d", w)
	}
}

// TestConcurrentSolveCalls shares one solver across goroutines.
func TestConcurrentSolveCalls(t *testing.T) {
	g, gr := fixture(t, 40, 4)
	want := referenceFull(t, g, gr)
	chunks, err := g.Chunkify(7)
	require.NoError(t, err)

	for _, s := range allSolvers(t, g, gr, cfpq.WithWorkers(2)) {
		var wg sync.WaitGroup
		results := make([]*cfpq.Result, len(chunks))
		errs := make([]error, len(chunks))
		for i, c := range chunks {
			wg.Add(1)
			go func(i int, c []int) {
				defer wg.Done()
				results[i], errs[i] = s.Solve(c)
			}(i, c)
		}
		wg.Wait()

		for i, c := range chunks {
			require.NoError(t, errs[i])
			exp, err := want.Extract(c)
			require.NoError(t, err)
			require.True(t, exp.Equal(results[i]), "%s chunk %v", s.Name(), c)
		}
	}
}

// TestDebugLogging checks the per-round and per-solve records.
func TestDebugLogging(t *testing.T) {
	g, gr := fixture(t, 12, 3)
	core, logs := observer.New(zap.DebugLevel)

	s, err := cfpq.NewSmart(g, gr, cfpq.WithLogger(zap.New(core)))
	require.NoError(t, err)
	_, err = s.Solve([]int{1, 2})
	require.NoError(t, err)

	require.NotZero(t, logs.FilterMessage("round").Len())
	solved := logs.FilterMessage("solved").All()
	require.Len(t, solved, 1)
	require.Equal(t, "smart", solved[0].ContextMap()["algo"])
	require.EqualValues(t, 2, solved[0].ContextMap()["chunk_size"])
}

// allocatedBy returns the heap bytes allocated while fn runs.
func allocatedBy(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)

	return after.TotalAlloc - before.TotalAlloc
}

// TestSparseGraphCostFollowsEdges solves a million-vertex graph with five
// edges. Working state must follow the stored entries; one dense n×n
// matrix alone would need over 100 GiB.
func TestSparseGraphCostFollowsEdges(t *testing.T) {
	const n = 1_000_000
	g, err := graph.New(n, []graph.Edge{
		{From: 0, Label: "a", To: 1},
		{From: 1, Label: "a", To: 2},
		{From: 2, Label: "b", To: 3},
		{From: 3, Label: "b", To: 4},
		{From: n - 2, Label: "a", To: n - 1},
	})
	require.NoError(t, err)
	gr, err := grammar.ParseString(conformanceGrammars["anbn"])
	require.NoError(t, err)

	const budget = 16 << 20
	for _, name := range cfpq.Names() {
		s, err := cfpq.New(name, g, gr)
		require.NoError(t, err)

		var res *cfpq.Result
		alloc := allocatedBy(func() {
			res, err = s.Solve([]int{0, n - 2})
		})
		require.NoError(t, err, name)
		require.Less(t, alloc, uint64(budget), "%s allocated %d bytes", name, alloc)
		require.Equal(t, []cfpq.Pair{{From: 0, To: 4}}, res.Pairs("S"), name)
		require.Equal(t, []cfpq.Pair{{From: 0, To: 1}, {From: n - 2, To: n - 1}}, res.Pairs("A"), name)
	}
}

// TestValidateChunk covers the exported validator directly.
func TestValidateChunk(t *testing.T) {
	require.NoError(t, cfpq.ValidateChunk(nil, 0))
	require.NoError(t, cfpq.ValidateChunk([]int{2, 0, 1}, 3))
	require.ErrorIs(t, cfpq.ValidateChunk([]int{0}, 0), cfpq.ErrInvalidSubset)
	require.ErrorIs(t, cfpq.ValidateChunk([]int{1, 1}, 3), cfpq.ErrInvalidSubset)
}

// TestReferenceFixpoint exposes the all-pairs matrices in grammar order.
func TestReferenceFixpoint(t *testing.T) {
	g, err := graph.New(3, []graph.Edge{
		{From: 0, Label: "a", To: 1},
		{From: 1, Label: "a", To: 2},
	})
	require.NoError(t, err)
	gr, err := grammar.ParseString("S S S\nS a\n")
	require.NoError(t, err)

	ref, err := cfpq.NewReference(g, gr)
	require.NoError(t, err)
	ms, rounds, err := ref.Fixpoint()
	require.NoError(t, err)
	require.Len(t, ms, 1)
	require.Equal(t, 2, rounds) // one productive round, one quiet round

	want := FromPairs(t, 3, [2]int{0, 1}, [2]int{1, 2}, [2]int{0, 2})
	require.True(t, cfpq.MatricesEqual(want, ms[0]), ms[0].String())
}

// FromPairs builds an n×n matrix with the given true entries.
func FromPairs(t *testing.T, n int, pairs ...[2]int) *boolmat.Matrix {
	t.Helper()
	m, err := boolmat.NewMatrix(n, n)
	require.NoError(t, err)
	for _, p := range pairs {
		require.NoError(t, m.Set(p[0], p[1], true))
	}

	return m
}
