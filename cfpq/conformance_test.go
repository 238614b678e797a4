package cfpq_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/cfpq/cfpq"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/graph"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m) // Opt rounds must not leave workers behind
}

// grammars used by the conformance suite.
var conformanceGrammars = map[string]string{
	// a^n b^n
	"anbn": "S A B\nS A S1\nS1 S B\nA a\nB b\n",
	// balanced brackets with the empty word
	"dyck": "S S S\nS A S1\nS1 S B\nS\nA a\nB b\n",
	// transitive closure of a
	"closure": "S S S\nS a\n",
	// a* b, right-recursive through the head
	"astarb": "S A S\nS b\nA a\n",
	// two mutually recursive nonterminals plus a nullable helper
	"mutual": "S A T\nT S B\nT B E\nE\nE E E\nA a\nB b\n",
}

// allSolvers builds every registered solver over (g, gr).
func allSolvers(t *testing.T, g *graph.LabeledGraph, gr *grammar.Grammar, opts ...cfpq.Option) []cfpq.Solver {
	t.Helper()
	out := make([]cfpq.Solver, 0, len(cfpq.Names()))
	for _, name := range cfpq.Names() {
		s, err := cfpq.New(name, g, gr, opts...)
		require.NoError(t, err)
		require.Equal(t, name, s.Name())
		out = append(out, s)
	}

	return out
}

// referenceFull solves the full range with the reference solver.
func referenceFull(t *testing.T, g *graph.LabeledGraph, gr *grammar.Grammar) *cfpq.Result {
	t.Helper()
	ref, err := cfpq.NewReference(g, gr)
	require.NoError(t, err)
	res, err := ref.Solve(g.FullRange())
	require.NoError(t, err)

	return res
}

// chunksFor returns consecutive chunks of several sizes plus one shuffled
// non-contiguous chunk.
func chunksFor(n int, rng *rand.Rand) [][]int {
	var out [][]int
	for _, size := range []int{1, 3, n} {
		if size < 1 {
			continue
		}
		for lo := 0; lo < n; lo += size {
			hi := lo + size
			if hi > n {
				hi = n
			}
			c := make([]int, 0, hi-lo)
			for v := lo; v < hi; v++ {
				c = append(c, v)
			}
			out = append(out, c)
		}
	}
	perm := rng.Perm(n)
	out = append(out, perm[:(n+1)/2])

	return out
}

// TestSolversMatchReference checks every solver against the projected
// reference fixpoint on random graphs, including sizes past one word.
func TestSolversMatchReference(t *testing.T) {
	for gname, text := range conformanceGrammars {
		gr, err := grammar.ParseString(text)
		require.NoError(t, err)

		for _, n := range []int{1, 7, 33, 70} {
			for _, p := range []float64{0.05, 0.2} {
				rng := rand.New(rand.NewSource(int64(n*1000) + int64(p*100)))
				g, err := graph.RandomSparse(n, p, []string{"a", "b"}, rng)
				require.NoError(t, err)
				want := referenceFull(t, g, gr)

				t.Run(fmt.Sprintf("%s/n=%d/p=%.2f", gname, n, p), func(t *testing.T) {
					for _, s := range allSolvers(t, g, gr) {
						for _, chunk := range chunksFor(n, rng) {
							got, err := s.Solve(chunk)
							require.NoError(t, err)
							exp, err := want.Extract(chunk)
							require.NoError(t, err)
							require.True(t, exp.Equal(got),
								"%s chunk %v differs on %v", s.Name(), chunk, exp.Diff(got))
						}
					}
				})
			}
		}
	}
}

// TestFullRangeEqualsReference checks bit-for-bit agreement on 0..n-1.
func TestFullRangeEqualsReference(t *testing.T) {
	gr, err := grammar.ParseString(conformanceGrammars["dyck"])
	require.NoError(t, err)
	g, err := graph.RandomSparse(40, 0.1, []string{"a", "b"}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	want := referenceFull(t, g, gr)

	for _, s := range allSolvers(t, g, gr) {
		got, err := s.Solve(g.FullRange())
		require.NoError(t, err)
		require.True(t, want.Equal(got), s.Name())
		require.Equal(t, want.Nnz(), got.Nnz(), s.Name())
	}
}

// TestConcreteScenario is the 3-vertex a·b path under S -> A B.
func TestConcreteScenario(t *testing.T) {
	g, err := graph.New(3, []graph.Edge{
		{From: 0, Label: "a", To: 1},
		{From: 1, Label: "b", To: 2},
	})
	require.NoError(t, err)
	gr, err := grammar.ParseString("S A B\nA a\nB b\n")
	require.NoError(t, err)

	ref := referenceFull(t, g, gr)
	require.Equal(t, []cfpq.Pair{{From: 0, To: 2}}, ref.Pairs("S")) // only S[0][2]

	for _, s := range allSolvers(t, g, gr) {
		r0, err := s.Solve([]int{0})
		require.NoError(t, err)
		require.True(t, r0.Reachable("S", 0, 2), s.Name())
		require.True(t, r0.Reachable("A", 0, 1), s.Name())
		require.Empty(t, r0.Pairs("B"), s.Name())

		r1, err := s.Solve([]int{1})
		require.NoError(t, err)
		require.Empty(t, r1.Pairs("S"), s.Name()) // no S-path from 1
		require.Equal(t, []cfpq.Pair{{From: 1, To: 2}}, r1.Pairs("B"), s.Name())
		require.Empty(t, r1.Pairs("A"), s.Name())
	}
}

// TestNullableOnEmptyGraph expects the diagonal without any edge.
func TestNullableOnEmptyGraph(t *testing.T) {
	g, err := graph.New(1, nil)
	require.NoError(t, err)
	gr, err := grammar.ParseString("S A A\nA\n")
	require.NoError(t, err)

	for _, s := range allSolvers(t, g, gr) {
		res, err := s.Solve([]int{0})
		require.NoError(t, err)
		require.True(t, res.Reachable("A", 0, 0), s.Name()) // nullable
		require.True(t, res.Reachable("S", 0, 0), s.Name()) // A·A of two empty words
	}
}

// TestEmptyChunk returns an empty result without iterating.
func TestEmptyChunk(t *testing.T) {
	g, err := graph.New(2, []graph.Edge{{From: 0, Label: "a", To: 1}})
	require.NoError(t, err)
	gr, err := grammar.ParseString("S S S\nS a\n")
	require.NoError(t, err)

	var rounds int
	for _, s := range allSolvers(t, g, gr, cfpq.WithRoundHook(func(int, int) { rounds++ })) {
		res, err := s.Solve(nil)
		require.NoError(t, err)
		require.Empty(t, res.Chunk())
		require.Empty(t, res.Nonterminals())
		require.Zero(t, res.Nnz())
	}
	require.Zero(t, rounds) // no round ran
}

// TestInvalidSubset rejects out-of-range and repeated vertices.
func TestInvalidSubset(t *testing.T) {
	g, err := graph.New(3, nil)
	require.NoError(t, err)
	gr, err := grammar.ParseString("S a\n")
	require.NoError(t, err)

	for _, s := range allSolvers(t, g, gr) {
		for _, chunk := range [][]int{{3}, {-1}, {0, 2, 0}} {
			_, err := s.Solve(chunk)
			require.ErrorIs(t, err, cfpq.ErrInvalidSubset, "%s %v", s.Name(), chunk)
		}
	}
}

// TestIdempotence solves the same chunk twice with fresh solvers.
func TestIdempotence(t *testing.T) {
	gr, err := grammar.ParseString(conformanceGrammars["mutual"])
	require.NoError(t, err)
	g, err := graph.RandomSparse(25, 0.15, []string{"a", "b"}, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	chunk := []int{24, 3, 17, 0}

	for _, name := range cfpq.Names() {
		s1, err := cfpq.New(name, g, gr)
		require.NoError(t, err)
		s2, err := cfpq.New(name, g, gr)
		require.NoError(t, err)

		r1, err := s1.Solve(chunk)
		require.NoError(t, err)
		r2, err := s2.Solve(chunk)
		require.NoError(t, err)
		require.True(t, r1.Equal(r2), name)
		require.Equal(t, chunk, r1.Chunk()) // rows follow chunk order
	}
}
