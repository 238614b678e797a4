package cfpq_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/cfpq/cfpq"
	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/graph"
)

var sinkResult *cfpq.Result

func benchInstance(b *testing.B, n int) (*graph.LabeledGraph, *grammar.Grammar) {
	b.Helper()
	gr, err := grammar.ParseString(conformanceGrammars["dyck"])
	if err != nil {
		b.Fatal(err)
	}
	g, err := graph.RandomSparse(n, 2.0/float64(n), []string{"a", "b"}, rand.New(rand.NewSource(1)))
	if err != nil {
		b.Fatal(err)
	}

	return g, gr
}

func benchSolver(b *testing.B, name string, chunkSize int) {
	g, gr := benchInstance(b, 256)
	s, err := cfpq.New(name, g, gr)
	if err != nil {
		b.Fatal(err)
	}
	chunks, err := g.Chunkify(chunkSize)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkResult, err = s.Solve(chunks[i%len(chunks)])
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReferenceFull(b *testing.B) { benchSolver(b, cfpq.AlgoReference, 256) }
func BenchmarkBruteChunk1(b *testing.B)   { benchSolver(b, cfpq.AlgoBrute, 1) }
func BenchmarkSmartChunk1(b *testing.B)   { benchSolver(b, cfpq.AlgoSmart, 1) }
func BenchmarkSmartChunk32(b *testing.B)  { benchSolver(b, cfpq.AlgoSmart, 32) }
func BenchmarkOptChunk1(b *testing.B)     { benchSolver(b, cfpq.AlgoOpt, 1) }
func BenchmarkOptChunk32(b *testing.B)    { benchSolver(b, cfpq.AlgoOpt, 32) }
