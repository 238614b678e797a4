package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// workspace writes a graph, a grammar, a manifest and a config into a temp dir.
type workspace struct {
	dir, graph, grammar, config, csv, metrics string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	w := workspace{
		dir:     dir,
		graph:   filepath.Join(dir, "path.txt"),
		grammar: filepath.Join(dir, "an_bn.cnf"),
		config:  filepath.Join(dir, "cfpq.yaml"),
		csv:     filepath.Join(dir, "results.csv"),
		metrics: filepath.Join(dir, "metrics.prom"),
	}
	write := func(p, body string) { require.NoError(t, os.WriteFile(p, []byte(body), 0o600)) }
	write(w.graph, "0 a 1\n1 a 2\n2 b 3\n3 b 4\n")
	write(w.grammar, "S A B\nS A S1\nS1 S B\nA a\nB b\n")
	write(filepath.Join(dir, "corpus.yaml"), "cases:\n  - graph: path.txt\n    grammars: [an_bn.cnf]\n")
	write(w.config, strings.Join([]string{
		"algo: smart",
		"chunk_sizes: [1, 2]",
		"chunk_count: 2",
		"csv: " + w.csv,
		"metrics: " + w.metrics,
		"manifest: " + filepath.Join(dir, "corpus.yaml"),
		"log:",
		"  level: error",
	}, "\n"))

	return w
}

// run executes the command tree and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()

	return out.String(), err
}

// TestSolveCommand prints pairs of the start symbol.
func TestSolveCommand(t *testing.T) {
	w := newWorkspace(t)

	out, err := run(t, "solve", w.graph, w.grammar, "--config", w.config)
	require.NoError(t, err)
	require.Equal(t, "0 4\n1 3\n", out)

	out, err = run(t, "solve", w.graph, w.grammar, "--config", w.config,
		"--algo", "brute", "--sources", "1", "--nonterminal", "A")
	require.NoError(t, err)
	require.Equal(t, "1 2\n", out)

	out, err = run(t, "solve", w.graph, w.grammar, "--config", w.config, "--count")
	require.NoError(t, err)
	require.Equal(t, "2\n", out)

	_, err = run(t, "solve", w.graph, w.grammar, "--config", w.config, "--nonterminal", "X")
	require.Error(t, err)

	_, err = run(t, "solve", w.graph, w.grammar, "--config", w.config, "--algo", "matrix")
	require.Error(t, err)
}

// TestVerifyCommand checks explicit files and manifest cases.
func TestVerifyCommand(t *testing.T) {
	w := newWorkspace(t)

	out, err := run(t, "verify", w.graph, w.grammar, "--config", w.config, "--algo", "opt")
	require.NoError(t, err)
	require.Equal(t, "ok path/an_bn opt chunks=3 size=2\n", out) // 5 vertices, chunk_count 2

	out, err = run(t, "verify", "--config", w.config, "--only", "an_bn")
	require.NoError(t, err)
	require.Equal(t, "ok path/an_bn smart chunks=3 size=2\n", out)

	_, err = run(t, "verify", w.graph, "--config", w.config)
	require.Error(t, err) // a graph without a grammar
}

// TestBenchCommand appends CSV rows and writes the metrics dump.
func TestBenchCommand(t *testing.T) {
	w := newWorkspace(t)

	out, err := run(t, "bench", "--config", w.config)
	require.NoError(t, err)
	require.Contains(t, out, "path/an_bn smart size=1 chunks=5")
	require.Contains(t, out, "path/an_bn smart size=2 chunks=3")

	data, err := os.ReadFile(w.csv)
	require.NoError(t, err)
	rows := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, rows, 2)
	require.True(t, strings.HasPrefix(rows[0], "path an_bn smart 1 "), rows[0])
	require.Len(t, strings.Fields(rows[0]), 5+5) // five chunk times

	prom, err := os.ReadFile(w.metrics)
	require.NoError(t, err)
	require.Contains(t, string(prom), "cfpq_chunk_solve_seconds")
}

// TestConfigErrors surfaces invalid configuration before running.
func TestConfigErrors(t *testing.T) {
	w := newWorkspace(t)
	_, err := run(t, "solve", w.graph, w.grammar, "--config", filepath.Join(w.dir, "missing.yaml"))
	require.Error(t, err)

	_, err = run(t, "solve", w.graph, w.grammar, "--config", w.config, "--workers", "-1")
	require.Error(t, err)
}
