package corpus_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cfpq/corpus"
)

// writeFile creates dir/name with body and returns its path.
func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

// TestLoadResolvesCases expands entries relative to the manifest root.
func TestLoadResolvesCases(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "data/graphs/skos.txt", "0 a 1\n1 b 2\n")
	writeFile(t, dir, "data/grammars/an_bn.cnf", "S A B\nA a\nB b\n")
	writeFile(t, dir, "data/grammars/closure.cnf", "S S S\nS a\n")
	path := writeFile(t, dir, "corpus.yaml", `
root: data
cases:
  - graph: graphs/skos.txt
    grammars: [grammars/an_bn.cnf, grammars/closure.cnf]
`)

	m, err := corpus.Load(path)
	require.NoError(t, err)

	root := filepath.Join(dir, "data")
	want := []corpus.Case{
		{
			GraphPath:   filepath.Join(root, "graphs/skos.txt"),
			GrammarPath: filepath.Join(root, "grammars/an_bn.cnf"),
			GraphName:   "skos",
			GrammarName: "an_bn",
		},
		{
			GraphPath:   filepath.Join(root, "graphs/skos.txt"),
			GrammarPath: filepath.Join(root, "grammars/closure.cnf"),
			GraphName:   "skos",
			GrammarName: "closure",
		},
	}
	if diff := cmp.Diff(want, m.Cases()); diff != "" {
		t.Fatalf("cases mismatch (-want +got):\n%s", diff)
	}

	g, gr, err := m.Cases()[0].Open()
	require.NoError(t, err)
	require.Equal(t, 3, g.MatricesSize())
	require.Equal(t, "S", gr.Start())
	require.Equal(t, "skos/an_bn", m.Cases()[0].String())
}

// TestDecodeErrors covers empty, unknown-key and incomplete manifests.
func TestDecodeErrors(t *testing.T) {
	_, err := corpus.Decode(strings.NewReader(""))
	require.ErrorIs(t, err, corpus.ErrEmptyManifest)

	_, err = corpus.Decode(strings.NewReader("cases: []\n"))
	require.ErrorIs(t, err, corpus.ErrEmptyManifest)

	_, err = corpus.Decode(strings.NewReader("cases:\n  - graph: g.txt\n    grammar: x\n"))
	require.ErrorIs(t, err, corpus.ErrMalformedManifest) // unknown key

	_, err = corpus.Decode(strings.NewReader("cases:\n  - grammars: [x]\n"))
	require.ErrorIs(t, err, corpus.ErrMalformedManifest)

	_, err = corpus.Decode(strings.NewReader("cases:\n  - graph: g.txt\n"))
	require.ErrorIs(t, err, corpus.ErrMalformedManifest)

	_, err = corpus.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestOpenReportsCase names the failing instance.
func TestOpenReportsCase(t *testing.T) {
	c := corpus.Case{GraphPath: "/nonexistent/g.txt", GraphName: "g", GrammarName: "h"}
	_, _, err := c.Open()
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), "g/h")
}

// TestNameAndFilter checks naming and selection helpers.
func TestNameAndFilter(t *testing.T) {
	require.Equal(t, "go", corpus.Name("/x/go.txt.gz"))
	require.Equal(t, "dyck", corpus.Name("dyck.cnf"))
	require.Equal(t, "plain", corpus.Name("plain"))

	cases := []corpus.Case{
		{GraphName: "a", GrammarName: "x"},
		{GraphName: "b", GrammarName: "y"},
	}
	require.Len(t, corpus.Filter(cases), 2)
	require.Equal(t, cases[1:], corpus.Filter(cases, "y"))
	require.Empty(t, corpus.Filter(cases, "zzz"))
}
