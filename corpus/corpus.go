// SPDX-License-Identifier: MIT

// Package corpus enumerates named (graph, grammar) benchmark instances from a
// YAML manifest:
//
//	root: data                  # optional, relative to the manifest
//	cases:
//	  - graph: graphs/go.txt.gz
//	    grammars: [grammars/an_bn.cnf, grammars/dyck.cnf]
//
// Every (graph, grammar) pair of a case is one Case. Names are file base
// names stripped of ".gz" and one further extension.
package corpus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cfpq/grammar"
	"github.com/katalvlaran/cfpq/graph"
)

// Sentinel errors for manifest loading.
var (
	// ErrMalformedManifest is returned for undecodable YAML, unknown keys or
	// entries missing a graph or grammars.
	ErrMalformedManifest = errors.New("corpus: malformed manifest")

	// ErrEmptyManifest is returned when a manifest lists no cases.
	ErrEmptyManifest = errors.New("corpus: manifest lists no cases")
)

// Entry is one manifest item: a graph and the grammars to query it with.
type Entry struct {
	Graph    string   `yaml:"graph"`
	Grammars []string `yaml:"grammars"`
}

// Manifest is the decoded file. Paths are resolved against Root.
type Manifest struct {
	Root    string  `yaml:"root"`
	Entries []Entry `yaml:"cases"`
}

// Case is one resolved (graph, grammar) instance.
type Case struct {
	GraphPath   string
	GrammarPath string
	GraphName   string
	GrammarName string
}

// String renders "graph/grammar".
func (c Case) String() string { return c.GraphName + "/" + c.GrammarName }

// Open parses both files of the case.
func (c Case) Open() (*graph.LabeledGraph, *grammar.Grammar, error) {
	g, err := graph.ParseFile(c.GraphPath)
	if err != nil {
		return nil, nil, fmt.Errorf("case %s: %w", c, err)
	}
	gr, err := grammar.ParseFile(c.GrammarPath)
	if err != nil {
		return nil, nil, fmt.Errorf("case %s: %w", c, err)
	}

	return g, gr, nil
}

// Load reads the manifest at path. A relative Root is taken relative to the
// manifest's directory; an empty Root means that directory.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus.Load: %w", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("corpus.Load %s: %w", path, err)
	}
	if !filepath.IsAbs(m.Root) {
		m.Root = filepath.Join(filepath.Dir(path), m.Root)
	}

	return m, nil
}

// Decode parses and validates a manifest. Unknown keys are rejected.
func Decode(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyManifest
		}
		return nil, fmt.Errorf("%v: %w", err, ErrMalformedManifest)
	}
	if len(m.Entries) == 0 {
		return nil, ErrEmptyManifest
	}
	for i, e := range m.Entries {
		if strings.TrimSpace(e.Graph) == "" {
			return nil, fmt.Errorf("cases[%d]: missing graph: %w", i, ErrMalformedManifest)
		}
		if len(e.Grammars) == 0 {
			return nil, fmt.Errorf("cases[%d] (%s): no grammars: %w", i, e.Graph, ErrMalformedManifest)
		}
	}

	return &m, nil
}

// Cases expands the manifest into (graph, grammar) pairs in file order.
func (m *Manifest) Cases() []Case {
	var out []Case
	for _, e := range m.Entries {
		gp := m.resolve(e.Graph)
		for _, gr := range e.Grammars {
			grp := m.resolve(gr)
			out = append(out, Case{
				GraphPath:   gp,
				GrammarPath: grp,
				GraphName:   Name(gp),
				GrammarName: Name(grp),
			})
		}
	}

	return out
}

// Filter keeps the cases whose graph or grammar name equals one of names.
// No names keeps everything.
func Filter(cases []Case, names ...string) []Case {
	if len(names) == 0 {
		return cases
	}
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	var out []Case
	for _, c := range cases {
		_, g := want[c.GraphName]
		_, gr := want[c.GrammarName]
		if g || gr {
			out = append(out, c)
		}
	}

	return out
}

func (m *Manifest) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(m.Root, p)
}

// Name returns the base name of path without ".gz" and one extension.
func Name(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")

	return strings.TrimSuffix(base, filepath.Ext(base))
}
