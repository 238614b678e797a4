// SPDX-License-Identifier: MIT
// Package: graph
//
// parse.go - edge-list text form, one "src label dst" triple per line.
//
// Contract:
//   - n is derived as max vertex id + 1 (0 for an input with no edges).
//   - blank lines and '#' comments are skipped.
//   - ParseFile decompresses inputs ending in ".gz".

package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const (
	gzipSuffix  = ".gz"
	commentMark = "#"
	edgeFields  = 3
)

// Parse reads an edge list. Lines that do not hold exactly three fields, or
// whose endpoints are not non-negative integers, yield ErrMalformedGraph with
// the line number.
func Parse(r io.Reader) (*LabeledGraph, error) {
	var (
		edges []Edge
		maxID = -1
		line  int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.Index(text, commentMark); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != edgeFields {
			return nil, fmt.Errorf("graph: line %d: %d fields, want %d: %w",
				line, len(fields), edgeFields, ErrMalformedGraph)
		}
		from, err := parseVertex(fields[0])
		if err != nil {
			return nil, fmt.Errorf("graph: line %d: source: %w", line, err)
		}
		to, err := parseVertex(fields[2])
		if err != nil {
			return nil, fmt.Errorf("graph: line %d: target: %w", line, err)
		}
		if from > maxID {
			maxID = from
		}
		if to > maxID {
			maxID = to
		}
		edges = append(edges, Edge{From: from, Label: fields[1], To: to})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("graph: read: %w", err)
	}

	return New(maxID+1, edges)
}

// parseVertex converts a vertex token, rejecting negatives and non-integers.
func parseVertex(tok string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("vertex %q: %v: %w", tok, err, ErrMalformedGraph)
	}
	if v < 0 {
		return 0, fmt.Errorf("vertex %d < 0: %w", v, ErrMalformedGraph)
	}

	return v, nil
}

// ParseString is Parse over an in-memory text.
func ParseString(s string) (*LabeledGraph, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile opens path, transparently gunzips ".gz" files, and parses it.
func ParseFile(path string) (*LabeledGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graph: open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, gzipSuffix) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("graph: gunzip %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	g, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// WriteTo renders g as an edge list accepted by Parse.
// Isolated trailing vertices are not representable and are dropped on re-parse.
func (g *LabeledGraph) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, e := range g.Edges() {
		n, err := fmt.Fprintf(bw, "%d %s %d\n", e.From, e.Label, e.To)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, bw.Flush()
}
