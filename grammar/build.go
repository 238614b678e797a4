// SPDX-License-Identifier: MIT
// Package: grammar
//
// build.go - validation and indexing of CNF productions.
//
// Contract:
//   - at least one production; no empty head.
//   - heads and terminals contain no whitespace and no '#', so String()
//     parses back to the same grammar.
//   - body arity 0, 1 or 2; a single epsilon symbol counts as arity 0.
//   - unit body must be a terminal (not a declared head).
//   - binary body must consist of declared heads.
//   - duplicates are collapsed; declaration order of heads is preserved.

package grammar

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

const methodBuild = "Build"

// located pairs a production with its 1-based source line (0 = unknown).
type located struct {
	p    Production
	line int
}

// Build validates productions and returns the indexed grammar.
// Returns an error wrapping ErrMalformedGrammar on the first violation.
func Build(productions ...Production) (*Grammar, error) {
	ls := make([]located, len(productions))
	for i, p := range productions {
		ls[i] = located{p: p}
	}

	return build(ls)
}

// malformed formats a violation, prefixing the source line when known.
func malformed(l located, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if l.line > 0 {
		return fmt.Errorf("%s: line %d: %s: %w", methodBuild, l.line, msg, ErrMalformedGrammar)
	}

	return fmt.Errorf("%s: %s: %w", methodBuild, msg, ErrMalformedGrammar)
}

func build(ls []located) (*Grammar, error) {
	if len(ls) == 0 {
		return nil, malformed(located{}, "no productions")
	}

	g := &Grammar{
		index:       make(map[string]int),
		unitsByTerm: make(map[string][]int),
		byFirst:     make(map[int][]int),
		byHead:      make(map[int][]int),
	}

	// 1) Declare every head so bodies can reference later heads.
	for _, l := range ls {
		head := strings.TrimSpace(l.p.Head)
		if head == "" {
			return nil, malformed(l, "empty head")
		}
		if !plainSymbol(head) {
			return nil, malformed(l, "head %q contains whitespace or %q", head, commentMark)
		}
		if IsEpsilon(head) {
			return nil, malformed(l, "epsilon %q used as a head", head)
		}
		if _, ok := g.index[head]; !ok {
			g.index[head] = len(g.nonterms)
			g.nonterms = append(g.nonterms, head)
		}
	}
	g.start = g.nonterms[0]
	g.nullable = make([]bool, len(g.nonterms))

	// 2) Classify bodies.
	seenBin := make(map[BinaryRule]struct{})
	seenUnit := make(map[UnitRule]struct{})
	terms := make(map[string]struct{})
	for _, l := range ls {
		h := g.index[strings.TrimSpace(l.p.Head)]
		body := l.p.Body
		if len(body) == 1 && IsEpsilon(body[0]) {
			body = nil
		}

		switch len(body) {
		case 0:
			g.nullable[h] = true

		case 1:
			sym := body[0]
			if sym == "" {
				return nil, malformed(l, "empty terminal")
			}
			if !plainSymbol(sym) {
				return nil, malformed(l, "terminal %q contains whitespace or %q", sym, commentMark)
			}
			if _, isNT := g.index[sym]; isNT {
				return nil, malformed(l, "unit body %q is a nonterminal, want a terminal", sym)
			}
			r := UnitRule{Head: h, Terminal: sym}
			if _, dup := seenUnit[r]; dup {
				continue
			}
			seenUnit[r] = struct{}{}
			g.unit = append(g.unit, r)
			g.unitsByTerm[sym] = append(g.unitsByTerm[sym], h)
			terms[sym] = struct{}{}

		case 2:
			left, okL := g.index[body[0]]
			if !okL {
				return nil, malformed(l, "undeclared nonterminal %q", body[0])
			}
			right, okR := g.index[body[1]]
			if !okR {
				return nil, malformed(l, "undeclared nonterminal %q", body[1])
			}
			r := BinaryRule{Head: h, Left: left, Right: right}
			if _, dup := seenBin[r]; dup {
				continue
			}
			seenBin[r] = struct{}{}
			pos := len(g.binary)
			g.binary = append(g.binary, r)
			g.byFirst[left] = append(g.byFirst[left], pos)
			g.byHead[h] = append(g.byHead[h], pos)

		default:
			return nil, malformed(l, "body arity %d, want 0, 1 or 2", len(body))
		}
	}

	// 3) Stable terminal order for deterministic introspection.
	g.terms = make([]string, 0, len(terms))
	for t := range terms {
		g.terms = append(g.terms, t)
	}
	sort.Strings(g.terms)

	return g, nil
}

// plainSymbol reports whether sym is one token of the text form.
func plainSymbol(sym string) bool {
	return sym != "" &&
		!strings.Contains(sym, commentMark) &&
		strings.IndexFunc(sym, unicode.IsSpace) < 0
}
