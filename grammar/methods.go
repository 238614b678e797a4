// SPDX-License-Identifier: MIT
// Package: grammar
//
// methods.go - read-only introspection. Every slice returned is a fresh copy.

package grammar

import (
	"fmt"
	"strings"
)

// Start returns the start nonterminal (head of the first production).
func (g *Grammar) Start() string { return g.start }

// Nonterminals returns nonterminals in declaration order.
func (g *Grammar) Nonterminals() []string {
	return append([]string(nil), g.nonterms...)
}

// NumNonterminals returns |N|.
func (g *Grammar) NumNonterminals() int { return len(g.nonterms) }

// Nonterminal returns the name of nonterminal index i, or "" when out of range.
func (g *Grammar) Nonterminal(i int) string {
	if i < 0 || i >= len(g.nonterms) {
		return ""
	}

	return g.nonterms[i]
}

// Index returns the index of nonterminal name.
func (g *Grammar) Index(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// Terminals returns the terminals used by unit rules, sorted.
func (g *Grammar) Terminals() []string {
	return append([]string(nil), g.terms...)
}

// BinaryRules returns all A -> B C rules in declaration order.
func (g *Grammar) BinaryRules() []BinaryRule {
	return append([]BinaryRule(nil), g.binary...)
}

// UnitRules returns all A -> a rules in declaration order.
func (g *Grammar) UnitRules() []UnitRule {
	return append([]UnitRule(nil), g.unit...)
}

// Nullable reports whether nonterminal name derives the empty word directly.
func (g *Grammar) Nullable(name string) bool {
	i, ok := g.index[name]
	return ok && g.nullable[i]
}

// NullableIndex is Nullable addressed by index.
func (g *Grammar) NullableIndex(i int) bool {
	return i >= 0 && i < len(g.nullable) && g.nullable[i]
}

// UnitsFor returns the nonterminals producible directly from terminal.
func (g *Grammar) UnitsFor(terminal string) []string {
	heads := g.unitsByTerm[terminal]
	out := make([]string, len(heads))
	for i, h := range heads {
		out[i] = g.nonterms[h]
	}

	return out
}

// BinaryByFirst returns the binary productions whose body starts with name.
func (g *Grammar) BinaryByFirst(name string) []Production {
	i, ok := g.index[name]
	if !ok {
		return nil
	}

	return g.productionsAt(g.byFirst[i])
}

// BinaryByHead returns the binary productions with head name.
func (g *Grammar) BinaryByHead(name string) []Production {
	i, ok := g.index[name]
	if !ok {
		return nil
	}

	return g.productionsAt(g.byHead[i])
}

func (g *Grammar) productionsAt(pos []int) []Production {
	out := make([]Production, len(pos))
	for k, p := range pos {
		r := g.binary[p]
		out[k] = Production{
			Head: g.nonterms[r.Head],
			Body: []string{g.nonterms[r.Left], g.nonterms[r.Right]},
		}
	}

	return out
}

// String renders the grammar in the text format accepted by Parse, grouped
// by head in declaration order so the start symbol stays first.
func (g *Grammar) String() string {
	var b strings.Builder
	for h, name := range g.nonterms {
		for _, p := range g.byHead[h] {
			r := g.binary[p]
			fmt.Fprintf(&b, "%s %s %s\n", name, g.nonterms[r.Left], g.nonterms[r.Right])
		}
		for _, r := range g.unit {
			if r.Head == h {
				fmt.Fprintf(&b, "%s %s\n", name, r.Terminal)
			}
		}
		if g.nullable[h] {
			fmt.Fprintf(&b, "%s %s\n", name, EpsilonASCII)
		}
	}

	return b.String()
}
