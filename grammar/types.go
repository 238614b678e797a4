// Package grammar defines the immutable Chomsky Normal Form grammar consumed
// by the CFPQ solvers, together with its builder and text parser.
//
// A grammar holds three disjoint production sets:
//
//	binary:   A -> B C   (B, C nonterminals)
//	unit:     A -> a     (a terminal, i.e. an edge label)
//	nullable: A -> ε
//
// Nonterminals are exactly the heads of productions; every other symbol is a
// terminal. The start symbol is the head of the first production.
//
// Errors:
//
//	ErrMalformedGrammar - a production violates CNF shape or names an
//	                      undeclared nonterminal.
package grammar

import "errors"

// ErrMalformedGrammar is returned when input cannot form a CNF grammar.
// Build and Parse wrap it with the offending production or line.
var ErrMalformedGrammar = errors.New("grammar: malformed CNF grammar")

// Epsilon spellings accepted as the body of a nullable production.
const (
	EpsilonASCII = "eps"
	EpsilonUTF8  = "ε"
)

// IsEpsilon reports whether sym denotes the empty word.
func IsEpsilon(sym string) bool {
	return sym == EpsilonASCII || sym == EpsilonUTF8
}

// Production is one rule in source form: Head -> Body.
// A body of length 0 (or a single epsilon symbol) is nullable, length 1 is a
// unit rule, length 2 is a binary rule.
type Production struct {
	Head string
	Body []string
}

// BinaryRule is A -> B C addressed by nonterminal index (see Grammar.Index).
type BinaryRule struct {
	Head, Left, Right int
}

// UnitRule is A -> a with A addressed by index and a by label.
type UnitRule struct {
	Head     int
	Terminal string
}

// Grammar is an immutable CNF grammar. All accessors return copies, so a
// *Grammar is safe to share across goroutines.
type Grammar struct {
	start    string
	nonterms []string       // declaration order (first appearance as head)
	index    map[string]int // nonterminal -> position in nonterms
	terms    []string       // sorted

	binary   []BinaryRule
	unit     []UnitRule
	nullable []bool // by nonterminal index

	unitsByTerm map[string][]int // terminal -> heads producible directly
	byFirst     map[int][]int    // Left -> positions in binary
	byHead      map[int][]int    // Head -> positions in binary
}
