// SPDX-License-Identifier: MIT
// Package: grammar
//
// parse.go - text form of a CNF grammar.
//
// Format (one production per line, whitespace separated):
//
//	S A B      binary   S -> A B
//	A a        unit     A -> a
//	S eps      nullable S -> ε   (a bare "S" is accepted too)
//
// Blank lines and everything after '#' are ignored. The first production's
// head is the start symbol.

package grammar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const commentMark = "#"

// Parse reads a grammar in text form. Syntax and CNF violations are reported
// with their line number and wrap ErrMalformedGrammar; read failures are
// returned as-is.
func Parse(r io.Reader) (*Grammar, error) {
	var ls []located
	sc := bufio.NewScanner(r)
	line := 0
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
		ls = append(ls, located{
			p:    Production{Head: fields[0], Body: fields[1:]},
			line: line,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grammar: read: %w", err)
	}

	return build(ls)
}

// ParseString is Parse over an in-memory text.
func ParseString(s string) (*Grammar, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile opens path and parses it.
func ParseFile(path string) (*Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("grammar: open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}
