// SPDX-License-Identifier: MIT

// Command cfpq solves, verifies and benchmarks context-free path queries.
//
//	cfpq solve GRAPH GRAMMAR [--sources 0,4] [--nonterminal S]
//	cfpq verify [GRAPH GRAMMAR] [--only name]
//	cfpq bench  [GRAPH GRAMMAR] [--only name]
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
