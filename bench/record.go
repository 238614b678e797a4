// SPDX-License-Identifier: MIT

// Package bench times solvers chunk by chunk, writes the timings as
// space-delimited CSV rows, exports them as Prometheus histograms and checks
// solvers against the reference fixpoint.
package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Record is the timing of one (graph, grammar, algo, chunk size) run.
type Record struct {
	RunID     uuid.UUID
	Graph     string
	Grammar   string
	Algo      string
	ChunkSize int
	Times     []time.Duration // one per chunk, in chunk order
}

// Total sums the chunk times.
func (r Record) Total() time.Duration {
	var d time.Duration
	for _, t := range r.Times {
		d += t
	}

	return d
}

// fields renders the CSV columns:
//
//	graph grammar algo chunk_size run_id t1 t2 ...
//
// Times are seconds rounded to 6 fractional digits.
func (r Record) fields() []string {
	out := make([]string, 0, 5+len(r.Times))
	out = append(out, r.Graph, r.Grammar, r.Algo, strconv.Itoa(r.ChunkSize), r.RunID.String())
	for _, t := range r.Times {
		out = append(out, FormatSeconds(t))
	}

	return out
}

// FormatSeconds renders d in seconds rounded to 6 fractional digits.
func FormatSeconds(d time.Duration) string {
	s := math.Round(d.Seconds()*1e6) / 1e6

	return strconv.FormatFloat(s, 'f', -1, 64)
}

// WriteCSV writes one space-delimited row per record.
func WriteCSV(w io.Writer, recs ...Record) error {
	cw := csv.NewWriter(w)
	cw.Comma = ' '
	for _, r := range recs {
		if err := cw.Write(r.fields()); err != nil {
			return fmt.Errorf("bench.WriteCSV: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// AppendCSV appends recs to the file at path, creating it if needed.
func AppendCSV(path string, recs ...Record) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("bench.AppendCSV: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteCSV(f, recs...)
}
