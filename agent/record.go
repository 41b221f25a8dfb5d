package agent

import (
	"errors"
	"fmt"

	"hexapawn/policy"

	"golang.org/x/exp/slices"
)

// Record is everything persisted about a learning agent.
type Record struct {
	Games     int
	Wins      int
	Benchmark int
	History   []int // every benchmark score computed, oldest first
	Table     *policy.Table
}

// NewRecord returns a record of an untrained agent holding the default AI table.
func NewRecord() Record {
	return Record{Table: policy.DefaultTable()}
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	out.History = slices.Clone(r.History)
	if r.Table != nil {
		out.Table = r.Table.Clone()
	}
	return out
}

// Validate checks the counters and the policy table.
func (r Record) Validate() error {
	if r.Games < 0 {
		return fmt.Errorf("games count %d is negative", r.Games)
	}
	if r.Wins < 0 || r.Wins > r.Games {
		return fmt.Errorf("wins count %d outside [0, %d]", r.Wins, r.Games)
	}
	if r.Table == nil {
		return errors.New("record has no policy table")
	}
	return r.Table.Validate()
}

// Summary describes the benchmark history of a record.
type Summary struct {
	Current int
	Peak    int
	Average float64
	Count   int
}

func (r Record) summary() Summary {
	s := Summary{Current: r.Benchmark, Count: len(r.History)}
	if s.Count == 0 {
		return s
	}
	s.Peak = slices.Max(r.History)
	total := 0
	for _, score := range r.History {
		total += score
	}
	s.Average = float64(total) / float64(s.Count)
	return s
}
