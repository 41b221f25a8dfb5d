package policy

import (
	"fmt"

	"hexapawn/game"

	"golang.org/x/exp/slices"
)

// Candidate is one move the policy may play from a state.
type Candidate struct {
	Move    string  // lookup notation, e.g. "A1>A2"
	Weight  float64 // selection probability, kept within [0, 1]
	Outcome int     // -1, 0 or 1 under optimal opposing play; read only by the benchmark
}

// Entry lists the candidates of one board encoding in their fixed order.
type Entry struct {
	State      string
	Candidates []Candidate
}

// Step is one archived choice: the state the agent faced and the index of the candidate it played.
type Step struct {
	State string
	Index int
}

// Archive is the ordered record of an agent's choices during one game.
type Archive []Step

// Table maps board encodings to candidate lists, preserving the order states were added in.
// Candidate indexes recorded during play stay valid for as long as the table is not replaced.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable builds a table from entries. A repeated state keeps its first position and takes the later candidates.
func NewTable(entries ...Entry) *Table {
	t := &Table{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		t.Set(e.State, e.Candidates)
	}
	return t
}

// Set stores the candidates of a state, appending the state if it is new.
func (t *Table) Set(state string, candidates []Candidate) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	entry := Entry{State: state, Candidates: slices.Clone(candidates)}
	if i, ok := t.index[state]; ok {
		t.entries[i] = entry
		return
	}
	t.index[state] = len(t.entries)
	t.entries = append(t.entries, entry)
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup returns a copy of the candidates stored for state.
func (t *Table) Lookup(state string) ([]Candidate, bool) {
	i, ok := t.index[state]
	if !ok {
		return nil, false
	}
	return slices.Clone(t.entries[i].Candidates), true
}

func (t *Table) candidates(state string) ([]Candidate, bool) {
	i, ok := t.index[state]
	if !ok {
		return nil, false
	}
	return t.entries[i].Candidates, true
}

// Entries returns a deep copy of every entry in insertion order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = Entry{State: e.State, Candidates: slices.Clone(e.Candidates)}
	}
	return out
}

func (t *Table) Clone() *Table {
	return NewTable(t.Entries()...)
}

// Validate checks every entry: a decodable state, at least one candidate, moves that are legal for the pawn
// on their source square, weights within [0, 1] and outcomes in {-1, 0, 1}.
func (t *Table) Validate() error {
	for _, e := range t.entries {
		board, err := game.Decode(e.State)
		if err != nil {
			return err
		}
		if len(e.Candidates) == 0 {
			return fmt.Errorf("state %s has no candidate moves", e.State)
		}
		for i, c := range e.Candidates {
			m, err := game.ParseMove(c.Move)
			if err != nil {
				return fmt.Errorf("state %s candidate %d: %w", e.State, i, err)
			}
			if err := board.Validate(m, board.At(m.From).Side()); err != nil {
				return fmt.Errorf("state %s candidate %d: %w", e.State, i, err)
			}
			if !(c.Weight >= 0 && c.Weight <= 1) {
				return fmt.Errorf("state %s candidate %d: weight %v outside [0, 1]", e.State, i, c.Weight)
			}
			if c.Outcome < -1 || c.Outcome > 1 {
				return fmt.Errorf("state %s candidate %d: outcome %d outside {-1, 0, 1}", e.State, i, c.Outcome)
			}
		}
	}
	return nil
}
