package policy

import (
	"fmt"

	"hexapawn/game"
	"hexapawn/utils"
)

// neutralScore is the raw benchmark of the untrained default table.
const neutralScore = 333

// Choice is the result of a pick.
type Choice struct {
	Move   game.Move
	Weight float64
	Index  int
}

// Pick selects a move for state. A lone candidate is played without consuming a draw; otherwise draw
// supplies a uniform value in [0, 1) and the first candidate whose running weight sum exceeds it wins.
func (t *Table) Pick(state string, draw func() float64) (Choice, error) {
	candidates, ok := t.candidates(state)
	if !ok {
		return Choice{}, &UnknownStateError{State: state}
	}

	index := 0
	if len(candidates) > 1 {
		r := draw()
		index = -1
		sum := 0.0
		for i, c := range candidates {
			sum += c.Weight
			if sum > r {
				index = i
				break
			}
		}
		if index < 0 {
			return Choice{}, &SelectionAllocationError{State: state, Draw: r, Total: sum}
		}
	}

	c := candidates[index]
	m, err := game.ParseMove(c.Move)
	if err != nil {
		return Choice{}, fmt.Errorf("state %s candidate %d: %w", state, index, err)
	}
	return Choice{Move: m, Weight: c.Weight, Index: index}, nil
}

// Reinforce replays an archive and shifts weight toward (won) or away from (lost) every archived choice.
// The chosen candidate moves by rate, each other candidate by rate/(n-1) the opposite way, and every
// touched weight is clamped to [0, 1]. States with a single candidate are skipped. The archive is checked
// against the table before anything changes.
func (t *Table) Reinforce(archive Archive, won bool, rate float64) error {
	for _, step := range archive {
		candidates, ok := t.candidates(step.State)
		if !ok {
			return &UnknownStateError{State: step.State}
		}
		if step.Index < 0 || step.Index >= len(candidates) {
			return fmt.Errorf("archived move index %d out of range for board layout %s with %d candidates", step.Index, step.State, len(candidates))
		}
	}

	factor := rate
	if !won {
		factor = -rate
	}
	for _, step := range archive {
		candidates, _ := t.candidates(step.State)
		n := len(candidates)
		if n == 1 {
			continue
		}
		share := factor / float64(n-1)
		for i := range candidates {
			if i == step.Index {
				candidates[i].Weight += factor
			} else {
				candidates[i].Weight -= share
			}
			candidates[i].Weight = utils.Clamp(candidates[i].Weight, 0, 1)
		}
	}
	return nil
}

// Score sums weight*outcome over every candidate and scales it by 1000, truncated. The untrained default
// table scores 0. The reachable range is roughly -22000 to 23000.
func (t *Table) Score() int {
	score := 0.0
	for _, e := range t.entries {
		for _, c := range e.Candidates {
			score += c.Weight * float64(c.Outcome)
		}
	}
	final := int(score * 1000)
	if final == neutralScore {
		final = 0
	}
	return final
}

// Perfect sets every winning candidate to weight 1 and every other candidate to 0.
func (t *Table) Perfect() {
	for _, e := range t.entries {
		for i := range e.Candidates {
			if e.Candidates[i].Outcome == 1 {
				e.Candidates[i].Weight = 1
			} else {
				e.Candidates[i].Weight = 0
			}
		}
	}
}
