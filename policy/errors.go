package policy

import "fmt"

// UnknownStateError means a board encoding is missing from the table. The tables enumerate every state
// reachable in play, so this points at a data or logic defect.
type UnknownStateError struct {
	State string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("board layout %s is not in the policy table", e.State)
}

// SelectionAllocationError means the cumulative weight walk never passed the random draw, which happens
// when a state's weights sum to less than the draw.
type SelectionAllocationError struct {
	State string
	Draw  float64
	Total float64
}

func (e *SelectionAllocationError) Error() string {
	return fmt.Sprintf("no move allocated for random value %v on board layout %s (weights sum to %v)", e.Draw, e.State, e.Total)
}
