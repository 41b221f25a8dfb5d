package game

import "fmt"

// Directions reports which of the three forward moves a pawn may make.
type Directions struct {
	Left    bool // diagonal capture toward column-1
	Forward bool // advance into an empty cell
	Right   bool // diagonal capture toward column+1
}

// Directions checks the forward row of the pawn standing on sq. Directions that leave the board are false,
// as is everything when sq holds no pawn.
func (b *Board) Directions(sq Square) Directions {
	side := b.At(sq).Side()
	if side == 0 {
		return Directions{}
	}
	row := sq.Row + side.forward()
	return Directions{
		Left:    b.captures(Square{Row: row, Col: sq.Col - 1}, side),
		Forward: b.advances(Square{Row: row, Col: sq.Col}),
		Right:   b.captures(Square{Row: row, Col: sq.Col + 1}, side),
	}
}

func (b *Board) captures(target Square, side Side) bool {
	return target.valid() && b.At(target).Side() == side.Opponent()
}

func (b *Board) advances(target Square) bool {
	return target.valid() && b.At(target) == Empty
}

// Targets returns the legal destinations of the pawn on sq in left, forward, right order.
func (b *Board) Targets(sq Square) []Square {
	d := b.Directions(sq)
	if !d.Left && !d.Forward && !d.Right {
		return nil
	}
	row := sq.Row + b.At(sq).Side().forward()
	targets := make([]Square, 0, 3)
	if d.Left {
		targets = append(targets, Square{Row: row, Col: sq.Col - 1})
	}
	if d.Forward {
		targets = append(targets, Square{Row: row, Col: sq.Col})
	}
	if d.Right {
		targets = append(targets, Square{Row: row, Col: sq.Col + 1})
	}
	return targets
}

// LegalMoves returns every legal move of a side, scanning squares in row-major order.
func (b *Board) LegalMoves(s Side) []Move {
	var moves []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			from := Square{Row: row, Col: col}
			if b.At(from).Side() != s {
				continue
			}
			for _, to := range b.Targets(from) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}

// CanMove reports whether any pawn of the side has at least one legal target.
func (b *Board) CanMove(s Side) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sq := Square{Row: row, Col: col}
			if b.At(sq).Side() == s && len(b.Targets(sq)) > 0 {
				return true
			}
		}
	}
	return false
}

// IllegalMoveError is returned when a move breaks the movement rules for the side making it.
type IllegalMoveError struct {
	Move   Move
	Side   Side
	Board  string // encoding of the board the move was attempted on
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s for %s on board %s: %s", e.Move, e.Side, e.Board, e.Reason)
}

// Validate checks that m is a legal move for side s on the current board.
func (b *Board) Validate(m Move, s Side) error {
	illegal := func(reason string) error {
		return &IllegalMoveError{Move: m, Side: s, Board: b.Encode(), Reason: reason}
	}
	if !m.From.valid() || !m.To.valid() {
		return illegal("square out of range")
	}
	switch b.At(m.From).Side() {
	case s:
	case 0:
		return illegal("no pawn on source square")
	default:
		return illegal("source square holds an opposing pawn")
	}
	for _, to := range b.Targets(m.From) {
		if to == m.To {
			return nil
		}
	}
	return illegal("target is not reachable")
}

// Play validates m for side s and applies it.
func (b *Board) Play(m Move, s Side) error {
	if err := b.Validate(m, s); err != nil {
		return err
	}
	b.Apply(m)
	return nil
}
