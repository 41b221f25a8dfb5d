package engine

import (
	"errors"
	"time"

	"hexapawn/game"
)

var (
	// ErrTurnLimit means a game ran past meta.MAX_TURNS plies, which only a corrupted policy can cause.
	ErrTurnLimit = errors.New("game exceeded the turn limit")
	ErrGameOver  = errors.New("game is over")
	ErrNotTurn   = errors.New("not this side's turn")
)

// Picker chooses a move for a board layout.
type Picker interface {
	PickMove(state string) (game.Move, error)
}

// Recorder chooses a move for a board layout and archives the choice for learning.
type Recorder interface {
	RecordAndPick(state string) (game.Move, error)
}

// Ply is one move made during a game.
type Ply struct {
	Side game.Side
	Move game.Move
}

// Result describes a finished game.
type Result struct {
	Winner     game.Side
	Plies      []Ply
	Board      string // final encoding
	Transcript []string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

// AIWon reports whether the learning side (Black) won.
func (r Result) AIWon() bool {
	return r.Winner == game.Black
}

// commentary renders a ply the way game logs describe it. White is the reference player.
func commentary(p Ply) string {
	if p.Side == game.White {
		return "Master Player has moved from " + p.Move.From.String() + " to " + p.Move.To.String()
	}
	return "Opponent has moved from " + p.Move.From.String() + " to " + p.Move.To.String()
}

func verdict(winner game.Side) string {
	if winner == game.Black {
		return "Computer Won."
	}
	return "Master Player Won."
}
