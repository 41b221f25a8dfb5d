package engine

import (
	"fmt"
	"time"

	"hexapawn/game"
	"hexapawn/meta"

	"github.com/rs/zerolog"
)

// Game runs one automated game: White picks from a fixed policy, Black records its choices for learning.
type Game struct {
	Board  game.Board
	White  Picker
	Black  Recorder
	Logger zerolog.Logger
}

// LocalGame sets up a game on a fresh board.
func LocalGame(white Picker, black Recorder, logger zerolog.Logger) *Game {
	return &Game{
		Board:  game.NewBoard(),
		White:  white,
		Black:  black,
		Logger: logger,
	}
}

// Run plays until the board is terminal. A player proposing an illegal move aborts the game with a
// *game.IllegalMoveError naming the move and the board.
func (g *Game) Run(transcript bool) (Result, error) {
	result := Result{StartTime: time.Now()}
	toMove := game.White

	g.Logger.Debug().Str("board", g.Board.Encode()).Msg("game started")

	for !game.IsOver(&g.Board, toMove) {
		if len(result.Plies) >= meta.MAX_TURNS {
			return result, fmt.Errorf("%w after %d plies on board %s", ErrTurnLimit, len(result.Plies), g.Board.Encode())
		}

		state := g.Board.Encode()
		var m game.Move
		var err error
		if toMove == game.White {
			m, err = g.White.PickMove(state)
		} else {
			m, err = g.Black.RecordAndPick(state)
		}
		if err != nil {
			return result, fmt.Errorf("%s failed to pick a move: %w", toMove, err)
		}
		if err := g.Board.Play(m, toMove); err != nil {
			return result, fmt.Errorf("%s policy: %w", toMove, err)
		}

		ply := Ply{Side: toMove, Move: m}
		result.Plies = append(result.Plies, ply)
		if transcript {
			result.Transcript = append(result.Transcript, commentary(ply))
		}
		g.Logger.Debug().Str("side", toMove.String()).Str("move", m.String()).Str("board", g.Board.Encode()).Msg("moved")

		toMove = toMove.Opponent()
	}

	result.Winner, _ = game.Winner(&g.Board, toMove)
	result.Board = g.Board.Encode()
	if transcript {
		result.Transcript = append(result.Transcript, verdict(result.Winner))
	}
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	g.Logger.Debug().Str("winner", result.Winner.String()).Int("plies", len(result.Plies)).Msg("game over")
	return result, nil
}
