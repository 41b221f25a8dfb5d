package engine

import (
	"errors"
	"fmt"

	"hexapawn/agent"
	"hexapawn/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(s *Session)

// WithLearning makes finished games reinforce the agent's policy.
func WithLearning(learn bool) Option {
	return func(s *Session) {
		s.learn = learn
	}
}

// WithBenchmark controls whether every finished game takes a benchmark sample. Defaults to true; when off the
// game is only counted.
func WithBenchmark(benchmark bool) Option {
	return func(s *Session) {
		s.benchmark = benchmark
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithOpponent sets the White player used by PlayAuto. Defaults to the reference opponent policy.
func WithOpponent(opponent *agent.Agent) Option {
	return func(s *Session) {
		s.opponent = opponent
	}
}

// Turn reports what happened after a submitted move.
type Turn struct {
	Plies  []Ply
	Board  string
	Over   bool
	Winner game.Side
}

// Session owns one board and plays the learning agent as Black, against a human through Submit or against an
// opponent policy through PlayAuto. It is not safe for concurrent use.
type Session struct {
	board     game.Board
	toMove    game.Side
	over      bool
	plies     int
	ai        *agent.Agent
	opponent  *agent.Agent
	learn     bool
	benchmark bool
	logger    zerolog.Logger
}

// NewSession starts a session on a fresh board with White to move.
func NewSession(ai *agent.Agent, options ...Option) *Session {
	s := &Session{
		ai:        ai,
		benchmark: true,
		logger:    log.Logger,
	}
	for _, option := range options {
		option(s)
	}
	if s.opponent == nil {
		s.opponent = agent.NewOpponent()
	}
	s.Reset()
	return s
}

// Reset discards the current game without recording it.
func (s *Session) Reset() {
	s.board.Reset()
	s.toMove = game.White
	s.over = false
	s.plies = 0
	s.ai.Flush()
}

// Board returns a copy of the current board.
func (s *Session) Board() game.Board {
	return s.board
}

func (s *Session) ToMove() game.Side {
	return s.toMove
}

func (s *Session) Over() bool {
	return s.over
}

// Submit plays White's move and, if the game goes on, the agent's reply. An illegal move returns a
// *game.IllegalMoveError and leaves the board untouched so the caller can ask again.
func (s *Session) Submit(m game.Move) (Turn, error) {
	if s.over {
		return Turn{}, ErrGameOver
	}
	if s.toMove != game.White {
		return Turn{}, fmt.Errorf("white %w", ErrNotTurn)
	}
	if err := s.board.Play(m, game.White); err != nil {
		return Turn{}, err
	}
	s.plies++
	s.logger.Debug().Str("side", "White").Str("move", m.String()).Str("board", s.board.Encode()).Msg("moved")

	turn := Turn{Plies: []Ply{{Side: game.White, Move: m}}}
	s.toMove = game.Black
	if err := s.checkOver(); err != nil {
		return turn, err
	}
	if !s.over {
		reply, err := s.AIMove()
		if err != nil {
			return turn, err
		}
		turn.Plies = append(turn.Plies, Ply{Side: game.Black, Move: reply})
	}

	turn.Board = s.board.Encode()
	turn.Over = s.over
	if s.over {
		turn.Winner, _ = game.Winner(&s.board, s.toMove)
	}
	return turn, nil
}

// AIMove lets the agent pick, archive and play Black's move.
func (s *Session) AIMove() (game.Move, error) {
	if s.over {
		return game.Move{}, ErrGameOver
	}
	if s.toMove != game.Black {
		return game.Move{}, fmt.Errorf("black %w", ErrNotTurn)
	}
	state := s.board.Encode()
	m, err := s.ai.RecordAndPick(state)
	if err != nil {
		return game.Move{}, fmt.Errorf("agent failed to pick a move: %w", err)
	}
	// an illegal proposal means the policy table is broken; there is no sensible way to continue the game
	if err := s.board.Play(m, game.Black); err != nil {
		s.over = true
		s.ai.Flush()
		return game.Move{}, fmt.Errorf("agent policy: %w", err)
	}
	s.plies++
	s.logger.Debug().Str("side", "Black").Str("move", m.String()).Str("board", s.board.Encode()).Msg("moved")

	s.toMove = game.White
	if err := s.checkOver(); err != nil {
		return m, err
	}
	return m, nil
}

func (s *Session) checkOver() error {
	if !game.IsOver(&s.board, s.toMove) {
		return nil
	}
	s.over = true
	winner, _ := game.Winner(&s.board, s.toMove)
	return s.finish(winner == game.Black)
}

// finish records a completed game, learning first and benchmarking afterwards when enabled. The archive is
// empty afterwards.
func (s *Session) finish(aiWon bool) error {
	defer s.ai.Flush()
	if s.learn {
		if err := s.ai.LearnFromGame(aiWon); err != nil {
			return err
		}
	}
	var score int
	if s.benchmark {
		score = s.ai.SaveGame(aiWon)
	} else {
		score = s.ai.CountGame(aiWon)
	}
	s.logger.Info().Bool("ai_won", aiWon).Int("plies", s.plies).Int("benchmark", score).Msg("game recorded")
	return nil
}

// PlayAuto resets the board and plays a full game between the opponent (White, first) and the agent.
func (s *Session) PlayAuto(transcript bool) (Result, error) {
	s.Reset()
	g := LocalGame(s.opponent, s.ai, s.logger)
	result, err := g.Run(transcript)
	s.board = g.Board
	s.plies = len(result.Plies)
	s.over = true
	if err != nil {
		s.ai.Flush()
		var illegal *game.IllegalMoveError
		if errors.As(err, &illegal) {
			s.logger.Error().Err(err).Msg("policy proposed an illegal move")
		}
		return result, err
	}
	s.toMove = game.White
	if len(result.Plies)%2 == 1 {
		s.toMove = game.Black
	}
	return result, s.finish(result.AIWon())
}
