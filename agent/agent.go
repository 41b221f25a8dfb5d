package agent

import (
	"fmt"
	"sync"
	"time"

	"hexapawn/game"
	"hexapawn/meta"
	"hexapawn/policy"

	"golang.org/x/exp/rand"
)

type Option func(a *Agent)

// WithLearnRate sets the weight shift applied per archived move.
func WithLearnRate(rate float64) Option {
	return func(a *Agent) {
		a.rate = rate
	}
}

// WithSeed seeds the random source used for move draws and episode seeds.
func WithSeed(seed uint64) Option {
	return func(a *Agent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// WithDraw replaces the random source of the agent's own picks. Episodes keep drawing from seeded sources.
func WithDraw(draw func() float64) Option {
	return func(a *Agent) {
		a.draw = draw
	}
}

// WithRecord starts the agent from an existing record instead of an untrained one.
func WithRecord(r Record) Option {
	return func(a *Agent) {
		a.record = r.Clone()
	}
}

// Agent is a policy-driven player. The learning agent plays Black; NewOpponent builds the fixed White player.
//
// The record is guarded by an RWMutex: picks share the read lock, learning, benchmarking and imports take the
// write lock. The agent's own archive and random source are only used from the session that drives it; parallel
// games play through per-game Episodes instead.
type Agent struct {
	mu      sync.RWMutex
	record  Record
	rate    float64
	archive policy.Archive

	rngMu sync.Mutex
	rng   *rand.Rand
	draw  func() float64
}

// New creates an untrained learning agent.
func New(options ...Option) *Agent {
	a := &Agent{
		record: NewRecord(),
		rate:   meta.DEFAULT_LEARN_RATE,
	}
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if a.draw == nil {
		a.draw = a.random
	}
	return a
}

// NewOpponent creates the reference White player. It never learns.
func NewOpponent(options ...Option) *Agent {
	return New(append([]Option{WithRecord(Record{Table: policy.OpponentTable()})}, options...)...)
}

func (a *Agent) random() float64 {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return a.rng.Float64()
}

func (a *Agent) seed() uint64 {
	a.rngMu.Lock()
	defer a.rngMu.Unlock()
	return a.rng.Uint64()
}

func (a *Agent) LearnRate() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rate
}

func (a *Agent) SetLearnRate(rate float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rate = rate
}

func (a *Agent) pick(state string, draw func() float64) (policy.Choice, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.record.Table.Pick(state, draw)
}

// PickMove selects a move for the board layout without archiving it.
func (a *Agent) PickMove(state string) (game.Move, error) {
	choice, err := a.pick(state, a.draw)
	if err != nil {
		return game.Move{}, err
	}
	return choice.Move, nil
}

// RecordAndPick selects a move for the board layout and archives the choice for learning.
func (a *Agent) RecordAndPick(state string) (game.Move, error) {
	choice, err := a.pick(state, a.draw)
	if err != nil {
		return game.Move{}, err
	}
	a.archive = append(a.archive, policy.Step{State: state, Index: choice.Index})
	return choice.Move, nil
}

// Archive returns a copy of the moves archived since the last learn or flush.
func (a *Agent) Archive() policy.Archive {
	return append(policy.Archive(nil), a.archive...)
}

// LearnFromGame reinforces every archived move with the outcome of the game and clears the archive.
// The archive is cleared even when learning fails.
func (a *Agent) LearnFromGame(won bool) error {
	archive := a.archive
	a.archive = nil
	return a.Reinforce(archive, won)
}

// Flush clears the archive without learning.
func (a *Agent) Flush() {
	a.archive = nil
}

// Reinforce applies an archive to the table with the agent's learn rate.
func (a *Agent) Reinforce(archive policy.Archive, won bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reinforce(archive, won, a.rate)
}

// ReinforceWithRate applies an archive with rate in place of the agent's learn rate. A rate of 0 leaves the
// weights as they are.
func (a *Agent) ReinforceWithRate(archive policy.Archive, won bool, rate float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reinforce(archive, won, rate)
}

func (a *Agent) reinforce(archive policy.Archive, won bool, rate float64) error {
	if err := a.record.Table.Reinforce(archive, won, rate); err != nil {
		return fmt.Errorf("learning from game: %w", err)
	}
	return nil
}

// Benchmark scores the table, stores the score and appends it to the history.
func (a *Agent) Benchmark() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.benchmark()
}

func (a *Agent) benchmark() int {
	score := a.record.Table.Score()
	a.record.Benchmark = score
	a.record.History = append(a.record.History, score)
	return score
}

// SaveGame counts a finished game and benchmarks the table.
func (a *Agent) SaveGame(won bool) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saveGame(won)
}

func (a *Agent) saveGame(won bool) int {
	a.countGame(won)
	return a.benchmark()
}

// CountGame counts a finished game without benchmarking. It returns the stored benchmark.
func (a *Agent) CountGame(won bool) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.countGame(won)
	return a.record.Benchmark
}

func (a *Agent) countGame(won bool) {
	a.record.Games++
	if won {
		a.record.Wins++
	}
}

// Perfect rewrites the table so that only winning candidates can be picked. Neutral-only layouts end up with no
// pickable candidate, so the result is a benchmark reference rather than a playable policy.
func (a *Agent) Perfect() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record.Table.Perfect()
}

// Export returns a deep copy of the agent's record.
func (a *Agent) Export() Record {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.record.Clone()
}

// Import validates r and replaces the whole record with it. An invalid record leaves the agent untouched.
func (a *Agent) Import(r Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("importing record: %w", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record = r.Clone()
	a.archive = nil
	return nil
}

// Reset returns the agent to an untrained record and the default learn rate.
func (a *Agent) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record = NewRecord()
	a.rate = meta.DEFAULT_LEARN_RATE
	a.archive = nil
}

func (a *Agent) Games() (games, wins int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.record.Games, a.record.Wins
}

// WinRate returns the share of recorded games won, 0 before any game.
func (a *Agent) WinRate() float64 {
	games, wins := a.Games()
	if games == 0 {
		return 0
	}
	return float64(wins) / float64(games)
}

func (a *Agent) HistorySummary() Summary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.record.summary()
}
