package agent

import (
	"hexapawn/game"
	"hexapawn/policy"

	"golang.org/x/exp/rand"
)

// Episode is one game played by an agent with its own archive and random source, so that several games can
// share one agent concurrently.
type Episode struct {
	agent   *Agent
	rng     *rand.Rand
	archive policy.Archive
}

// Episode starts a game whose random source is seeded from the agent's.
func (a *Agent) Episode() *Episode {
	return &Episode{agent: a, rng: rand.New(rand.NewSource(a.seed()))}
}

// PickMove selects a move without archiving it.
func (e *Episode) PickMove(state string) (game.Move, error) {
	choice, err := e.agent.pick(state, e.rng.Float64)
	if err != nil {
		return game.Move{}, err
	}
	return choice.Move, nil
}

// RecordAndPick selects a move and archives it in the episode.
func (e *Episode) RecordAndPick(state string) (game.Move, error) {
	choice, err := e.agent.pick(state, e.rng.Float64)
	if err != nil {
		return game.Move{}, err
	}
	e.archive = append(e.archive, policy.Step{State: state, Index: choice.Index})
	return choice.Move, nil
}

// Finish records the outcome of the game, learning from the archive first when learn is set and benchmarking
// the table afterwards when benchmark is set. It returns the agent's benchmark once the game is counted. The
// whole update happens under one write lock so concurrent episodes apply their credit one after another.
// The archive is cleared in every case.
func (e *Episode) Finish(won, learn, benchmark bool) (int, error) {
	archive := e.archive
	e.archive = nil

	a := e.agent
	a.mu.Lock()
	defer a.mu.Unlock()
	if learn {
		if err := a.reinforce(archive, won, a.rate); err != nil {
			return 0, err
		}
	}
	if benchmark {
		return a.saveGame(won), nil
	}
	a.countGame(won)
	return a.record.Benchmark, nil
}

// Flush drops the archive.
func (e *Episode) Flush() {
	e.archive = nil
}
