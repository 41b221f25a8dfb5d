package experiments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hexapawn/agent"
	"hexapawn/engine"
	"hexapawn/experiments/metrics"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Config describes a batch of automated games between the reference opponent and a learning agent.
type Config struct {
	Games      int
	Learn      bool   // reinforce the agent after every game
	Benchmark  bool   // take a benchmark sample after every game
	Transcript bool   // build a game log
	Workers    int    // games played concurrently; 0 or 1 plays them one after another
	Seed       uint64 // seeds the opponent when non-zero
}

// Summary is the outcome of a batch.
type Summary struct {
	Games     int
	Wins      int
	Benchmark int // agent benchmark at the end of the batch
	Elapsed   time.Duration
	Log       string // empty unless Config.Transcript
	Records   []metrics.GameRecord
	Metric    metrics.BatchMetric
}

type played struct {
	result    engine.Result
	benchmark int
}

// Run plays cfg.Games games, each on a fresh board, and records every one of them in the agent. Cancelling ctx
// stops the batch between games; the games finished so far stay recorded and Run returns the context error.
func Run(ctx context.Context, ai *agent.Agent, cfg Config) (Summary, error) {
	if cfg.Games <= 0 {
		return Summary{}, fmt.Errorf("games must be a positive integer, got %d", cfg.Games)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	var options []agent.Option
	if cfg.Seed != 0 {
		options = append(options, agent.WithSeed(cfg.Seed))
	}
	opponent := agent.NewOpponent(options...)

	started := time.Now()
	collector := metrics.NewCollector()
	collector.Start(workers)
	log.Info().Msgf("starting %d games with %d workers (learning: %t)...", cfg.Games, workers, cfg.Learn)

	var games []played
	var err error
	if workers == 1 {
		games, err = runSequential(ctx, ai, opponent, cfg, collector)
	} else {
		games, err = runParallel(ctx, ai, opponent, cfg, workers, collector)
	}

	summary := summarize(games, cfg, started)
	summary.Metric = collector.Complete()
	summary.Benchmark = ai.Export().Benchmark

	if err != nil {
		return summary, err
	}
	log.Info().Msgf("completed %d games, agent won %d in %s", summary.Games, summary.Wins, summary.Elapsed)
	return summary, nil
}

func runSequential(ctx context.Context, ai, opponent *agent.Agent, cfg Config, collector metrics.Collector) ([]played, error) {
	session := engine.NewSession(ai, engine.WithOpponent(opponent), engine.WithLearning(cfg.Learn), engine.WithBenchmark(cfg.Benchmark))
	games := make([]played, 0, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		if err := ctx.Err(); err != nil {
			return games, err
		}
		result, err := session.PlayAuto(cfg.Transcript)
		if err != nil {
			return games, fmt.Errorf("game %d: %w", i+1, err)
		}
		collector.AddGame(result.AIWon(), len(result.Plies))
		games = append(games, played{result: result, benchmark: ai.Export().Benchmark})
		log.Debug().Int("game", i+1).Bool("ai_won", result.AIWon()).Msg("game finished")
	}
	return games, nil
}

// runParallel plays each game with its own board, archive and random sources. Credit assignment is serialised
// by the agent, so one game's update is complete before the next one starts.
func runParallel(parent context.Context, ai, opponent *agent.Agent, cfg Config, workers int, collector metrics.Collector) ([]played, error) {
	games := make([]played, cfg.Games)
	done := make([]bool, cfg.Games)

	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(workers)
	for i := 0; i < cfg.Games; i++ {
		if ctx.Err() != nil {
			break
		}
		i := i
		white, black := opponent.Episode(), ai.Episode()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := engine.LocalGame(white, black, log.Logger).Run(cfg.Transcript)
			if err != nil {
				black.Flush()
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			score, err := black.Finish(result.AIWon(), cfg.Learn, cfg.Benchmark)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			collector.AddGame(result.AIWon(), len(result.Plies))
			games[i] = played{result: result, benchmark: score}
			done[i] = true
			return nil
		})
	}
	err := g.Wait()

	finished := make([]played, 0, cfg.Games)
	for i, ok := range done {
		if ok {
			finished = append(finished, games[i])
		}
	}
	if err == nil && len(finished) < cfg.Games {
		err = parent.Err()
	}
	return finished, err
}

func summarize(games []played, cfg Config, started time.Time) Summary {
	summary := Summary{Games: len(games), Elapsed: time.Since(started)}
	var sb strings.Builder
	if cfg.Transcript {
		fmt.Fprintf(&sb, "Automated Games Log for Hexapawn AI, Started: %s\n", started.Format(time.ANSIC))
		fmt.Fprintf(&sb, "%d total games, Training: %t\n", cfg.Games, cfg.Learn)
	}
	for i, p := range games {
		if p.result.AIWon() {
			summary.Wins++
		}
		record := metrics.GameRecord{
			ID:        i + 1,
			Winner:    p.result.Winner.String(),
			AIWon:     p.result.AIWon(),
			Plies:     len(p.result.Plies),
			Benchmark: p.benchmark,
			StartTime: p.result.StartTime,
			EndTime:   p.result.EndTime,
			Duration:  p.result.Duration,
		}
		for _, ply := range p.result.Plies {
			record.Moves = append(record.Moves, ply.Move.String())
		}
		summary.Records = append(summary.Records, record)

		if cfg.Transcript {
			fmt.Fprintf(&sb, "----- Game %d of %d -----\n", i+1, cfg.Games)
			for _, line := range p.result.Transcript {
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
		}
	}
	summary.Log = sb.String()
	return summary
}
