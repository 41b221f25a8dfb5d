package experiments

import (
	"context"
	"fmt"

	"hexapawn/agent"
	"hexapawn/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// RunThroughput plays the same batch once per worker count on throwaway copies of ai, so the agent itself is
// never changed. It reports one metric per worker count, in the order given.
func RunThroughput(ctx context.Context, ai *agent.Agent, games int, workerCounts []int) ([]metrics.BatchMetric, error) {
	if len(workerCounts) == 0 {
		return nil, fmt.Errorf("no worker counts given")
	}
	record := ai.Export()

	log.Info().Msg("starting throughput experiment...")

	var batches []metrics.BatchMetric
	for _, workers := range workerCounts {
		log.Info().Msgf("starting batch of %d games with %d workers...", games, workers)

		sparring := agent.New(agent.WithRecord(record), agent.WithLearnRate(ai.LearnRate()))
		summary, err := Run(ctx, sparring, Config{Games: games, Workers: workers})
		if err != nil {
			return batches, fmt.Errorf("batch with %d workers: %w", workers, err)
		}
		batches = append(batches, summary.Metric)

		log.Info().Msgf("completed batch with %d workers: %.0f games/s", workers, summary.Metric.GamesPerSecond())
	}

	log.Info().Msg("completed throughput experiment")
	return batches, nil
}
