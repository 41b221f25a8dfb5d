package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"hexapawn/agent"
	"hexapawn/config"
	"hexapawn/experiments"
	"hexapawn/experiments/metrics"
	"hexapawn/meta"
	"hexapawn/store"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: hexapawn <command> [flags]

commands:
  train       play automated games and learn from them
  test        play automated games without learning
  bench       print the benchmark history, -sample records a new score first
  perfect     write a policy that only plays winning moves
  show        print the board and the policy table
  export      copy the policy to -out
  import      validate a policy file and store it at -policy
  throughput  compare batch speed across worker counts
`

type options struct {
	games     int
	policy    string
	out       string
	learnRate float64
	workers   int
	seed      uint64
	logPath   string
	csv       bool
	benchmark bool
	sample    bool
	results   string
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}).Level(cfg.LogLevel)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], cfg, os.Stdout); err != nil {
		log.Error().Err(err).Msgf("%s failed", os.Args[1])
		stop()
		os.Exit(1)
	}
}

func parse(command string, args []string, cfg config.Config) (options, []string, error) {
	opts := options{results: cfg.ResultsDir}
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.IntVar(&opts.games, "games", meta.DEFAULT_GAMES, "number of games to play")
	fs.StringVar(&opts.policy, "policy", cfg.PolicyPath, "policy location: a .hexai file, or a .sqlite/.db database with an optional #name")
	fs.StringVar(&opts.out, "out", "", "destination for export and perfect (defaults to -policy)")
	fs.Float64Var(&opts.learnRate, "learn-rate", cfg.LearnRate, "weight shift per archived move")
	fs.IntVar(&opts.workers, "workers", cfg.Workers, "games played concurrently")
	fs.Uint64Var(&opts.seed, "seed", cfg.Seed, "random seed, 0 for a time based seed")
	fs.StringVar(&opts.logPath, "log", "", "append a game log to this .hexlog file")
	fs.BoolVar(&opts.csv, "csv", false, "write game records and benchmark history under the results directory")
	fs.BoolVar(&opts.benchmark, "benchmark", true, "benchmark the policy after every game of a batch")
	fs.BoolVar(&opts.sample, "sample", false, "bench: score the policy and store the sample before printing")
	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}
	if err := config.ValidateLearnRate(opts.learnRate); err != nil {
		return opts, nil, fmt.Errorf("-learn-rate: %w", err)
	}
	if opts.out == "" {
		opts.out = opts.policy
	}
	return opts, fs.Args(), nil
}

func run(ctx context.Context, command string, args []string, cfg config.Config, stdout io.Writer) error {
	opts, rest, err := parse(command, args, cfg)
	if err != nil {
		return err
	}

	switch command {
	case "train", "test":
		return runBatch(ctx, opts, command == "train", stdout)
	case "bench":
		return runBench(ctx, opts, stdout)
	case "perfect":
		return runPerfect(ctx, opts, stdout)
	case "show":
		return runShow(ctx, opts, stdout)
	case "export":
		return runExport(ctx, opts, stdout)
	case "import":
		if len(rest) != 1 {
			return errors.New("import needs exactly one source file")
		}
		return runImport(ctx, opts, rest[0], stdout)
	case "throughput":
		return runThroughput(ctx, opts, stdout)
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func open(location string) (store.Store, func(), error) {
	s, err := store.Open(location)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {}
	if c, ok := s.(io.Closer); ok {
		closer = func() {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msgf("failed to close %s", location)
			}
		}
	}
	return s, closer, nil
}

// loadAgent builds an agent from the record at opts.policy, starting untrained when nothing is stored yet.
func loadAgent(ctx context.Context, s store.Store, opts options) (*agent.Agent, error) {
	agentOptions := []agent.Option{agent.WithLearnRate(opts.learnRate)}
	if opts.seed != 0 {
		agentOptions = append(agentOptions, agent.WithSeed(opts.seed))
	}
	ai := agent.New(agentOptions...)

	r, err := s.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn().Msgf("no policy at %s, starting from the default table", opts.policy)
		return ai, nil
	}
	if err != nil {
		return nil, err
	}
	if err := ai.Import(r); err != nil {
		return nil, err
	}
	return ai, nil
}

func save(ctx context.Context, location string, r agent.Record) error {
	s, closer, err := open(location)
	if err != nil {
		return err
	}
	defer closer()
	if err := s.Save(ctx, r); err != nil {
		return err
	}
	log.Info().Str("location", location).Int("games", r.Games).Int("benchmark", r.Benchmark).Msg("policy saved")
	return nil
}

func runBatch(ctx context.Context, opts options, learn bool, stdout io.Writer) error {
	s, closer, err := open(opts.policy)
	if err != nil {
		return err
	}
	defer closer()
	ai, err := loadAgent(ctx, s, opts)
	if err != nil {
		return err
	}

	summary, runErr := experiments.Run(ctx, ai, experiments.Config{
		Games:      opts.games,
		Learn:      learn,
		Benchmark:  opts.benchmark,
		Transcript: opts.logPath != "",
		Workers:    opts.workers,
		Seed:       opts.seed,
	})
	if runErr != nil && summary.Games == 0 {
		return runErr
	}

	// games that finished before a cancellation are kept
	if err := s.Save(context.WithoutCancel(ctx), ai.Export()); err != nil {
		return err
	}
	if opts.logPath != "" {
		if err := metrics.AppendLog(opts.logPath, summary.Log); err != nil {
			return err
		}
	}
	if opts.csv {
		name := "testing"
		if learn {
			name = "training"
		}
		if err := writeResults(opts.results, name, summary, ai.Export().History); err != nil {
			return err
		}
	}

	rate := 0.0
	if summary.Games > 0 {
		rate = 100 * float64(summary.Wins) / float64(summary.Games)
	}
	fmt.Fprintf(stdout, "Played %d games, AI won %d (%.2f %%) in %s. Benchmark: %d\n",
		summary.Games, summary.Wins, rate, summary.Elapsed.Round(time.Millisecond), summary.Benchmark)
	stats := ai.HistorySummary()
	games, wins := ai.Games()
	fmt.Fprintf(stdout, "Record: %d games, %d wins (%.2f %%). Peak benchmark %d, average %.1f over %d samples\n",
		games, wins, 100*ai.WinRate(), stats.Peak, stats.Average, stats.Count)
	return runErr
}

func writeResults(root, name string, summary experiments.Summary, history []int) error {
	w, err := metrics.NewWriter(root, name)
	if err != nil {
		return err
	}
	if err := w.WriteGameRecords(summary.Records); err != nil {
		return err
	}
	log.Info().Msg("stored game records")
	if err := w.WriteBenchmarkHistory(history); err != nil {
		return err
	}
	log.Info().Msgf("stored benchmark history in %s", w.Dir())
	return nil
}

func runBench(ctx context.Context, opts options, stdout io.Writer) error {
	s, closer, err := open(opts.policy)
	if err != nil {
		return err
	}
	defer closer()
	ai, err := loadAgent(ctx, s, opts)
	if err != nil {
		return err
	}

	if opts.sample {
		ai.Benchmark()
		if err := s.Save(ctx, ai.Export()); err != nil {
			return err
		}
	}
	stats := ai.HistorySummary()
	games, wins := ai.Games()
	fmt.Fprintf(stdout, "Current Score: %d\nPeak Score: %d\nAverage Score: %.2f\nBenchmark calculated %d total times.\n",
		stats.Current, stats.Peak, stats.Average, stats.Count)
	fmt.Fprintf(stdout, "Played %d games total, won %d. Success rate %.2f %%\n", games, wins, 100*ai.WinRate())
	return nil
}

func runPerfect(ctx context.Context, opts options, stdout io.Writer) error {
	s, closer, err := open(opts.policy)
	if err != nil {
		return err
	}
	defer closer()
	ai, err := loadAgent(ctx, s, opts)
	if err != nil {
		return err
	}

	ai.Perfect()
	score := ai.Benchmark()
	if err := save(ctx, opts.out, ai.Export()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Perfect policy written to %s. Benchmark: %d\n", opts.out, score)
	return nil
}

func runExport(ctx context.Context, opts options, stdout io.Writer) error {
	if opts.out == opts.policy {
		return errors.New("export needs -out")
	}
	s, closer, err := open(opts.policy)
	if err != nil {
		return err
	}
	defer closer()
	r, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := save(ctx, opts.out, r); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Exported %s to %s\n", opts.policy, opts.out)
	return nil
}

func runImport(ctx context.Context, opts options, source string, stdout io.Writer) error {
	r, err := (&store.File{Path: source}).Load(ctx)
	if err != nil {
		return err
	}
	if err := save(ctx, opts.policy, r); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Imported %s into %s (%d games, benchmark %d)\n", source, opts.policy, r.Games, r.Benchmark)
	return nil
}

func runThroughput(ctx context.Context, opts options, stdout io.Writer) error {
	s, closer, err := open(opts.policy)
	if err != nil {
		return err
	}
	defer closer()
	ai, err := loadAgent(ctx, s, opts)
	if err != nil {
		return err
	}

	counts := []int{1}
	for n := 2; n <= max(opts.workers, meta.GO_ROUTINES); n *= 2 {
		counts = append(counts, n)
	}
	batches, err := experiments.RunThroughput(ctx, ai, opts.games, counts)
	if err != nil {
		return err
	}
	for _, b := range batches {
		fmt.Fprintf(stdout, "%3d workers: %d games in %s (%.0f games/s)\n", b.Workers, b.Games, b.Duration.Round(time.Microsecond), b.GamesPerSecond())
	}
	if opts.csv {
		w, err := metrics.NewWriter(opts.results, "throughput")
		if err != nil {
			return err
		}
		return w.WriteBatchMetrics(batches)
	}
	return nil
}
