package config

import (
	"fmt"
	"os"
	"strconv"

	"hexapawn/meta"

	"github.com/rs/zerolog"
)

type Config struct {
	PolicyPath string
	LearnRate  float64
	Seed       uint64
	Workers    int
	LogLevel   zerolog.Level
	ResultsDir string
}

// FromEnv reads the HEXAPAWN_* variables. Unset variables take their defaults; malformed ones are an error.
func FromEnv() (Config, error) {
	cfg := Config{
		PolicyPath: getenv("HEXAPAWN_POLICY_PATH", meta.DEFAULT_POLICY_PATH),
		ResultsDir: getenv("HEXAPAWN_RESULTS_DIR", meta.DEFAULT_RESULTS_DIR),
	}

	var err error
	if cfg.LearnRate, err = strconv.ParseFloat(getenv("HEXAPAWN_LEARN_RATE", strconv.FormatFloat(meta.DEFAULT_LEARN_RATE, 'g', -1, 64)), 64); err != nil {
		return cfg, fmt.Errorf("HEXAPAWN_LEARN_RATE: %w", err)
	}
	if err := ValidateLearnRate(cfg.LearnRate); err != nil {
		return cfg, fmt.Errorf("HEXAPAWN_LEARN_RATE: %w", err)
	}
	if cfg.Seed, err = strconv.ParseUint(getenv("HEXAPAWN_SEED", "0"), 10, 64); err != nil {
		return cfg, fmt.Errorf("HEXAPAWN_SEED: %w", err)
	}
	if cfg.Workers, err = strconv.Atoi(getenv("HEXAPAWN_WORKERS", "1")); err != nil {
		return cfg, fmt.Errorf("HEXAPAWN_WORKERS: %w", err)
	}
	if cfg.LogLevel, err = zerolog.ParseLevel(getenv("HEXAPAWN_LOG_LEVEL", "info")); err != nil {
		return cfg, fmt.Errorf("HEXAPAWN_LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// ValidateLearnRate accepts rates in (0, 1].
func ValidateLearnRate(rate float64) error {
	if rate <= 0 || rate > 1 {
		return fmt.Errorf("learn rate %v outside (0, 1]", rate)
	}
	return nil
}

func getenv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
