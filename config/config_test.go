package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestValidateLearnRate(t *testing.T) {
	require.NoError(t, ValidateLearnRate(0.01))
	require.NoError(t, ValidateLearnRate(1))
	require.Error(t, ValidateLearnRate(0))
	require.Error(t, ValidateLearnRate(-0.5))
	require.Error(t, ValidateLearnRate(1.01))
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"HEXAPAWN_POLICY_PATH", "HEXAPAWN_LEARN_RATE", "HEXAPAWN_SEED", "HEXAPAWN_WORKERS", "HEXAPAWN_LOG_LEVEL", "HEXAPAWN_RESULTS_DIR"} {
			t.Setenv(key, "")
		}

		cfg, err := FromEnv()

		require.NoError(t, err)
		require.Equal(t, Config{
			PolicyPath: "output.hexai",
			LearnRate:  0.01,
			Seed:       0,
			Workers:    1,
			LogLevel:   zerolog.InfoLevel,
			ResultsDir: "experiments",
		}, cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("HEXAPAWN_POLICY_PATH", "policies.sqlite#main")
		t.Setenv("HEXAPAWN_LEARN_RATE", "0.05")
		t.Setenv("HEXAPAWN_SEED", "99")
		t.Setenv("HEXAPAWN_WORKERS", "8")
		t.Setenv("HEXAPAWN_LOG_LEVEL", "debug")
		t.Setenv("HEXAPAWN_RESULTS_DIR", "/tmp/results")

		cfg, err := FromEnv()

		require.NoError(t, err)
		require.Equal(t, "policies.sqlite#main", cfg.PolicyPath)
		require.Equal(t, 0.05, cfg.LearnRate)
		require.Equal(t, uint64(99), cfg.Seed)
		require.Equal(t, 8, cfg.Workers)
		require.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
		require.Equal(t, "/tmp/results", cfg.ResultsDir)
	})

	t.Run("malformed values", func(t *testing.T) {
		for key, value := range map[string]string{
			"HEXAPAWN_LEARN_RATE": "fast",
			"HEXAPAWN_SEED":       "-1",
			"HEXAPAWN_WORKERS":    "many",
			"HEXAPAWN_LOG_LEVEL":  "loud",
		} {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, value)

				_, err := FromEnv()

				require.Error(t, err)
			})
		}
		for _, rate := range []string{"1.5", "0", "-0.5"} {
			t.Run("learn rate "+rate, func(t *testing.T) {
				t.Setenv("HEXAPAWN_LEARN_RATE", rate)

				_, err := FromEnv()

				require.Error(t, err)
			})
		}
	})
}
