// meta/meta.go
package meta

// DEFAULT_LEARN_RATE is the weight shift applied per archived move when a game is learnt from.
const DEFAULT_LEARN_RATE = 0.01

// MAX_TURNS caps the plies of one game. A legal game of hexapawn never exceeds 12.
const MAX_TURNS = 64

// DEFAULT_GAMES is the number of games of a batch run.
const DEFAULT_GAMES = 25

// DEFAULT_POLICY_PATH is where the policy record is persisted.
const DEFAULT_POLICY_PATH = "output.hexai"

// DEFAULT_RESULTS_DIR holds the csv results of batch runs.
const DEFAULT_RESULTS_DIR = "experiments"

// GO_ROUTINES defines the number of goroutines for parallel batch runs.
const GO_ROUTINES = 8
