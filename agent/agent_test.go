package agent

import (
	"sync"
	"testing"

	"hexapawn/policy"

	"github.com/stretchr/testify/require"
)

const opening = "bbbwoooww"

func fixed(r float64) func() float64 {
	return func() float64 { return r }
}

func weights(t *testing.T, a *Agent, state string) []float64 {
	t.Helper()
	candidates, ok := a.Export().Table.Lookup(state)
	require.True(t, ok)
	out := make([]float64, len(candidates))
	for i, c := range candidates {
		out[i] = c.Weight
	}
	return out
}

func TestNew(t *testing.T) {
	a := New()

	r := a.Export()
	require.Equal(t, 0, r.Games)
	require.Equal(t, 0, r.Wins)
	require.Equal(t, 0, r.Benchmark)
	require.Empty(t, r.History)
	require.Equal(t, policy.DefaultTable(), r.Table)
	require.Equal(t, 0.01, a.LearnRate())
	require.Equal(t, 0.0, a.WinRate())
}

func TestRecordAndPick(t *testing.T) {
	t.Run("archives the choice", func(t *testing.T) {
		a := New(WithDraw(fixed(0.4)))

		m, err := a.RecordAndPick(opening)

		require.NoError(t, err)
		require.Equal(t, "B1>B2", m.String())
		require.Equal(t, policy.Archive{{State: opening, Index: 1}}, a.Archive())
	})

	t.Run("pick does not archive", func(t *testing.T) {
		a := New(WithDraw(fixed(0)))

		m, err := a.PickMove(opening)

		require.NoError(t, err)
		require.Equal(t, "B1>A2", m.String())
		require.Empty(t, a.Archive())
	})

	t.Run("unknown state is not archived", func(t *testing.T) {
		a := New()

		_, err := a.RecordAndPick("bbbooowww")

		var unknown *policy.UnknownStateError
		require.ErrorAs(t, err, &unknown)
		require.Empty(t, a.Archive())
	})
}

func TestLearnFromGame(t *testing.T) {
	t.Run("win reinforces the archived move", func(t *testing.T) {
		a := New(WithDraw(fixed(0.4)))
		_, err := a.RecordAndPick(opening)
		require.NoError(t, err)

		require.NoError(t, a.LearnFromGame(true))

		got := weights(t, a, opening)
		require.InDelta(t, 1.0/3-0.005, got[0], 1e-12)
		require.InDelta(t, 1.0/3+0.01, got[1], 1e-12)
		require.InDelta(t, 1.0/3-0.005, got[2], 1e-12)
		require.Empty(t, a.Archive())
	})

	t.Run("custom learn rate", func(t *testing.T) {
		a := New(WithDraw(fixed(0.6)), WithLearnRate(0.1))
		_, err := a.RecordAndPick("bbbowowow")
		require.NoError(t, err)

		require.NoError(t, a.LearnFromGame(false))

		require.InDelta(t, 0.6, weights(t, a, "bbbowowow")[0], 1e-12)
	})

	t.Run("rate override", func(t *testing.T) {
		a := New(WithLearnRate(0.1))
		step := policy.Archive{{State: "bbbowowow", Index: 1}}

		require.NoError(t, a.ReinforceWithRate(step, true, 0))
		require.Equal(t, policy.DefaultTable(), a.Export().Table, "A zero rate leaves the weights alone")

		require.NoError(t, a.ReinforceWithRate(step, true, 0.2))
		require.InDelta(t, 0.7, weights(t, a, "bbbowowow")[1], 1e-12)

		require.NoError(t, a.Reinforce(step, true))
		require.InDelta(t, 0.8, weights(t, a, "bbbowowow")[1], 1e-12)
	})

	t.Run("flush drops the archive", func(t *testing.T) {
		a := New(WithDraw(fixed(0.4)))
		_, err := a.RecordAndPick(opening)
		require.NoError(t, err)

		a.Flush()
		require.NoError(t, a.LearnFromGame(true))

		require.Equal(t, policy.DefaultTable(), a.Export().Table)
	})
}

func TestSaveGame(t *testing.T) {
	a := New()

	require.Equal(t, 0, a.SaveGame(false))
	require.NoError(t, a.ReinforceWithRate(policy.Archive{{State: "bbbowowow", Index: 1}}, true, 0.1))
	require.Equal(t, 533, a.SaveGame(true))

	games, wins := a.Games()
	require.Equal(t, 2, games)
	require.Equal(t, 1, wins)
	require.Equal(t, 0.5, a.WinRate())
	require.Equal(t, []int{0, 533}, a.Export().History)
	require.Equal(t, Summary{Current: 533, Peak: 533, Average: 266.5, Count: 2}, a.HistorySummary())

	require.Equal(t, 533, a.CountGame(false))
	games, _ = a.Games()
	require.Equal(t, 3, games)
	require.Len(t, a.Export().History, 2, "Counting a game takes no benchmark sample")
}

func TestPerfect(t *testing.T) {
	a := New()

	a.Perfect()

	require.Equal(t, 23000, a.Benchmark())
	require.Equal(t, 23000, a.Export().Benchmark)
}

func TestImportExport(t *testing.T) {
	t.Run("export is a deep copy", func(t *testing.T) {
		a := New()
		r := a.Export()

		r.Table.Perfect()
		r.History = append(r.History, 1)

		require.Equal(t, policy.DefaultTable(), a.Export().Table)
		require.Empty(t, a.Export().History)
	})

	t.Run("import replaces the record", func(t *testing.T) {
		trained := New()
		trained.Perfect()
		trained.SaveGame(true)
		a := New()

		require.NoError(t, a.Import(trained.Export()))

		require.Equal(t, trained.Export(), a.Export())
	})

	t.Run("invalid record leaves the agent untouched", func(t *testing.T) {
		a := New()
		a.SaveGame(true)
		before := a.Export()

		err := a.Import(Record{Games: 1, Wins: 2, Table: policy.DefaultTable()})
		require.Error(t, err)
		err = a.Import(Record{})
		require.Error(t, err)
		bad := policy.NewTable(policy.Entry{State: "bbbowowow", Candidates: []policy.Candidate{{Move: "A1>A2", Weight: 2}}})
		err = a.Import(Record{Table: bad})
		require.Error(t, err)

		require.Equal(t, before, a.Export())
	})
}

func TestReset(t *testing.T) {
	a := New(WithLearnRate(0.5))
	a.Perfect()
	a.SaveGame(true)

	a.Reset()

	require.Equal(t, NewRecord(), a.Export())
	require.Equal(t, 0.01, a.LearnRate())
}

func TestOpponent(t *testing.T) {
	o := NewOpponent(WithDraw(fixed(0)))

	m, err := o.PickMove("bbbooowww")

	require.NoError(t, err)
	require.Equal(t, "A3>A2", m.String())
}

func TestEpisode(t *testing.T) {
	t.Run("seeded episodes are reproducible", func(t *testing.T) {
		a, b := New(WithSeed(42)), New(WithSeed(42))
		ea, eb := a.Episode(), b.Episode()

		for i := 0; i < 20; i++ {
			ma, err := ea.PickMove(opening)
			require.NoError(t, err)
			mb, err := eb.PickMove(opening)
			require.NoError(t, err)
			require.Equal(t, ma, mb)
		}
	})

	t.Run("finish learns and counts", func(t *testing.T) {
		a := New()
		e := a.Episode()
		_, err := e.RecordAndPick("bbbowowow")
		require.NoError(t, err)

		score, err := e.Finish(true, true, true)

		require.NoError(t, err)
		require.NotEqual(t, policy.DefaultTable(), a.Export().Table)
		require.Equal(t, a.Export().Benchmark, score)
		require.Equal(t, []int{score}, a.Export().History)
		games, wins := a.Games()
		require.Equal(t, 1, games)
		require.Equal(t, 1, wins)
	})

	t.Run("finish without learning only counts", func(t *testing.T) {
		a := New()
		e := a.Episode()
		_, err := e.RecordAndPick("bbbowowow")
		require.NoError(t, err)

		score, err := e.Finish(false, false, false)

		require.NoError(t, err)
		require.Equal(t, 0, score)
		require.Equal(t, policy.DefaultTable(), a.Export().Table)
		require.Empty(t, a.Export().History)
		games, wins := a.Games()
		require.Equal(t, 1, games)
		require.Equal(t, 0, wins)
	})

	t.Run("concurrent episodes", func(t *testing.T) {
		a := New(WithSeed(1))
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			e := a.Episode()
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := e.RecordAndPick(opening)
				require.NoError(t, err)
				_, err = e.Finish(true, true, true)
				require.NoError(t, err)
			}()
		}
		wg.Wait()

		games, wins := a.Games()
		require.Equal(t, 8, games)
		require.Equal(t, 8, wins)
		require.Len(t, a.Export().History, 8)
		total := 0.0
		for _, w := range weights(t, a, opening) {
			total += w
		}
		require.InDelta(t, 1.0, total, 1e-9)
	})
}
