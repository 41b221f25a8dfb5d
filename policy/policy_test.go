package policy

import (
	"encoding/json"
	"strings"
	"testing"

	"hexapawn/game"

	"github.com/stretchr/testify/require"
)

func fixed(r float64) func() float64 {
	return func() float64 { return r }
}

func weights(t *testing.T, table *Table, state string) []float64 {
	t.Helper()
	candidates, ok := table.Lookup(state)
	require.True(t, ok, "state %s should be in the table", state)
	out := make([]float64, len(candidates))
	for i, c := range candidates {
		out[i] = c.Weight
	}
	return out
}

func TestDefaultTables(t *testing.T) {
	t.Run("default table is valid", func(t *testing.T) {
		table := DefaultTable()

		require.Equal(t, 33, table.Len())
		require.NoError(t, table.Validate())
	})

	t.Run("opponent table is valid", func(t *testing.T) {
		table := OpponentTable()

		require.Equal(t, 30, table.Len())
		require.NoError(t, table.Validate())
	})

	t.Run("fresh tables do not share state", func(t *testing.T) {
		a := DefaultTable()
		a.Perfect()

		require.Equal(t, 0, DefaultTable().Score())
	})
}

// Walks every line of play between OpponentTable (White) and DefaultTable (Black).
func TestTablesCoverEveryReachableState(t *testing.T) {
	ai := DefaultTable()
	opponent := OpponentTable()
	seen := map[game.Side]map[string]bool{game.White: {}, game.Black: {}}
	wins := map[game.Side]int{}

	var walk func(b game.Board, toMove game.Side)
	walk = func(b game.Board, toMove game.Side) {
		if game.IsOver(&b, toMove) {
			winner, _ := game.Winner(&b, toMove)
			wins[winner]++
			return
		}
		table := ai
		if toMove == game.White {
			table = opponent
		}
		state := b.Encode()
		candidates, ok := table.Lookup(state)
		require.True(t, ok, "%s to move on %s has no policy entry", toMove, state)
		seen[toMove][state] = true

		for _, c := range candidates {
			m, err := game.ParseMove(c.Move)
			require.NoError(t, err)
			next := b
			require.NoError(t, next.Play(m, toMove), "%s proposes an illegal move on %s", c.Move, state)
			walk(next, toMove.Opponent())
		}
	}
	walk(game.NewBoard(), game.White)

	require.Len(t, seen[game.Black], ai.Len(), "Every learning state should be reachable")
	require.Len(t, seen[game.White], opponent.Len(), "Every opponent state should be reachable")
	require.Equal(t, 50, wins[game.White])
	require.Equal(t, 50, wins[game.Black])
}

func TestPick(t *testing.T) {
	t.Run("single candidate ignores the draw", func(t *testing.T) {
		table := DefaultTable()

		choice, err := table.Pick("bobwoooow", func() float64 {
			t.Fatal("draw should not be consumed")
			return 0
		})

		require.NoError(t, err)
		require.Equal(t, "C1>C2", choice.Move.String())
		require.Equal(t, 0, choice.Index)
	})

	t.Run("cumulative walk picks the first candidate past the draw", func(t *testing.T) {
		table := DefaultTable()

		choice, err := table.Pick("bbbwoooww", fixed(0.4))
		require.NoError(t, err)
		require.Equal(t, 1, choice.Index)
		require.Equal(t, "B1>B2", choice.Move.String())
		require.InDelta(t, 1.0/3, choice.Weight, 1e-12)

		choice, err = table.Pick("bbbwoooww", fixed(0))
		require.NoError(t, err)
		require.Equal(t, 0, choice.Index)

		choice, err = table.Pick("bbbwoooww", fixed(0.999))
		require.NoError(t, err)
		require.Equal(t, 2, choice.Index)
	})

	t.Run("zero weight candidates are skipped", func(t *testing.T) {
		table := NewTable(Entry{State: "bbbowowow", Candidates: []Candidate{{"A1>A2", 0, -1}, {"A1>B2", 1, 1}}})

		choice, err := table.Pick("bbbowowow", fixed(0))

		require.NoError(t, err)
		require.Equal(t, 1, choice.Index)
	})

	t.Run("unknown state", func(t *testing.T) {
		table := DefaultTable()

		_, err := table.Pick("bbbooowww", fixed(0))

		var unknown *UnknownStateError
		require.ErrorAs(t, err, &unknown)
		require.Equal(t, "bbbooowww", unknown.State)
	})

	t.Run("weights summing below the draw", func(t *testing.T) {
		table := NewTable(Entry{State: "bbbowowow", Candidates: []Candidate{{"A1>A2", 0.2, -1}, {"A1>B2", 0.2, 1}}})

		_, err := table.Pick("bbbowowow", fixed(0.5))

		var fault *SelectionAllocationError
		require.ErrorAs(t, err, &fault)
		require.Equal(t, "bbbowowow", fault.State)
		require.Equal(t, 0.5, fault.Draw)
	})
}

func TestReinforce(t *testing.T) {
	t.Run("win on two candidates", func(t *testing.T) {
		table := DefaultTable()

		err := table.Reinforce(Archive{{State: "bbbowowow", Index: 1}}, true, 0.1)

		require.NoError(t, err)
		got := weights(t, table, "bbbowowow")
		require.InDelta(t, 0.4, got[0], 1e-12, "The other candidate loses the rate")
		require.InDelta(t, 0.6, got[1], 1e-12, "The chosen candidate gains the rate")
	})

	t.Run("loss on two candidates", func(t *testing.T) {
		table := DefaultTable()

		require.NoError(t, table.Reinforce(Archive{{State: "bbbowowow", Index: 1}}, false, 0.1))

		got := weights(t, table, "bbbowowow")
		require.InDelta(t, 0.6, got[0], 1e-12)
		require.InDelta(t, 0.4, got[1], 1e-12)
	})

	t.Run("others share the adjustment", func(t *testing.T) {
		table := DefaultTable()

		require.NoError(t, table.Reinforce(Archive{{State: "bbbwoooww", Index: 0}}, true, 0.02))

		got := weights(t, table, "bbbwoooww")
		require.InDelta(t, 1.0/3+0.02, got[0], 1e-12)
		require.InDelta(t, 1.0/3-0.01, got[1], 1e-12)
		require.InDelta(t, 1.0/3-0.01, got[2], 1e-12)
	})

	t.Run("weights are clamped", func(t *testing.T) {
		table := NewTable(Entry{State: "bbbowowow", Candidates: []Candidate{{"A1>A2", 0.95, -1}, {"A1>B2", 0.05, 1}}})

		require.NoError(t, table.Reinforce(Archive{{State: "bbbowowow", Index: 0}}, true, 0.1))

		require.Equal(t, []float64{1, 0}, weights(t, table, "bbbowowow"))
	})

	t.Run("every archived move receives the same signal", func(t *testing.T) {
		table := DefaultTable()
		archive := Archive{{State: "bbbwoooww", Index: 2}, {State: "bobbwooow", Index: 3}}

		require.NoError(t, table.Reinforce(archive, true, 0.03))

		require.InDelta(t, 1.0/3+0.03, weights(t, table, "bbbwoooww")[2], 1e-12)
		require.InDelta(t, 0.25+0.03, weights(t, table, "bobbwooow")[3], 1e-12)
		require.InDelta(t, 0.25-0.01, weights(t, table, "bobbwooow")[0], 1e-12)
	})

	t.Run("single candidate is left untouched", func(t *testing.T) {
		table := DefaultTable()

		require.NoError(t, table.Reinforce(Archive{{State: "bobwoooow", Index: 0}}, false, 0.5))

		require.Equal(t, []float64{1}, weights(t, table, "bobwoooow"))
	})

	t.Run("unknown state leaves the table unchanged", func(t *testing.T) {
		table := DefaultTable()
		archive := Archive{{State: "bbbowowow", Index: 0}, {State: "ooooooooo", Index: 0}}

		err := table.Reinforce(archive, true, 0.1)

		var unknown *UnknownStateError
		require.ErrorAs(t, err, &unknown)
		require.Equal(t, DefaultTable(), table)
	})

	t.Run("index out of range", func(t *testing.T) {
		table := DefaultTable()

		require.Error(t, table.Reinforce(Archive{{State: "bbbowowow", Index: 2}}, true, 0.1))
	})
}

func TestScore(t *testing.T) {
	t.Run("untrained table is neutral", func(t *testing.T) {
		require.Equal(t, 0, DefaultTable().Score())
	})

	t.Run("perfect table", func(t *testing.T) {
		table := DefaultTable()

		table.Perfect()

		require.Equal(t, 23000, table.Score())
		require.Equal(t, []float64{0, 1}, weights(t, table, "bbbowowow"))
		require.Equal(t, []float64{0, 0}, weights(t, table, "bobbowowo"), "Neutral candidates drop to 0")
	})

	t.Run("worst table", func(t *testing.T) {
		table := DefaultTable()
		for _, e := range table.Entries() {
			candidates := e.Candidates
			for i := range candidates {
				candidates[i].Weight = 0
				if candidates[i].Outcome == -1 {
					candidates[i].Weight = 1
				}
			}
			table.Set(e.State, candidates)
		}

		require.Equal(t, -22000, table.Score())
	})

	t.Run("learning shifts the score", func(t *testing.T) {
		table := DefaultTable()

		require.NoError(t, table.Reinforce(Archive{{State: "bbbowowow", Index: 1}}, true, 0.1))

		require.Equal(t, 533, table.Score())
	})
}

func TestTableJSON(t *testing.T) {
	t.Run("round trip keeps order", func(t *testing.T) {
		table := DefaultTable()
		require.NoError(t, table.Reinforce(Archive{{State: "obbwbooow", Index: 2}}, true, 0.07))

		data, err := json.Marshal(table)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(data), `{"bbbowowow":[["A1>A2",0.5,-1],["A1>B2",0.5,1]],"bbbwoooww":`),
			"States should be written in insertion order, got %s", data[:60])

		decoded := &Table{}
		require.NoError(t, json.Unmarshal(data, decoded))
		require.Equal(t, table, decoded)
		require.Equal(t, table.Entries(), decoded.Entries())
	})

	t.Run("pairs decode with a neutral outcome", func(t *testing.T) {
		decoded := &Table{}

		err := json.Unmarshal([]byte(`{"bbbooowww":[["A3>A2",0.5],["B3>B2",0.5]]}`), decoded)

		require.NoError(t, err)
		require.Equal(t, []Candidate{{"A3>A2", 0.5, 0}, {"B3>B2", 0.5, 0}}, decoded.Entries()[0].Candidates)
	})

	t.Run("rejects malformed tables", func(t *testing.T) {
		for _, data := range []string{
			`[]`,
			`{"bbbooowww":[["A3>A2"]]}`,
			`{"bbbooowww":[["A3>A2","x",0]]}`,
			`{"bbbooowww":[["A3>A2",1,0]],"bbbooowww":[["A3>A2",1,0]]}`,
		} {
			require.Error(t, json.Unmarshal([]byte(data), &Table{}), "%s should be rejected", data)
		}
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]Entry{
		"weight above one":   {State: "bbbowowow", Candidates: []Candidate{{"A1>A2", 1.5, -1}}},
		"negative weight":    {State: "bbbowowow", Candidates: []Candidate{{"A1>A2", -0.1, -1}}},
		"outcome out of set": {State: "bbbowowow", Candidates: []Candidate{{"A1>A2", 0.5, 2}}},
		"illegal move":       {State: "bbbowowow", Candidates: []Candidate{{"A1>A3", 0.5, 0}}},
		"bad notation":       {State: "bbbowowow", Candidates: []Candidate{{"A1-A2", 0.5, 0}}},
		"bad state":          {State: "bbbowowo", Candidates: []Candidate{{"A1>A2", 0.5, 0}}},
		"no candidates":      {State: "bbbowowow"},
	}
	for name, entry := range cases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, NewTable(entry).Validate())
		})
	}
}
