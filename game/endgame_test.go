package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsOver(t *testing.T) {
	t.Run("starting board", func(t *testing.T) {
		b := NewBoard()

		require.False(t, IsOver(&b, White))
		require.False(t, IsOver(&b, Black))
	})

	t.Run("white reaches row 0", func(t *testing.T) {
		b := mustDecode(t, "wbbooowow")

		require.True(t, IsOver(&b, Black))
		winner, ok := Winner(&b, Black)
		require.True(t, ok)
		require.Equal(t, White, winner)
	})

	t.Run("black reaches row 2", func(t *testing.T) {
		b := mustDecode(t, "oooowobow")

		require.True(t, IsOver(&b, White))
		winner, _ := Winner(&b, White)
		require.Equal(t, Black, winner)
	})

	t.Run("black has no pawns", func(t *testing.T) {
		b := mustDecode(t, "oooowoooo")

		require.True(t, IsOver(&b, Black))
	})

	t.Run("side to move is immobilized", func(t *testing.T) {
		b := mustDecode(t, "boowoooow")

		require.True(t, IsOver(&b, Black), "Black A1 is blocked by A2 with nothing to capture")
		require.False(t, IsOver(&b, White), "White can still advance C3")
		winner, ok := Winner(&b, Black)
		require.True(t, ok)
		require.Equal(t, White, winner, "The immobilized side loses")
	})

	t.Run("game in progress has no winner", func(t *testing.T) {
		b := mustDecode(t, "bbbwoooww")

		_, ok := Winner(&b, Black)
		require.False(t, ok)
	})
}
