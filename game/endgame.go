package game

// IsOver reports whether the game has concluded with toMove being the side whose turn it is.
// The game ends when a pawn reaches the far row, a side has lost every pawn, or toMove cannot move.
func IsOver(b *Board, toMove Side) bool {
	for col := 0; col < Size; col++ {
		if b[0][col] == WhitePawn || b[Size-1][col] == BlackPawn {
			return true
		}
	}
	if b.Count(White) == 0 || b.Count(Black) == 0 {
		return true
	}
	return !b.CanMove(toMove)
}

// Winner returns the winner of a finished game. Every terminal position is a win for the side that moved
// last, which is also the opponent of a side left without moves.
func Winner(b *Board, toMove Side) (Side, bool) {
	if !IsOver(b, toMove) {
		return 0, false
	}
	return toMove.Opponent(), true
}
