package game

import (
	"fmt"
	"strings"
)

const Size = 3

// Side identifies the owner of a pawn. White always moves first.
type Side int

const (
	White Side = iota + 1
	Black
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// forward is the row delta of a pawn of this side: White climbs toward row 0, Black descends toward row 2
func (s Side) forward() int {
	if s == White {
		return -1
	}
	return 1
}

func (s Side) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "None"
	}
}

// Cell is the content of a single square.
type Cell int

const (
	Empty Cell = iota
	WhitePawn
	BlackPawn
)

// Side returns the owner of the pawn in the cell, 0 if the cell is empty
func (c Cell) Side() Side {
	switch c {
	case WhitePawn:
		return White
	case BlackPawn:
		return Black
	default:
		return 0
	}
}

func (c Cell) symbol() byte {
	switch c {
	case WhitePawn:
		return 'w'
	case BlackPawn:
		return 'b'
	default:
		return 'o'
	}
}

// Board is a 3x3 grid indexed as [row][col]. Row 0 is Black's home row, row 2 is White's.
type Board [Size][Size]Cell

// NewBoard returns a board in the starting layout.
func NewBoard() Board {
	var b Board
	b.Reset()
	return b
}

// Reset restores the starting layout.
func (b *Board) Reset() {
	for col := 0; col < Size; col++ {
		b[0][col] = BlackPawn
		b[1][col] = Empty
		b[2][col] = WhitePawn
	}
}

func (b *Board) At(sq Square) Cell {
	return b[sq.Row][sq.Col]
}

// Apply moves the occupant of m.From onto m.To, overwriting whatever was there, and empties m.From.
// Legality is the caller's responsibility.
func (b *Board) Apply(m Move) {
	b[m.To.Row][m.To.Col] = b[m.From.Row][m.From.Col]
	b[m.From.Row][m.From.Col] = Empty
}

// Encode returns the 9 character row-major encoding of the board ('w', 'b', 'o').
func (b *Board) Encode() string {
	var sb strings.Builder
	sb.Grow(Size * Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sb.WriteByte(b[row][col].symbol())
		}
	}
	return sb.String()
}

// Decode parses a board encoding produced by Encode.
func Decode(encoding string) (Board, error) {
	var b Board
	if len(encoding) != Size*Size {
		return b, fmt.Errorf("invalid board encoding %q: expected %d characters, got %d", encoding, Size*Size, len(encoding))
	}
	for i := 0; i < len(encoding); i++ {
		var cell Cell
		switch encoding[i] {
		case 'w':
			cell = WhitePawn
		case 'b':
			cell = BlackPawn
		case 'o':
			cell = Empty
		default:
			return b, fmt.Errorf("invalid board encoding %q: unexpected character %q at %d", encoding, encoding[i], i)
		}
		b[i/Size][i%Size] = cell
	}
	return b, nil
}

// Count returns the number of pawns a side has on the board.
func (b *Board) Count(s Side) int {
	count := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b[row][col].Side() == s {
				count++
			}
		}
	}
	return count
}

// String renders the board as an ASCII grid with column letters and row numbers.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("    A   B   C\n")
	sb.WriteString("  +---+---+---+\n")
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d |", row+1)
		for col := 0; col < Size; col++ {
			switch b[row][col] {
			case WhitePawn:
				sb.WriteString(" W |")
			case BlackPawn:
				sb.WriteString(" B |")
			default:
				sb.WriteString("   |")
			}
		}
		sb.WriteString("\n  +---+---+---+\n")
	}
	return sb.String()
}
