package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Square addresses a cell of the board by 0-based row and column.
type Square struct {
	Row int
	Col int
}

func (sq Square) valid() bool {
	return sq.Row >= 0 && sq.Row < Size && sq.Col >= 0 && sq.Col < Size
}

// String returns the square in notation form, e.g. "B3". Out of range squares render as "??".
func (sq Square) String() string {
	n, err := ToNotation(sq.Row, sq.Col)
	if err != nil {
		return "??"
	}
	return n
}

// Move is an ordered pair of source and target squares.
type Move struct {
	From Square
	To   Square
}

// String returns the lookup form of the move, e.g. "A1>A2".
func (m Move) String() string {
	return m.From.String() + ">" + m.To.String()
}

// ToCoordinate converts notation such as "A3" (column letter, 1-based row) into 0-based indexes.
// The column letter is case-insensitive.
func ToCoordinate(notation string) (row, col int, err error) {
	if len(notation) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCoordinate, notation)
	}
	col = strings.IndexByte("abc", lower(notation[0]))
	row = int(notation[1]) - '1'
	if col < 0 || row < 0 || row >= Size {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCoordinate, notation)
	}
	return row, col, nil
}

// ToNotation converts 0-based indexes into notation.
func ToNotation(row, col int) (string, error) {
	if !(Square{Row: row, Col: col}).valid() {
		return "", fmt.Errorf("%w: row %d, column %d", ErrInvalidCoordinate, row, col)
	}
	return string([]byte{"ABC"[col], byte('1' + row)}), nil
}

// ParseSquare is ToCoordinate returning a Square.
func ParseSquare(notation string) (Square, error) {
	row, col, err := ToCoordinate(notation)
	if err != nil {
		return Square{}, err
	}
	return Square{Row: row, Col: col}, nil
}

// ParseMove parses the "A1>A2" form.
func ParseMove(notation string) (Move, error) {
	from, to, ok := strings.Cut(notation, ">")
	if !ok {
		return Move{}, fmt.Errorf("%w: move %q has no '>' separator", ErrInvalidCoordinate, notation)
	}
	src, err := ParseSquare(from)
	if err != nil {
		return Move{}, err
	}
	dst, err := ParseSquare(to)
	if err != nil {
		return Move{}, err
	}
	return Move{From: src, To: dst}, nil
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
