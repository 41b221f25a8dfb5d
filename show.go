package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"hexapawn/game"
	"hexapawn/policy"

	"github.com/muesli/termenv"
)

func runShow(ctx context.Context, opts options, stdout io.Writer) error {
	s, closer, err := open(opts.policy)
	if err != nil {
		return err
	}
	defer closer()
	ai, err := loadAgent(ctx, s, opts)
	if err != nil {
		return err
	}

	out := termenv.NewOutput(stdout)
	r := ai.Export()
	board := game.NewBoard()
	fmt.Fprintln(stdout, renderBoard(out, &board))
	fmt.Fprintf(stdout, "%s: %d games, %d wins, benchmark %d\n\n", opts.policy, r.Games, r.Wins, r.Benchmark)
	fmt.Fprint(stdout, renderTable(out, r.Table))
	return nil
}

// renderBoard draws the board like Board.String, with White and Black pawns in their own colours.
func renderBoard(out *termenv.Output, b *game.Board) string {
	var sb strings.Builder
	sb.WriteString("    A   B   C\n")
	sb.WriteString("  +---+---+---+\n")
	for row := 0; row < game.Size; row++ {
		fmt.Fprintf(&sb, "%d |", row+1)
		for col := 0; col < game.Size; col++ {
			sb.WriteByte(' ')
			switch b.At(game.Square{Row: row, Col: col}) {
			case game.WhitePawn:
				sb.WriteString(out.String("W").Foreground(termenv.ANSIBrightWhite).Bold().String())
			case game.BlackPawn:
				sb.WriteString(out.String("B").Foreground(termenv.ANSIBrightBlue).Bold().String())
			default:
				sb.WriteByte(' ')
			}
			sb.WriteString(" |")
		}
		sb.WriteString("\n  +---+---+---+\n")
	}
	return sb.String()
}

// renderTable lists every layout with its candidates. Winning candidates are green, losing ones red.
func renderTable(out *termenv.Output, t *policy.Table) string {
	var sb strings.Builder
	for _, e := range t.Entries() {
		sb.WriteString(e.State)
		for _, c := range e.Candidates {
			text := fmt.Sprintf("  %s %.3f", c.Move, c.Weight)
			style := out.String(text)
			switch c.Outcome {
			case 1:
				style = style.Foreground(termenv.ANSIGreen)
			case -1:
				style = style.Foreground(termenv.ANSIRed)
			default:
				style = style.Faint()
			}
			sb.WriteString(style.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
