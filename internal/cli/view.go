// Package cli is the terminal front end: board rendering with color themes,
// command parsing and the interactive loop over the game service.
package cli

import (
	"fmt"
	"io"
	"strings"

	"chessplay/internal/core"
	"chessplay/internal/game"
	"chessplay/internal/piece"
)

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m",
		darkBg:  "\033[48;5;22m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m",
		darkBg:  "\033[48;5;240m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

const fileHeader = "  H G F E D C B A"

// View writes everything the player sees
type View struct {
	output io.Writer
	theme  ColorTheme
}

func NewView(output io.Writer, theme ColorTheme) *View {
	if _, ok := themes[theme]; !ok {
		theme = ThemeOff
	}
	return &View{output: output, theme: theme}
}

func (v *View) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	v.theme = theme
	return nil
}

func (v *View) Theme() ColorTheme {
	return v.theme
}

func (v *View) ShowMessage(msg string) {
	fmt.Fprintln(v.output, msg)
}

func (v *View) ShowError(err error) {
	v.ShowMessage(fmt.Sprintf("Error: %v", err))
}

// DisplayBoard draws the alive pieces by label, rank 1 (Black's home) on top
func (v *View) DisplayBoard(pieces []piece.Piece) {
	var grid [core.BoardSize][core.BoardSize]byte
	for _, p := range pieces {
		if !p.Alive() || !p.Position.OnBoard() {
			continue
		}
		if grid[p.Position.Rank][p.Position.File] == 0 {
			grid[p.Position.Rank][p.Position.File] = p.Kind.Symbol(p.Side)
		}
	}

	theme := themes[v.theme]
	var sb strings.Builder
	sb.WriteString("\n" + fileHeader + "\n")
	for r := 0; r < core.BoardSize; r++ {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for f := 0; f < core.BoardSize; f++ {
			sym := grid[r][f]
			if v.theme == ThemeOff {
				if sym == 0 {
					sb.WriteString(". ")
				} else {
					sb.WriteString(fmt.Sprintf("%c ", sym))
				}
				continue
			}

			bg := theme.darkBg
			if (r+f)%2 == 0 {
				bg = theme.lightBg
			}
			if sym == 0 {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
				continue
			}
			color := theme.black
			if sym >= 'A' && sym <= 'Z' {
				color = theme.white
			}
			sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, color, sym, theme.reset))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString(fileHeader + "\n")

	v.ShowMessage(sb.String())
}

// ShowEvents prints check and capture notifications as toasts
func (v *View) ShowEvents(events []core.Event) {
	for _, ev := range events {
		v.ShowMessage("  ** " + ev.Message() + " **")
	}
}

func (v *View) ShowMove(res *game.MoveResult) {
	msg := fmt.Sprintf("%s %s: %s -> %s", res.Piece.Side, res.Piece.Kind, res.From.Label(), res.To.Label())
	if res.Promoted {
		msg += " (promoted to Queen)"
	}
	v.ShowMessage(msg)
	v.ShowEvents(res.Events)
	if res.Check && len(res.CapturableBy) > 0 {
		refs := make([]string, 0, len(res.CapturableBy))
		for _, r := range res.CapturableBy {
			refs = append(refs, r.String())
		}
		v.ShowMessage("  checking piece can be taken by: " + strings.Join(refs, ", "))
	}
}

func (v *View) ShowMoves(sel core.Square, kind core.Kind, moves []core.Square) {
	if len(moves) == 0 {
		v.ShowMessage(fmt.Sprintf("%s at %s has no moves", kind, sel.Label()))
		return
	}
	labels := make([]string, 0, len(moves))
	for _, m := range moves {
		labels = append(labels, m.Label())
	}
	v.ShowMessage(fmt.Sprintf("%s at %s: %s", kind, sel.Label(), strings.Join(labels, " ")))
}

// ShowLog prints the move log in White/Black pairs
func (v *View) ShowLog(snap game.Snapshot, initialFEN string) {
	v.ShowMessage("Starting FEN: " + initialFEN)
	for i := 0; i < len(snap.Log); i += 2 {
		line := fmt.Sprintf("%d. %s", i/2+1, snap.Log[i])
		if i+1 < len(snap.Log) {
			line += " | " + snap.Log[i+1].String()
		}
		v.ShowMessage(line)
	}
	v.ShowMessage("Current FEN: " + snap.FEN)
	v.ShowMessage("Game state: " + snap.State.String())
}

func (v *View) ShowGameOver(state core.State) {
	v.ShowMessage(fmt.Sprintf("\nGame Over: %s", state))
	v.ShowMessage("Start a new game with 'new' or 'resume'.")
}

func (v *View) ShowHelp() {
	v.ShowMessage(`Commands:
  new              - Start a new game from the standard layout
  resume <FEN>     - Resume from a FEN position
  <from><to>       - Make a move by labels (e.g. D7D5 or D7 D5)
  moves <square>   - List the possible moves of a piece
  board            - Redraw the board
  log              - Show the move log
  color <theme>    - Set board color theme (off|brown|green|gray)
  quit/exit        - Exit the program
  help/?           - Show this help message

Squares are labelled H..A across and 1..8 down; Black starts on ranks 1-2.`)
}

func (v *View) ShowWelcome() {
	v.ShowMessage("Welcome to Chess!")
	v.ShowMessage("Commands: new, resume <FEN>, <move>, moves <sq>, board, log, color, help/?, quit")
	v.ShowMessage("")
}
