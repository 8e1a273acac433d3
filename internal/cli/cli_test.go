package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"chessplay/internal/core"
	"chessplay/internal/service"

	"github.com/google/go-cmp/cmp"
)

type scriptReader struct {
	lines   []string
	prompts []string
}

func (r *scriptReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptReader) SetPrompt(p string) {
	r.prompts = append(r.prompts, p)
}

func run(t *testing.T, lines ...string) (string, *scriptReader, *Handler) {
	t.Helper()
	svc := service.New(nil, []byte("test-secret-test-secret-test-secret"))
	t.Cleanup(func() { svc.Shutdown(time.Second) })

	var out bytes.Buffer
	in := &scriptReader{lines: lines}
	h := NewHandler(svc, NewView(&out, ThemeOff), in)
	if err := h.Run(); err != nil {
		t.Fatal(err)
	}
	return out.String(), in, h
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"", Command{Type: CmdNone}},
		{"new", Command{Type: CmdNew}},
		{"D7D5", Command{Type: CmdMove, Args: []string{"D7", "D5"}, Raw: "D7D5"}},
		{"d7 d5", Command{Type: CmdMove, Args: []string{"d7", "d5"}, Raw: "d7 d5"}},
		{"moves E7", Command{Type: CmdMoves, Args: []string{"E7"}}},
		{"COLOR brown", Command{Type: CmdColor, Args: []string{"brown"}}},
		{"?", Command{Type: CmdHelp}},
		{"exit", Command{Type: CmdQuit}},
		{"history", Command{Type: CmdLog}},
		{"castle", Command{Type: CmdUnknown, Raw: "castle"}},
		{"resume 8/8 w", Command{Type: CmdResume, Args: []string{"8/8", "w"}, Raw: "resume 8/8 w"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseCommand(tt.in)); diff != "" {
				t.Errorf("parseCommand(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSessionFlow(t *testing.T) {
	out, in, h := run(t, "moves E7", "new", "moves E7", "D7D5", "E2 E4", "D5 E4", "log", "quit", "board")

	for _, want := range []string{
		"No active game",
		"Game started.",
		"Pawn at E7: E6 E5",
		"White Pawn: D7 -> D5",
		"Black Pawn: E2 -> E4",
		"** Black Pawn Died **",
		"1. Pawn D5 | Pawn E4",
		"2. Pawn E4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// The board command after quit is never read
	if len(in.lines) != 1 {
		t.Errorf("unread lines = %v", in.lines)
	}
	if diff := cmp.Diff([]string{"> ", "> ", "[w]> ", "[w]> ", "[b]> ", "[w]> ", "[b]> ", "[b]> "}, in.prompts); diff != "" {
		t.Errorf("prompts mismatch (-want +got):\n%s", diff)
	}

	snap, ok := h.Snapshot()
	if !ok || snap.MoveCount != 3 || snap.Turn != core.SideBlack {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestResumeAndCheck(t *testing.T) {
	out, _, h := run(t, "resume 1k6/8/8/8/8/8/8/R3K3 w - - 0 1", "H8 H1")
	if !strings.Contains(out, "** Check! **") {
		t.Errorf("missing check toast:\n%s", out)
	}
	if !strings.Contains(out, "checking piece can be taken by: Black King at (G1)") {
		t.Errorf("missing capturable-by hint:\n%s", out)
	}
	if snap, ok := h.Snapshot(); !ok || snap.MoveCount != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestErrorsAreReported(t *testing.T) {
	out, _, _ := run(t, "resume 8/8/8/8/8/8/8/8 w - - 0 1", "new", "D7D4", "E2E3", "moves Z9", "color neon", "castle")
	for _, want := range []string{
		"could not start the game",
		"invalid move: illegal move",
		"invalid move: not your turn",
		"invalid square",
		"invalid theme: neon",
		`Unknown command "castle"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayBoardThemes(t *testing.T) {
	var out bytes.Buffer
	v := NewView(&out, ThemeOff)

	svc := service.New(nil, []byte("test-secret-test-secret-test-secret"))
	defer svc.Shutdown(time.Second)
	_, snap, err := svc.CreateGame(service.NewGameParams{})
	if err != nil {
		t.Fatal(err)
	}

	v.DisplayBoard(snap.Pieces)
	lines := strings.Split(strings.TrimPrefix(out.String(), "\n"), "\n")
	if lines[0] != fileHeader || lines[1] != "1 r n b q k b n r  1" || lines[8] != "8 R N B Q K B N R  8" {
		t.Errorf("plain board:\n%s", out.String())
	}

	if err := v.SetTheme(ThemeGreen); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	v.DisplayBoard(snap.Pieces)
	if !strings.Contains(out.String(), "\033[48;5;22m") {
		t.Error("green theme not applied")
	}
}
