package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"chessplay/internal/core"
	"chessplay/internal/game"
	"chessplay/internal/service"
)

// LineReader supplies input lines; *readline.Instance satisfies it
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// Handler runs the interactive loop against a game service
type Handler struct {
	svc        *service.Service
	view       *View
	in         LineReader
	gameID     string
	initialFEN string
}

func NewHandler(svc *service.Service, view *View, in LineReader) *Handler {
	return &Handler{svc: svc, view: view, in: in}
}

// Run reads commands until quit or end of input
func (h *Handler) Run() error {
	for {
		h.in.SetPrompt(h.prompt())
		line, err := h.in.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			// Interrupt clears the line
			continue
		}
		if !h.ProcessCommand(parseCommand(line)) {
			return nil
		}
	}
}

func (h *Handler) prompt() string {
	if h.gameID == "" {
		return "> "
	}
	snap, err := h.svc.GetGame(h.gameID)
	if err != nil || snap.State.IsOver() {
		return "> "
	}
	return fmt.Sprintf("[%s]> ", snap.Turn.Code())
}

// ProcessCommand executes one command, returning false to exit
func (h *Handler) ProcessCommand(cmd Command) bool {
	switch cmd.Type {
	case CmdQuit:
		return false

	case CmdNone:

	case CmdNew:
		h.startGame("")

	case CmdResume:
		fen := strings.Join(cmd.Args, " ")
		if fen == "" {
			h.view.ShowMessage("Usage: resume <FEN string>")
			return true
		}
		h.startGame(fen)

	case CmdMove:
		if !h.requireGame() {
			return true
		}
		h.move(cmd.Args[0], cmd.Args[1])

	case CmdMoves:
		if !h.requireGame() {
			return true
		}
		if len(cmd.Args) != 1 {
			h.view.ShowMessage("Usage: moves <square>")
			return true
		}
		h.listMoves(cmd.Args[0])

	case CmdBoard:
		if h.requireGame() {
			h.showBoard()
		}

	case CmdLog:
		if !h.requireGame() {
			return true
		}
		snap, err := h.svc.GetGame(h.gameID)
		if err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowLog(snap, h.initialFEN)

	case CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}
		theme := ColorTheme(strings.ToLower(cmd.Args[0]))
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		if h.gameID != "" {
			h.showBoard()
		}

	case CmdHelp:
		h.view.ShowHelp()

	default:
		h.view.ShowMessage(fmt.Sprintf("Unknown command %q. Type 'help' for commands.", cmd.Raw))
	}

	return true
}

func (h *Handler) requireGame() bool {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new' or 'resume <FEN>'.")
		return false
	}
	return true
}

func (h *Handler) startGame(fen string) {
	id, snap, err := h.svc.CreateGame(service.NewGameParams{FEN: fen})
	if err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %w", err))
		return
	}
	if h.gameID != "" {
		_ = h.svc.DeleteGame(h.gameID)
	}
	h.gameID = id
	h.initialFEN = snap.FEN

	h.view.ShowMessage("Game started.")
	h.view.DisplayBoard(snap.Pieces)
}

func (h *Handler) move(fromLabel, toLabel string) {
	from, err := core.ParseLabel(fromLabel)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	to, err := core.ParseLabel(toLabel)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	res, snap, err := h.svc.MakeMove(h.gameID, "", from, to)
	if err != nil {
		h.view.ShowError(fmt.Errorf("invalid move: %w", err))
		return
	}

	h.view.DisplayBoard(snap.Pieces)
	h.view.ShowMove(res)

	if res.State.IsOver() {
		h.view.ShowGameOver(res.State)
	}
}

func (h *Handler) listMoves(label string) {
	sq, err := core.ParseLabel(label)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	sel, err := h.svc.PossibleMoves(h.gameID, sq)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	h.view.ShowMoves(sq, sel.Piece.Kind, sel.Moves)
}

func (h *Handler) showBoard() {
	snap, err := h.svc.GetGame(h.gameID)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	h.view.DisplayBoard(snap.Pieces)
}

// Snapshot returns the current game state, for callers embedding the loop
func (h *Handler) Snapshot() (game.Snapshot, bool) {
	if h.gameID == "" {
		return game.Snapshot{}, false
	}
	snap, err := h.svc.GetGame(h.gameID)
	return snap, err == nil
}
