package cli

import (
	"strings"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdMove
	CmdMoves
	CmdBoard
	CmdLog
	CmdColor
	CmdHelp
	CmdQuit
	CmdUnknown
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

// parseCommand turns one input line into a command. Moves are written as
// two labels, joined ("E2E4") or apart ("E2 E4").
func parseCommand(input string) Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Command{Type: CmdNone}
	}

	name := strings.ToLower(parts[0])
	args := parts[1:]

	switch name {
	case "new":
		return Command{Type: CmdNew}
	case "resume":
		return Command{Type: CmdResume, Args: args, Raw: input}
	case "moves":
		return Command{Type: CmdMoves, Args: args}
	case "board":
		return Command{Type: CmdBoard}
	case "log", "history":
		return Command{Type: CmdLog}
	case "color":
		return Command{Type: CmdColor, Args: args}
	case "help", "?":
		return Command{Type: CmdHelp}
	case "quit", "exit":
		return Command{Type: CmdQuit}
	}

	switch {
	case len(parts) == 1 && len(parts[0]) == 4:
		return Command{Type: CmdMove, Args: []string{parts[0][:2], parts[0][2:]}, Raw: input}
	case len(parts) == 2 && len(parts[0]) == 2 && len(parts[1]) == 2:
		return Command{Type: CmdMove, Args: parts, Raw: input}
	}
	return Command{Type: CmdUnknown, Raw: input}
}
