// Package main runs a two-player game in the terminal
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"chessplay/internal/cli"
	"chessplay/internal/service"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	var (
		theme   = flag.String("theme", "", "Board color theme (off|brown|green|gray); defaults to brown on a terminal")
		noCheck = flag.Bool("no-check", false, "Disable check detection after moves")
		history = flag.String("history", ".chess_history", "Readline history file (empty disables)")
	)
	flag.Parse()

	selected := cli.ThemeOff
	switch {
	case *theme != "":
		selected = cli.ColorTheme(*theme)
	case term.IsTerminal(int(os.Stdout.Fd())):
		selected = cli.ThemeBrown
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     *history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	// Local play keeps no accounts, so the token secret is never used
	svc := service.New(nil, nil, service.WithCheckDetection(!*noCheck))
	defer svc.Shutdown(time.Second)

	view := cli.NewView(rl.Stdout(), selected)
	handler := cli.NewHandler(svc, view, rl)

	view.ShowWelcome()
	if err := handler.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
