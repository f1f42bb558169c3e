package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Shopify/go-lua"

	"duck-engine/config"
	"duck-engine/duckmg"
	"duck-engine/luahost"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := consoleLoop(cfg, os.Stdin, os.Stdout); err != nil {
		log.Println(err)
	}
}

// consoleLoop reads Lua one line at a time and runs it in a single
// interpreter. A GameState is preloaded as the global g. A few bare words
// are handled before Lua sees the line:
//
//	board    draw g
//	fen      print the FEN of g
//	chess    print the chess-only FEN of g, duck omitted
//	empty N  report whether square index N is empty
//	test     reset g to the test position
//	quit     leave
func consoleLoop(cfg config.Config, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	state := luahost.NewState(w)
	if cfg.Prelude != "" {
		if _, err := luahost.RunFile(state, cfg.Prelude); err != nil {
			return fmt.Errorf("prelude: %w", err)
		}
	}
	luahost.PushGameState(state, duckmg.NewGameState())
	state.SetGlobal("g")

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" { // ignore blank lines
			continue
		}
		switch strings.ToLower(line) {
		case "quit", "exit":
			return nil
		case "board", "d":
			if g := currentGame(state, w); g != nil {
				fmt.Fprintln(w, g)
			}
			continue
		case "fen":
			if g := currentGame(state, w); g != nil {
				fmt.Fprintln(w, g.ToFEN())
			}
			continue
		case "chess":
			if g := currentGame(state, w); g != nil {
				if board, err := g.ChessBoard(); err != nil {
					fmt.Fprintln(w, "error:", err)
				} else {
					fmt.Fprintln(w, board.ToFen())
				}
			}
			continue
		case "test":
			g := duckmg.NewGameState()
			g.InitTestBoard()
			luahost.PushGameState(state, g)
			state.SetGlobal("g")
			continue
		}
		if fields := strings.Fields(line); len(fields) == 2 && strings.ToLower(fields[0]) == "empty" {
			if g := currentGame(state, w); g != nil {
				n, err := strconv.Atoi(fields[1])
				if err != nil || !duckmg.Square(n).Valid() {
					fmt.Fprintf(w, "error: %q: %v\n", fields[1], duckmg.ErrInvalidSquare)
				} else {
					fmt.Fprintln(w, g.IsEmpty(duckmg.Square(n)))
				}
			}
			continue
		}
		if strings.HasPrefix(line, "=") {
			line = "print(" + line[1:] + ")"
		}
		if _, err := luahost.RunString(state, line, "=stdin"); err != nil {
			fmt.Fprintln(w, "error:", err)
		}
	}
	return scanner.Err()
}

func currentGame(state *lua.State, w io.Writer) *duckmg.GameState {
	state.Global("g")
	defer state.Pop(1)
	g, ok := luahost.ToGameState(state, -1)
	if !ok {
		fmt.Fprintln(w, "error: g is not a GameState")
		return nil
	}
	return g
}
