package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"chessbot/bitboard"
	"chessbot/engine"
	"chessbot/movegen"
	"chessbot/notation"
	"chessbot/position"
)

// defaultClock stands in for the clock when "go" carries no time control.
const defaultClock = 5 * time.Minute

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	newUCI(os.Stdout).loop(context.Background(), os.Stdin)
}

type uci struct {
	out    io.Writer
	search *engine.Search
	hashMB int
	board  position.Position
	stats  engine.CutStatistics
}

func newUCI(out io.Writer) *uci {
	u := &uci{out: out, hashMB: engine.DefaultTTSize, board: position.StartPosition()}
	u.newSearch()
	return u
}

func (u *uci) newSearch() {
	u.search = engine.New(
		engine.WithHashMB(u.hashMB),
		engine.WithLogger(slog.Default().With("package", "engine")),
		engine.WithInfo(func(in engine.Info) { fmt.Fprintln(u.out, in) }),
	)
}

func (u *uci) loop(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Fprintln(u.out, "id name chessbot")
			fmt.Fprintln(u.out, "id author chessbot developers")
			fmt.Fprintf(u.out, "option name Hash type spin default %d min 1 max 1024\n", engine.DefaultTTSize)
			fmt.Fprintln(u.out, "uciok")
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.board = position.StartPosition()
			u.search.ResetForNewGame()
		case "quit":
			return
		case "stop":
			// searches run synchronously; nothing is in flight here
		case "setoption":
			u.setOption(tokens[1:])
		case "position":
			u.position(tokens[1:])
		case "go":
			u.goCommand(ctx, tokens[1:])
		case "d":
			u.display()
		case "eval":
			fmt.Fprint(u.out, engine.EvaluateTrace(&u.board))
		case "stats":
			u.stats.Dump(u.out)
		default:
			fmt.Fprintln(u.out, "info string Unknown command:", line)
		}
	}
}

func (u *uci) setOption(args []string) {
	// setoption name <id> value <x>
	if len(args) != 4 || strings.ToLower(args[0]) != "name" || strings.ToLower(args[2]) != "value" {
		fmt.Fprintln(u.out, "info string Malformed setoption command")
		return
	}
	switch strings.ToLower(args[1]) {
	case "hash":
		mb, err := strconv.Atoi(args[3])
		if err != nil || mb < 1 {
			fmt.Fprintln(u.out, "info string Invalid Hash value", args[3])
			return
		}
		u.hashMB = mb
		u.newSearch()
	default:
		fmt.Fprintln(u.out, "info string Unknown option", args[1])
	}
}

// position handles "position [startpos | fen <fen>] [moves <m1> ... <mN>]".
func (u *uci) position(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(u.out, "info string Malformed position command")
		return
	}

	var board position.Position
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		board = position.StartPosition()
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		b, err := position.ParseFEN(strings.Join(rest[:end], " "))
		if err != nil {
			fmt.Fprintln(u.out, "info string Invalid fen position:", err)
			return
		}
		board = b
		rest = rest[end:]
	default:
		fmt.Fprintln(u.out, "info string Invalid position subcommand")
		return
	}

	history := make([]uint64, 0, 64)
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, tok := range rest[1:] {
			m, ok := findLegal(&board, strings.ToLower(tok))
			if !ok {
				fmt.Fprintln(u.out, "info string Move", tok, "not found for position", board.FEN())
				break
			}
			history = append(history, board.Hash())
			board = board.Apply(m)
		}
	}

	u.board = board
	u.search.SetGameHistory(history)
}

func findLegal(pos *position.Position, uciMove string) (position.Move, bool) {
	for _, m := range movegen.GenerateMoves(pos, false) {
		if m.String() == uciMove {
			return m, true
		}
	}
	return position.NoMove, false
}

type goParams struct {
	wtime, btime, winc, binc time.Duration
	movetime                 time.Duration
	depth                    int
}

func parseGo(args []string) (goParams, error) {
	var p goParams
	for i := 0; i < len(args); i++ {
		tok := strings.ToLower(args[i])
		if tok == "infinite" {
			continue
		}
		if i+1 >= len(args) {
			return p, fmt.Errorf("go option %s has no value", tok)
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			return p, fmt.Errorf("go option %s: %w", tok, err)
		}
		i++
		ms := time.Duration(n) * time.Millisecond
		switch tok {
		case "wtime":
			p.wtime = ms
		case "btime":
			p.btime = ms
		case "winc":
			p.winc = ms
		case "binc":
			p.binc = ms
		case "movetime":
			p.movetime = ms
		case "depth":
			p.depth = n
		case "movestogo", "nodes", "mate":
			// accepted and ignored
		default:
			return p, fmt.Errorf("unknown go option %s", tok)
		}
	}
	return p, nil
}

// budget picks the search depth and time for the side to move.
func (p goParams) budget(pos *position.Position) (int, time.Duration) {
	clock, inc := p.wtime, p.winc
	if pos.SideToMove() == position.Black {
		clock, inc = p.btime, p.binc
	}
	if clock <= 0 {
		clock = defaultClock
	}

	switch {
	case p.movetime > 0 && p.depth > 0:
		return p.depth, p.movetime
	case p.movetime > 0:
		return engine.DefaultMaxDepth, p.movetime
	case p.depth > 0:
		return p.depth, clock
	}
	return engine.SuggestDepth(pos, clock), engine.MoveBudget(pos, clock, inc)
}

func (u *uci) goCommand(ctx context.Context, args []string) {
	params, err := parseGo(args)
	if err != nil {
		fmt.Fprintln(u.out, "info string Malformed go command:", err)
		return
	}
	depth, budget := params.budget(&u.board)
	u.search.SetMaxDepth(depth)

	res := u.search.BestMove(ctx, u.board, budget.Seconds())
	u.stats = res.Stats
	if !res.HasMove {
		fmt.Fprintln(u.out, "bestmove 0000")
		return
	}
	fmt.Fprintln(u.out, "bestmove", res.Move)
}

func (u *uci) display() {
	diagram, err := notation.Diagram(&u.board)
	if err != nil {
		fmt.Fprintln(u.out, "info string", err)
		return
	}
	fmt.Fprint(u.out, diagram)
	fmt.Fprintln(u.out)
	fmt.Fprintln(u.out, "Fen:", u.board.FEN())
	fmt.Fprintf(u.out, "Key: %016x\n", u.board.Hash())

	var sans []string
	for _, m := range movegen.GenerateMoves(&u.board, false) {
		s, err := notation.SAN(&u.board, []position.Move{m})
		if err != nil {
			fmt.Fprintln(u.out, "info string", err)
			return
		}
		sans = append(sans, s[0])
	}
	fmt.Fprintln(u.out, "Legal:", strings.Join(sans, " "))
	if movegen.InCheck(&u.board) {
		fmt.Fprintln(u.out, "Checkers:", checkers(&u.board))
	}
}

func checkers(pos *position.Position) string {
	us := pos.SideToMove()
	bb := movegen.AttackersTo(pos, pos.KingSquare(us), us.Other())
	var parts []string
	for bb != 0 {
		sq := position.Square(bitboard.PopLSB(&bb))
		parts = append(parts, sq.String())
	}
	return strings.Join(parts, " ")
}
