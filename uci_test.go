package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"chessbot/position"
)

func run(t *testing.T, script string) string {
	t.Helper()
	var out bytes.Buffer
	newUCI(&out).loop(context.Background(), strings.NewReader(script))
	return out.String()
}

func TestUCIHandshake(t *testing.T) {
	out := run(t, "uci\nisready\nquit\nisready\n")
	for _, want := range []string{"id name chessbot", "option name Hash", "uciok", "readyok"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "readyok") != 1 {
		t.Fatalf("commands after quit were handled:\n%s", out)
	}
}

func TestUCIGoDepth(t *testing.T) {
	out := run(t, "position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1\ngo depth 3\n")
	if !strings.Contains(out, "bestmove a1a8") {
		t.Fatalf("mate in one not played:\n%s", out)
	}
	if !strings.Contains(out, "info depth 1 ") || !strings.Contains(out, "score mate 1") {
		t.Fatalf("missing info lines:\n%s", out)
	}
}

func TestUCINoLegalMove(t *testing.T) {
	out := run(t, "position fen 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1\ngo depth 2\n")
	if !strings.Contains(out, "bestmove 0000") {
		t.Fatalf("stalemate output:\n%s", out)
	}
}

func TestUCIPosition(t *testing.T) {
	u := newUCI(&bytes.Buffer{})
	u.position(strings.Fields("startpos moves e2e4 e7e5 g1f3"))
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := u.board.FEN(); got != want {
		t.Fatalf("FEN = %q, want %q", got, want)
	}

	u.position(strings.Fields("fen 4k3/8/8/8/8/8/4P3/4K3 w - - 0 1 moves e2e4"))
	if got := u.board.FEN(); got != "4k3/8/8/8/4P3/8/8/4K3 b - e3 0 1" {
		t.Fatalf("FEN after fen+moves = %q", got)
	}

	var out bytes.Buffer
	u = newUCI(&out)
	u.position(strings.Fields("startpos moves e2e4 e2e4"))
	if !strings.Contains(out.String(), "not found") {
		t.Fatalf("illegal move not reported: %q", out.String())
	}
	if u.board.SideToMove() != position.Black {
		t.Fatal("moves before the illegal one were not applied")
	}
}

func TestParseGo(t *testing.T) {
	p, err := parseGo(strings.Fields("wtime 60000 btime 30000 winc 1000 binc 500 movestogo 20"))
	if err != nil {
		t.Fatal(err)
	}
	if p.wtime != time.Minute || p.btime != 30*time.Second || p.winc != time.Second || p.binc != 500*time.Millisecond {
		t.Fatalf("parsed %+v", p)
	}
	if _, err := parseGo(strings.Fields("depth")); err == nil {
		t.Fatal("missing depth value accepted")
	}
	if _, err := parseGo(strings.Fields("depth x")); err == nil {
		t.Fatal("non-numeric depth accepted")
	}
	if _, err := parseGo(strings.Fields("ponderhit 3")); err == nil {
		t.Fatal("unknown option accepted")
	}
}

func TestUCIMalformedGoDoesNotSearch(t *testing.T) {
	out := run(t, "go depth x\n")
	if !strings.Contains(out, "Malformed go command") {
		t.Fatalf("error not reported:\n%s", out)
	}
	if strings.Contains(out, "bestmove") || strings.Contains(out, "info depth") {
		t.Fatalf("searched after a malformed go:\n%s", out)
	}
}

func TestGoBudget(t *testing.T) {
	start := position.StartPosition()
	tests := []struct {
		name      string
		params    goParams
		wantDepth int
		wantTime  time.Duration
	}{
		{"depth only", goParams{depth: 7}, 7, defaultClock},
		{"movetime", goParams{movetime: 2 * time.Second}, 64, 2 * time.Second},
		{"clock", goParams{wtime: time.Minute, btime: time.Second}, 3, 1500 * time.Millisecond},
		{"nothing", goParams{}, 3, defaultClock / 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth, budget := tt.params.budget(&start)
			if depth != tt.wantDepth || budget != tt.wantTime {
				t.Fatalf("budget = (%d, %v), want (%d, %v)", depth, budget, tt.wantDepth, tt.wantTime)
			}
		})
	}
}

func TestUCISetOption(t *testing.T) {
	var out bytes.Buffer
	u := newUCI(&out)
	u.setOption(strings.Fields("name Hash value 4"))
	if u.hashMB != 4 {
		t.Fatalf("hash = %d MB, want 4", u.hashMB)
	}
	u.setOption(strings.Fields("name Hash value zero"))
	u.setOption(strings.Fields("name Ponder value true"))
	if !strings.Contains(out.String(), "Invalid Hash value") || !strings.Contains(out.String(), "Unknown option") {
		t.Fatalf("bad options not reported: %q", out.String())
	}
}

func TestUCIDebugCommands(t *testing.T) {
	out := run(t, "position startpos moves e2e4\nd\neval\ngo depth 1\nstats\n")
	for _, want := range []string{
		"Fen: rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b",
		"Nf6",
		"material",
		"info string Cut statistics:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestUCIUnknownCommand(t *testing.T) {
	if out := run(t, "fly\n"); !strings.Contains(out, "Unknown command: fly") {
		t.Fatalf("output %q", out)
	}
}
