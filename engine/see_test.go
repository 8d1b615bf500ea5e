package engine

import (
	"testing"

	"chessbot/position"
)

func mustPosition(tb testing.TB, fen string) position.Position {
	tb.Helper()
	pos, err := position.ParseFEN(fen)
	if err != nil {
		tb.Fatalf("parse FEN %q: %v", fen, err)
	}
	return pos
}

func mustMove(tb testing.TB, pos *position.Position, uci string) position.Move {
	tb.Helper()
	m, err := position.ParseMove(pos, uci)
	if err != nil {
		tb.Fatalf("parse move %q: %v", uci, err)
	}
	return m
}

func square(tb testing.TB, coord string) position.Square {
	tb.Helper()
	sq, err := position.ParseSquare(coord)
	if err != nil {
		tb.Fatalf("parse square %q: %v", coord, err)
	}
	return sq
}

func TestSEEOnlyCountsFirstExchange(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		from, to string
		want     int
	}{
		// recapture by the pawn on g7 would make this worse; it is not played out
		{"bishop takes knight", "6k1/4q1p1/4n3/8/2B5/8/8/6K1 w - - 0 1", "c4", "e6", 320 - 330},
		{"pawn takes queen", "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1", "e4", "d5", 950 - 100},
		{"queen takes pawn", "4k3/2p5/3p4/8/8/8/8/3QK3 w - - 0 1", "d1", "d6", 100 - 950},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5", "d6", 0},
		{"empty source", position.FENStartPos, "e3", "e4", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := mustPosition(t, tt.fen)
			got := SEE(&pos, square(t, tt.to), square(t, tt.from))
			if got != tt.want {
				t.Fatalf("SEE %s%s = %d, want %d", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestMVVLVA(t *testing.T) {
	pos := mustPosition(t, "4k3/8/8/3q4/4P3/2n5/8/4K3 w - - 0 1")
	pxq := mustMove(t, &pos, "e4d5")
	if got, want := MVVLVA(&pos, pxq), 950*10-100; got != want {
		t.Fatalf("MVVLVA(pawn takes queen) = %d, want %d", got, want)
	}

	pos = mustPosition(t, "4k3/8/8/8/8/8/3n4/4K3 w - - 0 1")
	kxn := mustMove(t, &pos, "e1d2")
	if got, want := MVVLVA(&pos, kxn), 320*10; got != want {
		t.Fatalf("MVVLVA(king takes knight) = %d, want %d", got, want)
	}

	quiet := mustMove(t, &pos, "e1f1")
	if got := MVVLVA(&pos, quiet); got != 0 {
		t.Fatalf("MVVLVA(quiet) = %d, want 0", got)
	}
}
