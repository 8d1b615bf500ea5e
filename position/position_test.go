package position

import (
	"errors"
	"testing"
)

func mustFEN(t *testing.T, fen string) Position {
	t.Helper()
	p, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

func mustMove(t *testing.T, p *Position, uci string) Move {
	t.Helper()
	m, err := ParseMove(p, uci)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", uci, err)
	}
	return m
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		p := mustFEN(t, fen)
		if got := p.FEN(); got != fen {
			t.Errorf("round trip: got %q want %q", got, fen)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("%q: %v", fen, err)
		}
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq -",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1",
		"rnbqkbnr/ppppzppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	p := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := p
	for _, uci := range []string{"e1g1", "e5f7", "d5e6", "a1b1", "e2a6"} {
		_ = p.Apply(mustMove(t, &p, uci))
		if p != before {
			t.Fatalf("Apply(%s) changed the original position", uci)
		}
	}
}

func TestApplyKeepsHashCurrent(t *testing.T) {
	p := StartPosition()
	line := []string{"e2e4", "d7d5", "e4d5", "g8f6", "f1b5", "c7c6", "d5c6", "d8a5", "c6b7", "a5b5", "b7a8q"}
	for _, uci := range line {
		p = p.Apply(mustMove(t, &p, uci))
		if err := p.Validate(); err != nil {
			t.Fatalf("after %s: %v", uci, err)
		}
	}
	if p.PieceAt(MakeSquare(0, 7)) != WhiteQueen {
		t.Errorf("expected promoted queen on a8, got %c", p.PieceAt(MakeSquare(0, 7)).Char())
	}
}

func TestApplyCastling(t *testing.T) {
	p := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	next := p.Apply(mustMove(t, &p, "e1g1"))
	if next.PieceAt(5) != WhiteRook || next.PieceAt(6) != WhiteKing || next.PieceAt(7) != NoPiece {
		t.Fatalf("kingside castle placed pieces wrongly:\n%v", next.String())
	}
	if next.Castling() != CastleBlackKing|CastleBlackQueen {
		t.Errorf("castling after O-O = %v", next.Castling())
	}

	next = p.Apply(mustMove(t, &p, "a1b1"))
	if next.Castling() != CastleWhiteKing|CastleBlackKing|CastleBlackQueen {
		t.Errorf("castling after rook move = %v", next.Castling())
	}

	// capturing the h8 rook removes black's kingside right
	p = mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	p = p.Apply(mustMove(t, &p, "h1h8"))
	if p.Castling() != CastleWhiteQueen|CastleBlackQueen {
		t.Errorf("castling after hxh8 = %v", p.Castling())
	}

	p = mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	p = p.Apply(mustMove(t, &p, "e8c8"))
	if p.PieceAt(59) != BlackRook || p.PieceAt(58) != BlackKing || p.PieceAt(56) != NoPiece {
		t.Fatalf("queenside castle placed pieces wrongly:\n%v", p.String())
	}
}

func TestApplyEnPassant(t *testing.T) {
	p := mustFEN(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	m := mustMove(t, &p, "e5d6")
	if m.Tag != TagEnPassant {
		t.Fatalf("e5d6 tag = %v, want ep", m.Tag)
	}
	if !p.IsCapture(m) {
		t.Errorf("en passant should count as a capture")
	}
	next := p.Apply(m)
	if next.PieceAt(MakeSquare(3, 4)) != NoPiece {
		t.Errorf("captured pawn still on d5")
	}
	if next.PieceAt(MakeSquare(3, 5)) != WhitePawn {
		t.Errorf("capturing pawn not on d6")
	}
	if next.EnPassant() != NoSquare {
		t.Errorf("ep square should be cleared")
	}
}

func TestEnPassantSetOnlyAfterDoublePush(t *testing.T) {
	p := StartPosition()
	p = p.Apply(mustMove(t, &p, "e2e4"))
	if p.EnPassant() != MakeSquare(4, 2) {
		t.Fatalf("ep after e2e4 = %v, want e3", p.EnPassant())
	}
	p = p.Apply(mustMove(t, &p, "g8f6"))
	if p.EnPassant() != NoSquare {
		t.Fatalf("ep should expire, got %v", p.EnPassant())
	}
}

func TestApplyEmptySourceReturnsCopy(t *testing.T) {
	p := StartPosition()
	next := p.Apply(NewMove(MakeSquare(4, 3), MakeSquare(4, 4), TagNone))
	if next != p {
		t.Fatalf("malformed move should leave the position unchanged")
	}
}

func TestNullMove(t *testing.T) {
	p := mustFEN(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	n := p.NullMove()
	if n.SideToMove() != Black {
		t.Fatalf("null move did not flip side")
	}
	if n.Occupied() != p.Occupied() || n.Grid() != p.Grid() {
		t.Fatalf("null move changed placement")
	}
	if !n.LastMove().IsNull() {
		t.Errorf("last move should be the null move")
	}
	back := n.NullMove()
	if back.SideToMove() != p.SideToMove() || back.Grid() != p.Grid() {
		t.Fatalf("double null move should restore side and placement")
	}
	if err := back.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestHashEquality(t *testing.T) {
	// the same position reached by a transposition hashes identically
	a := StartPosition()
	for _, uci := range []string{"g1f3", "g8f6", "b1c3", "b8c6"} {
		a = a.Apply(mustMove(t, &a, uci))
	}
	b := StartPosition()
	for _, uci := range []string{"b1c3", "b8c6", "g1f3", "g8f6"} {
		b = b.Apply(mustMove(t, &b, uci))
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("transposed positions hash differently")
	}
	c := mustFEN(t, a.FEN())
	if c.Hash() != a.Hash() {
		t.Fatalf("parsed position hash differs from played one")
	}

	d := a.Apply(mustMove(t, &a, "a2a3"))
	if d.Hash() == a.Hash() {
		t.Fatalf("different positions share a hash")
	}
	n := a.NullMove()
	if n.Hash() == a.Hash() {
		t.Fatalf("side to move not part of the hash")
	}
}

func TestNewFromGrid(t *testing.T) {
	start := StartPosition()
	g := start.Grid()

	p, err := New(g, "KQkq", White, NoMove)
	if err != nil {
		t.Fatal(err)
	}
	if p.Hash() != start.Hash() || p.Key() != start.Key() {
		t.Fatalf("New(grid) differs from start position: %q", p.Key())
	}

	after := start.Apply(NewMove(MakeSquare(4, 1), MakeSquare(4, 3), TagDoublePush))
	q, err := New(after.Grid(), "KQkq", Black, NewMove(MakeSquare(4, 1), MakeSquare(4, 3), TagNone))
	if err != nil {
		t.Fatal(err)
	}
	if q.EnPassant() != MakeSquare(4, 2) {
		t.Fatalf("ep from last move = %v, want e3", q.EnPassant())
	}
	if q.Hash() != after.Hash() {
		t.Fatalf("hash of constructed position differs from played one")
	}

	if _, err := New(g, "KQx", White, NoMove); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("bad castling string: err = %v", err)
	}
}

func TestKingSquare(t *testing.T) {
	p := StartPosition()
	if p.KingSquare(White) != 4 || p.KingSquare(Black) != 60 {
		t.Fatalf("king squares = %v %v", p.KingSquare(White), p.KingSquare(Black))
	}
	noKing := mustFEN(t, "8/8/8/8/8/8/8/4K3 w - - 0 1")
	if noKing.KingSquare(Black) != NoSquare {
		t.Fatalf("missing king should report NoSquare")
	}
}

func TestKeyDropsCounters(t *testing.T) {
	p := mustFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if got, want := p.Key(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3"; got != want {
		t.Fatalf("Key() = %q want %q", got, want)
	}
}

func TestParseMove(t *testing.T) {
	p := mustFEN(t, "r3k2r/1P6/8/8/8/8/4P3/R3K2R w KQkq - 0 1")
	tests := []struct {
		uci string
		tag Tag
	}{
		{"e1g1", TagCastle},
		{"e1c1", TagCastle},
		{"e2e4", TagDoublePush},
		{"e2e3", TagNone},
		{"b7a8q", TagPromoteQueen},
		{"b7b8n", TagPromoteKnight},
	}
	for _, tt := range tests {
		m := mustMove(t, &p, tt.uci)
		if m.Tag != tt.tag {
			t.Errorf("%s: tag %v want %v", tt.uci, m.Tag, tt.tag)
		}
		if m.String() != tt.uci {
			t.Errorf("%s: String() = %q", tt.uci, m.String())
		}
	}
	if _, err := ParseMove(&p, "e8e7"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("moving the opponent's piece: err = %v", err)
	}
	if _, err := ParseMove(&p, "e9e4"); err == nil {
		t.Errorf("expected syntax error")
	}
	if NullMove.String() != "0000" {
		t.Errorf("null move string = %q", NullMove.String())
	}
}
