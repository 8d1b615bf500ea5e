package bitboard

import (
	"math/rand"
	"testing"

	dragon "github.com/dylhunn/dragontoothmg"
)

func TestSliderAttacksMatchDragontooth(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		occ := rnd.Uint64() & rnd.Uint64()
		for sq := 0; sq < 64; sq++ {
			if got, want := RookAttacks(sq, occ), dragon.CalculateRookMoveBitboard(uint8(sq), occ); got != want {
				t.Fatalf("rook sq=%d occ=%#x: got %#x want %#x", sq, occ, got, want)
			}
			if got, want := BishopAttacks(sq, occ), dragon.CalculateBishopMoveBitboard(uint8(sq), occ); got != want {
				t.Fatalf("bishop sq=%d occ=%#x: got %#x want %#x", sq, occ, got, want)
			}
		}
	}
}

func TestMagicMatchesRayCast(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		occ := rnd.Uint64()
		for sq := 0; sq < 64; sq++ {
			if RookAttacks(sq, occ) != SlowRookAttacks(sq, occ) {
				t.Fatalf("rook mismatch on %d", sq)
			}
			if BishopAttacks(sq, occ) != SlowBishopAttacks(sq, occ) {
				t.Fatalf("bishop mismatch on %d", sq)
			}
		}
	}
}

func TestPopLSB(t *testing.T) {
	bb := SquareBB(3) | SquareBB(17) | SquareBB(63)
	var got []int
	for bb != 0 {
		got = append(got, PopLSB(&bb))
	}
	want := []int{3, 17, 63}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if LSB(0) != 64 {
		t.Errorf("LSB(0) = %d, want 64", LSB(0))
	}
}

func TestShiftDoesNotWrap(t *testing.T) {
	if Shift(FileH, East) != 0 {
		t.Errorf("east shift of h-file should be empty")
	}
	if Shift(FileA, West) != 0 {
		t.Errorf("west shift of a-file should be empty")
	}
	// e4 pawn attacks d5 and f5 for white, d3 and f3 for black
	e4 := SquareBB(28)
	if got := PawnAttacks(e4, true); got != SquareBB(35)|SquareBB(37) {
		t.Errorf("white pawn attacks = %#x", got)
	}
	if got := PawnAttacks(e4, false); got != SquareBB(19)|SquareBB(21) {
		t.Errorf("black pawn attacks = %#x", got)
	}
}

func TestLeaperTables(t *testing.T) {
	tests := []struct {
		name  string
		table [64]uint64
		sq    int
		count int
	}{
		{"knight a1", KnightAttacks, 0, 2},
		{"knight d4", KnightAttacks, 27, 8},
		{"king a1", KingAttacks, 0, 3},
		{"king e4", KingAttacks, 28, 8},
	}
	for _, tt := range tests {
		if got := PopCount(tt.table[tt.sq]); got != tt.count {
			t.Errorf("%s: %d targets, want %d", tt.name, got, tt.count)
		}
	}
}

func TestAlignAndBetween(t *testing.T) {
	// a1 and h8 share the long diagonal
	if AlignMask[0][63] != 0x8040201008040201 {
		t.Errorf("AlignMask a1-h8 = %#x", AlignMask[0][63])
	}
	if Between[0][63] != 0x0040201008040200 {
		t.Errorf("Between a1-h8 = %#x", Between[0][63])
	}
	// a1 and b3 are not aligned
	if AlignMask[0][17] != 0 || Between[0][17] != 0 || DirectionLookup[0][17] != -1 {
		t.Errorf("a1-b3 should not be aligned")
	}
	if AlignMask[4][60] != FileMask[4] {
		t.Errorf("AlignMask e1-e8 should be the e-file")
	}
	if DirectionLookup[4][60] != North || DirectionLookup[60][4] != South {
		t.Errorf("direction lookup e1/e8 wrong")
	}
}

func TestDistances(t *testing.T) {
	if OrthogonalDistance[0][63] != 14 {
		t.Errorf("a1-h8 manhattan = %d", OrthogonalDistance[0][63])
	}
	if KingDistance[0][63] != 7 {
		t.Errorf("a1-h8 king distance = %d", KingDistance[0][63])
	}
	centre := []struct {
		sq, want int
	}{
		{27, 0}, // d4
		{36, 0}, // e5
		{0, 6},  // a1
		{63, 6}, // h8
		{18, 2}, // c3
		{7, 6},  // h1
	}
	for _, c := range centre {
		if got := CentreManhattanDistance[c.sq]; got != c.want {
			t.Errorf("centre distance of square %d = %d, want %d", c.sq, got, c.want)
		}
	}
}

func TestPawnMasks(t *testing.T) {
	// white pawn on e4: passed mask covers d5-f8
	want := uint64(0)
	for r := 4; r < 8; r++ {
		for f := 3; f <= 5; f++ {
			want |= SquareBB(r*8 + f)
		}
	}
	if PassedPawnMask[0][28] != want {
		t.Errorf("white passed mask e4 = %#x want %#x", PassedPawnMask[0][28], want)
	}
	// white king on g1 is shielded by f2 g2 h2 f3 g3 h3
	shield := PawnShieldSquares[0][6]
	wantShield := []int{13, 14, 15, 21, 22, 23}
	if len(shield) != len(wantShield) {
		t.Fatalf("shield g1 = %v", shield)
	}
	for i := range wantShield {
		if shield[i] != wantShield[i] {
			t.Fatalf("shield g1 = %v want %v", shield, wantShield)
		}
	}
}

func BenchmarkRookAttacks(b *testing.B) {
	occ := uint64(0x00FF00000000FF00)
	var sink uint64
	for i := 0; i < b.N; i++ {
		sink ^= RookAttacks(i&63, occ)
	}
	_ = sink
}
