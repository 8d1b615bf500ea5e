package engine

import (
	"math/rand"
	"testing"

	"chessbot/position"
)

func TestBookWeightsBySquareRoot(t *testing.T) {
	pos := position.StartPosition()
	book := NewBook(rand.New(rand.NewSource(7)))
	if err := book.Add(pos.Key(), "e2e4", 100); err != nil {
		t.Fatal(err)
	}
	if err := book.Add(pos.Key(), "d2d4", 1); err != nil {
		t.Fatal(err)
	}

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		m, ok := book.Lookup(pos.Key())
		if !ok {
			t.Fatal("book lost the start position")
		}
		counts[m.String()]++
	}
	// weights 10 : 1
	if counts["e2e4"] < 5*counts["d2d4"] || counts["d2d4"] == 0 {
		t.Fatalf("picks = %v", counts)
	}
	if len(counts) != 2 {
		t.Fatalf("unexpected moves picked: %v", counts)
	}
}

func TestBookAdd(t *testing.T) {
	book := NewBook(nil)
	pos := position.StartPosition()

	// a full FEN is reduced to the key without move counters
	if err := book.Add(position.FENStartPos, "g1f3", 2); err != nil {
		t.Fatal(err)
	}
	if err := book.Add(pos.Key(), "g1f3", 3); err != nil {
		t.Fatal(err)
	}
	if book.Len() != 1 {
		t.Fatalf("Len = %d, want 1", book.Len())
	}
	if got := book.positions[pos.Key()][0].timesPlayed; got != 5 {
		t.Fatalf("accumulated count = %d, want 5", got)
	}

	bad := []struct {
		key, move string
		n         int
	}{
		{"not a fen", "e2e4", 1},
		{pos.Key(), "e3e4", 1},
		{pos.Key(), "zz", 1},
		{pos.Key(), "e2e4", 0},
	}
	for _, b := range bad {
		if err := book.Add(b.key, b.move, b.n); err == nil {
			t.Errorf("Add(%q, %q, %d) accepted", b.key, b.move, b.n)
		}
	}
}

func TestBookLookupMiss(t *testing.T) {
	book := NewBook(nil)
	if _, ok := book.Lookup("8/8/8/8/8/8/8/8 w - -"); ok {
		t.Fatal("lookup hit in an empty book")
	}
}
