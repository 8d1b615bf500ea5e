package engine

import (
	"fmt"
	"math"
	"math/rand"

	"chessbot/position"
)

// BookProvider supplies a move for a known position before any search is
// done. key is Position.Key(): the FEN without the move counters.
type BookProvider interface {
	Lookup(key string) (position.Move, bool)
}

type bookEntry struct {
	move        string
	timesPlayed int
}

// Book is an in-memory opening book. Moves are drawn at random, weighted by
// the square root of how often they were played, so popular lines are
// preferred without always repeating the same one.
type Book struct {
	rng       *rand.Rand
	positions map[string][]bookEntry
}

func NewBook(rng *rand.Rand) *Book {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Book{rng: rng, positions: make(map[string][]bookEntry)}
}

// Add records uciMove as played timesPlayed times from the position with
// the given key. Adding the same move again accumulates the count.
func (b *Book) Add(key, uciMove string, timesPlayed int) error {
	if timesPlayed <= 0 {
		return fmt.Errorf("book entry %s %s: times played must be positive, got %d", key, uciMove, timesPlayed)
	}
	pos, err := position.ParseFEN(key)
	if err != nil {
		return fmt.Errorf("book entry %q: %w", key, err)
	}
	if _, err := position.ParseMove(&pos, uciMove); err != nil {
		return fmt.Errorf("book entry %q: %w", key, err)
	}
	key = pos.Key()

	entries := b.positions[key]
	for i := range entries {
		if entries[i].move == uciMove {
			entries[i].timesPlayed += timesPlayed
			return nil
		}
	}
	b.positions[key] = append(entries, bookEntry{move: uciMove, timesPlayed: timesPlayed})
	return nil
}

// Len is the number of positions in the book.
func (b *Book) Len() int { return len(b.positions) }

func (b *Book) Lookup(key string) (position.Move, bool) {
	entries := b.positions[key]
	if len(entries) == 0 {
		return position.NoMove, false
	}
	pos, err := position.ParseFEN(key)
	if err != nil {
		log.Warn("unreadable book key", "key", key, "err", err)
		return position.NoMove, false
	}

	total := 0.0
	for _, e := range entries {
		total += math.Sqrt(float64(e.timesPlayed))
	}
	pick := b.rng.Float64() * total
	chosen := entries[len(entries)-1]
	for _, e := range entries {
		pick -= math.Sqrt(float64(e.timesPlayed))
		if pick < 0 {
			chosen = e
			break
		}
	}

	m, err := position.ParseMove(&pos, chosen.move)
	if err != nil {
		return position.NoMove, false
	}
	return m, true
}
