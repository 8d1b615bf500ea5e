package engine

import (
	"time"

	"chessbot/bitboard"
	"chessbot/position"
)

// stopMargin is how close to the deadline the search gives up.
const stopMargin = 200 * time.Millisecond

type TimeHandler struct {
	start    time.Time
	deadline time.Time
	now      func() time.Time
}

func (th *TimeHandler) StartTime(budget time.Duration) {
	if th.now == nil {
		th.now = time.Now
	}
	th.start = th.now()
	th.deadline = th.start.Add(budget)
}

func (th *TimeHandler) Elapsed() time.Duration {
	return th.now().Sub(th.start)
}

func (th *TimeHandler) Remaining() time.Duration {
	return th.deadline.Sub(th.now())
}

/*
  - True once less than stopMargin is left before the deadline
  - False if we still got time
*/
func (th *TimeHandler) TimeStatus() bool {
	return th.Remaining() < stopMargin
}

// MoveBudget turns a UCI clock (remaining time and increment) into the
// time to spend on the next move.
func MoveBudget(pos *position.Position, remaining, increment time.Duration) time.Duration {
	movesLeft := estimateMovesRemaining(piecePhase(pos)) // 20..45

	const (
		overhead = 30 * time.Millisecond
		minMove  = 5 * time.Millisecond

		// never spend more than 70% of the clock
		maxFrac = 0.7

		panicThresh  = time.Second
		panicIncFrac = 0.90
	)

	var moveTime time.Duration
	switch {
	case increment > 0 && remaining < panicThresh:
		moveTime = time.Duration(float64(increment) * panicIncFrac)
	case increment > 0:
		moveTime = remaining/time.Duration(movesLeft) + increment
	default:
		moveTime = remaining / 40
	}

	moveTime = Min(moveTime, time.Duration(float64(remaining)*maxFrac))
	moveTime = Min(moveTime, remaining-overhead)
	return Max(moveTime, minMove)
}

// piecePhase is 24 with every minor and major piece on the board and 0
// with none.
func piecePhase(pos *position.Position) int {
	phase := 0
	for c := position.White; c <= position.Black; c++ {
		phase += bitboard.PopCount(pos.Pieces(c, position.Knight))
		phase += bitboard.PopCount(pos.Pieces(c, position.Bishop))
		phase += 2 * bitboard.PopCount(pos.Pieces(c, position.Rook))
		phase += 4 * bitboard.PopCount(pos.Pieces(c, position.Queen))
	}
	return Min(phase, 24)
}

func estimateMovesRemaining(phase int) int {
	// Linearly interpolate between 20 (endgame) and 45 (opening/middlegame)
	return (phase*25)/24 + 20
}

// SuggestDepth picks a fixed search depth from the number of pieces on the
// board and the clock.
func SuggestDepth(pos *position.Position, remaining time.Duration) int {
	pieces := bitboard.PopCount(pos.Occupied())
	switch {
	case pieces > 24:
		return 3
	case pieces > 12:
		if remaining > 30*time.Second {
			return 4
		}
		return 3
	default:
		if remaining > 60*time.Second {
			return 5
		}
		return 3
	}
}
