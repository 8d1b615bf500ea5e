package engine

import "chessbot/position"

/*
	HISTORY/COUNTER MOVES
	When a quiet move causes a beta cutoff we remember two things: a history
	score for its from/to squares, and that it answered the move just before
	it (a counter move). Both feed the ordering of quiet moves later on.
*/

const (
	historyMaxVal = 2_000_000
	counterMaxVal = 500
)

// AddHistory adds depth² to the from/to history score, capped at
// historyMaxVal. Piece and colour do not take part in the key.
func (o *Orderer) AddHistory(move position.Move, depth int) {
	if !onBoard(move) {
		return
	}
	h := &o.history[move.From][move.To]
	*h = Min(*h+depth*depth, historyMaxVal)
}

// AddCounter counts move as a reply to a move that landed on prev.To.
func (o *Orderer) AddCounter(prev, move position.Move) {
	if prev.IsZero() || !onBoard(prev) || !onBoard(move) {
		return
	}
	c := &o.counter[prev.To][move.From][move.To]
	*c = Min(*c+1, counterMaxVal)
}

func (o *Orderer) History(move position.Move) int {
	if !onBoard(move) {
		return 0
	}
	return o.history[move.From][move.To]
}

func (o *Orderer) Counter(prev, move position.Move) int {
	if prev.IsZero() || !onBoard(prev) || !onBoard(move) {
		return 0
	}
	return int(o.counter[prev.To][move.From][move.To])
}

// Clear resets killers, history and counter moves.
func (o *Orderer) Clear() {
	o.killers.ClearKillers()
	o.history = [64][64]int{}
	o.counter = [64][64][64]uint16{}
}

func onBoard(m position.Move) bool {
	return !m.IsNull() && m.From >= 0 && m.From < 64 && m.To >= 0 && m.To < 64
}
