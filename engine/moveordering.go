package engine

import (
	"chessbot/movegen"
	"chessbot/position"

	"golang.org/x/exp/slices"
)

type move struct {
	move  position.Move
	score int
}

/*
	Move ordering, in buckets:
	- The PV move, then the TT move (each only if it is actually in the list).
	- Captures by MVV-LVA plus a heavily weighted SEE, so losing captures sink.
	- Checks, knight checks before the rest.
	- Quiet moves by killer slot, history and counter-move score.
	- Castling last.
	Buckets keep generation order on equal scores.
*/

// Quiet-move offsets; a killer always beats the best history score.
const (
	killerOffset0 = 3_000_000
	killerOffset1 = 2_900_000
	counterWeight = 10

	knightCheckScore = 1000
	otherCheckScore  = 500
)

// Orderer holds the per-search move ordering heuristics. It is not safe for
// concurrent use.
type Orderer struct {
	killers KillerStruct
	history [64][64]int
	counter [64][64][64]uint16

	captures, checks, quiets []move
	castles                  []position.Move
}

func NewOrderer() *Orderer {
	return &Orderer{}
}

// InsertKiller records a quiet cutoff move at ply. Captures are ignored.
func (o *Orderer) InsertKiller(pos *position.Position, m position.Move, ply int) {
	if pos.IsCapture(m) {
		return
	}
	o.killers.InsertKiller(m, ply)
}

// Killers returns the two killer slots at ply.
func (o *Orderer) Killers(ply int) [2]position.Move {
	if ply < 0 || ply > MaxPly {
		return [2]position.Move{}
	}
	return o.killers.KillerMoves[ply]
}

func byScoreDesc(a, b move) int {
	switch {
	case a.score > b.score:
		return -1
	case a.score < b.score:
		return 1
	}
	return 0
}

// OrderMoves returns moves in search order. The input slice is left as is.
func (o *Orderer) OrderMoves(moves []position.Move, ply int, pos *position.Position, pvMove, ttMove position.Move) []position.Move {
	ordered := make([]position.Move, 0, len(moves))
	if len(moves) == 0 {
		return ordered
	}

	o.captures = o.captures[:0]
	o.checks = o.checks[:0]
	o.quiets = o.quiets[:0]
	o.castles = o.castles[:0]

	hasPV, hasTT := false, false
	for _, m := range moves {
		if !pvMove.IsZero() && m == pvMove {
			hasPV = true
			continue
		}
		if !ttMove.IsZero() && m == ttMove {
			hasTT = true
			continue
		}
		switch {
		case pos.IsCapture(m):
			score := MVVLVA(pos, m) + SEE(pos, m.To, m.From)*100
			o.captures = append(o.captures, move{m, score})
		case movegen.GivesCheck(pos, m):
			score := otherCheckScore
			if pos.PieceAt(m.From).Kind() == position.Knight {
				score = knightCheckScore
			}
			o.checks = append(o.checks, move{m, score})
		case m.IsCastle():
			o.castles = append(o.castles, m)
		default:
			o.quiets = append(o.quiets, move{m, o.quietScore(pos, m, ply)})
		}
	}

	slices.SortStableFunc(o.captures, byScoreDesc)
	slices.SortStableFunc(o.checks, byScoreDesc)
	slices.SortStableFunc(o.quiets, byScoreDesc)

	if hasPV {
		ordered = append(ordered, pvMove)
	}
	if hasTT {
		ordered = append(ordered, ttMove)
	}
	for _, sm := range o.captures {
		ordered = append(ordered, sm.move)
	}
	for _, sm := range o.checks {
		ordered = append(ordered, sm.move)
	}
	for _, sm := range o.quiets {
		ordered = append(ordered, sm.move)
	}
	return append(ordered, o.castles...)
}

func (o *Orderer) quietScore(pos *position.Position, m position.Move, ply int) int {
	score := o.History(m)
	switch o.killers.killerSlot(m, ply) {
	case 0:
		score += killerOffset0
	case 1:
		score += killerOffset1
	}
	score += o.Counter(pos.LastMove(), m) * counterWeight
	return score
}
