package engine

import (
	"fmt"
	"strings"
	"time"

	"chessbot/position"
)

// PVLine is the principal variation below a node, best move first.
type PVLine struct {
	Moves []position.Move
}

func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// Update sets the line to move followed by the child's line.
func (pv *PVLine) Update(move position.Move, child PVLine) {
	pv.Clear()
	pv.Moves = append(pv.Moves, move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

func (pv PVLine) Clone() PVLine {
	return PVLine{Moves: append([]position.Move(nil), pv.Moves...)}
}

func (pv PVLine) GetPVMove() position.Move {
	if len(pv.Moves) == 0 {
		return position.NoMove
	}
	return pv.Moves[0]
}

func (pv PVLine) String() string {
	parts := make([]string, len(pv.Moves))
	for i, m := range pv.Moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// Info describes one finished iteration of the search.
type Info struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	PV    []position.Move
}

// String renders the iteration as a UCI info line.
func (in Info) String() string {
	ms := in.Time.Milliseconds()
	if ms == 0 {
		ms = 1
	}
	nps := in.Nodes * 1000 / uint64(ms)
	return fmt.Sprintf("info depth %d score %s nodes %d time %d nps %d pv %s",
		in.Depth, getMateOrCPScore(in.Score), in.Nodes, ms, nps, PVLine{Moves: in.PV})
}

// getMateOrCPScore formats a score as "cp N" or, for mate scores, as
// "mate N" in moves (negative when we are the side being mated).
func getMateOrCPScore(score int) string {
	if score > Checkmate {
		plies := Max(0, MateScore-score)
		return fmt.Sprintf("mate %d", (plies+1)/2)
	}
	if score < -Checkmate {
		plies := Max(0, MateScore+score)
		return fmt.Sprintf("mate %d", -(plies+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

// IsMateScore reports whether score encodes a forced mate.
func IsMateScore(score int) bool {
	return score > Checkmate || score < -Checkmate
}
