package engine

import (
	"fmt"
	"strings"

	"chessbot/bitboard"
	"chessbot/movegen"
	"chessbot/position"
)

// EvalTerms holds one side's share of the evaluation, term by term.
type EvalTerms struct {
	Material   float64
	PST        float64
	Mopup      float64
	Pawns      float64
	Shield     float64
	Files      float64
	Mobility   float64
	Tropism    float64
	Centre     float64
	Protection float64
}

func (t EvalTerms) total() float64 {
	return t.Material + t.PST + t.Mopup + t.Pawns + t.Shield + t.Files +
		t.Mobility + t.Tropism + t.Centre + t.Protection
}

// Trace is the full breakdown behind Evaluate. Score is relative to the
// side to move, like Evaluate.
type Trace struct {
	White, Black EvalTerms
	Score        int
}

func (tr Trace) String() string {
	var sb strings.Builder
	row := func(name string, w, b float64) {
		fmt.Fprintf(&sb, "%-11s %8.1f %8.1f %8.1f\n", name, w, b, w-b)
	}
	fmt.Fprintf(&sb, "%-11s %8s %8s %8s\n", "term", "white", "black", "diff")
	row("material", tr.White.Material, tr.Black.Material)
	row("pst", tr.White.PST, tr.Black.PST)
	row("mopup", tr.White.Mopup, tr.Black.Mopup)
	row("pawns", tr.White.Pawns, tr.Black.Pawns)
	row("shield", tr.White.Shield, tr.Black.Shield)
	row("files", tr.White.Files, tr.Black.Files)
	row("mobility", tr.White.Mobility, tr.Black.Mobility)
	row("tropism", tr.White.Tropism, tr.Black.Tropism)
	row("centre", tr.White.Centre, tr.Black.Centre)
	row("protection", tr.White.Protection, tr.Black.Protection)
	fmt.Fprintf(&sb, "score (side to move) %d\n", tr.Score)
	return sb.String()
}

// Evaluate scores pos in centipawns from the side to move's point of view.
func Evaluate(pos *position.Position) int {
	return EvaluateTrace(pos).Score
}

// EvaluateTrace runs the evaluator and keeps every term.
func EvaluateTrace(pos *position.Position) Trace {
	var tr Trace
	white := countMaterial(pos, position.White)
	black := countMaterial(pos, position.Black)

	tr.White = evaluateSide(pos, position.White, white, black)
	tr.Black = evaluateSide(pos, position.Black, black, white)

	score := round(tr.White.total() - tr.Black.total())
	if pos.SideToMove() == position.Black {
		score = -score
	}
	tr.Score = score
	return tr
}

func evaluateSide(pos *position.Position, c position.Color, mine, theirs materialInfo) EvalTerms {
	pinned, _ := movegen.PinnedPieces(pos, c)
	eT := mine.endgameT

	t := EvalTerms{
		Material:   float64(mine.material),
		PST:        float64(pieceSquareScore(pos, c, eT)),
		Mopup:      float64(mopUpBonus(pos, c, mine, theirs)),
		Pawns:      float64(pawnStructure(pos, c)),
		Shield:     float64(kingPawnShield(pos, c, theirs)),
		Files:      openFiles(pos, c, eT),
		Mobility:   mobility(pos, c, eT, pinned),
		Tropism:    kingTropism(pos, c, eT),
		Centre:     centreControl(pos, c, eT, pinned),
		Protection: pieceProtection(pos, c, eT, pinned),
	}
	if mine.bishops >= 2 {
		t.Material += bishopPairBonus
	}
	return t
}

func pieceSquareScore(pos *position.Position, c position.Color, endgameT float64) int {
	total := 0
	for k := position.Pawn; k <= position.Queen; k++ {
		bb := pos.Pieces(c, k)
		for bb != 0 {
			sq := bitboard.PopLSB(&bb)
			total += PSQT[k][pstIndex(sq, c)]
		}
	}

	ks := pos.KingSquare(c)
	if ks == position.NoSquare {
		return total
	}
	idx := pstIndex(int(ks), c)
	mg := float64(kingStartTable[idx])
	eg := float64(kingEndTable[idx])
	total += int((1-endgameT)*mg + endgameT*eg)
	return total
}

// mopUpBonus pulls our king towards the enemy king and rewards pushing it
// to the edge once the opponent is down to light material.
func mopUpBonus(pos *position.Position, c position.Color, mine, theirs materialInfo) int {
	if mine.queens > 0 || theirs.material > endgameMaterialStart {
		return 0
	}
	ks := pos.KingSquare(c)
	oks := pos.KingSquare(c.Other())
	if ks == position.NoSquare || oks == position.NoSquare {
		return 0
	}
	bonus := (14 - bitboard.OrthogonalDistance[ks][oks]) * 4
	bonus += bitboard.CentreManhattanDistance[oks] * 10
	return bonus
}

func pawnStructure(pos *position.Position, c position.Color) int {
	pawns := pos.Pieces(c, position.Pawn)
	enemyPawns := pos.Pieces(c.Other(), position.Pawn)

	total := 0
	isolated := 0
	for bb := pawns; bb != 0; {
		sq := bitboard.PopLSB(&bb)
		if pawns&bitboard.AdjacentFiles[sq&7] == 0 {
			isolated++
		}
		if enemyPawns&bitboard.PassedPawnMask[c][sq] == 0 {
			rank := sq >> 3
			toPromotion := 7 - rank
			if c == position.Black {
				toPromotion = rank
			}
			total += passedPawnBonus[toPromotion]
		}
	}
	total += isolatedPawnPenalty[isolated]
	return total
}

// kingPawnShield only matters while the opponent keeps a queen.
func kingPawnShield(pos *position.Position, c position.Color, theirs materialInfo) int {
	if theirs.queens == 0 {
		return 0
	}
	ks := pos.KingSquare(c)
	if ks == position.NoSquare {
		return 0
	}
	pawns := pos.Pieces(c, position.Pawn)
	score := 0
	for i, sq := range bitboard.PawnShieldSquares[c][ks] {
		if bitboard.Contains(pawns, sq) {
			score += kingPawnShieldScores[i%len(kingPawnShieldScores)]
		}
	}
	return score
}

func openFiles(pos *position.Position, c position.Color, endgameT float64) float64 {
	rooks := pos.Pieces(c, position.Rook)
	queens := pos.Pieces(c, position.Queen)
	ownPawns := pos.Pieces(c, position.Pawn)
	enemyPawns := pos.Pieces(c.Other(), position.Pawn)

	total := 0.0
	for file := 0; file < 8; file++ {
		mask := bitboard.FileMask[file]
		switch {
		case (ownPawns|enemyPawns)&mask == 0:
			if rooks&mask != 0 {
				total += 15 * (1 + endgameT*0.5)
			}
			if queens&mask != 0 {
				total += 10 * (1 - endgameT*0.3)
			}
		case ownPawns&mask == 0:
			if rooks&mask != 0 {
				total += 10 * (1 + endgameT*0.5)
			}
			if queens&mask != 0 {
				total += 5 * (1 - endgameT*0.3)
			}
		}
	}
	return total
}

func pieceAttacks(k position.Kind, sq int, occ uint64) uint64 {
	switch k {
	case position.Knight:
		return bitboard.KnightAttacks[sq]
	case position.Bishop:
		return bitboard.BishopAttacks(sq, occ)
	case position.Rook:
		return bitboard.RookAttacks(sq, occ)
	case position.Queen:
		return bitboard.QueenAttacks(sq, occ)
	}
	return 0
}

// mobility counts reachable squares; a pinned piece only keeps the ones on
// its pin line.
func mobility(pos *position.Position, c position.Color, endgameT float64, pinned uint64) float64 {
	ks := pos.KingSquare(c)
	if ks == position.NoSquare {
		return 0
	}
	own := pos.Colour(c)
	occ := pos.Occupied()

	total := 0.0
	for k := position.Knight; k <= position.Queen; k++ {
		scale := 1 - endgameT*0.1
		if k == position.Rook || k == position.Queen {
			scale = 1 + endgameT*0.2
		}
		bb := pos.Pieces(c, k)
		for bb != 0 {
			sq := bitboard.PopLSB(&bb)
			attacks := pieceAttacks(k, sq, occ)
			if bitboard.Contains(pinned, sq) {
				attacks &= bitboard.AlignMask[sq][ks]
			}
			total += float64(popCount(attacks&^own)) * mobilityWeight[k] * scale
		}
	}
	return total
}

func kingTropism(pos *position.Position, c position.Color, endgameT float64) float64 {
	oks := pos.KingSquare(c.Other())
	if oks == position.NoSquare {
		return 0
	}
	total := 0.0
	for k := position.Knight; k <= position.Queen; k++ {
		bb := pos.Pieces(c, k)
		for bb != 0 {
			sq := bitboard.PopLSB(&bb)
			closeness := Max(0, 7-bitboard.OrthogonalDistance[sq][oks])
			total += float64(closeness) * tropismWeight[k] * (1 - endgameT*0.5)
		}
	}
	return total
}

func centreControl(pos *position.Position, c position.Color, endgameT float64, pinned uint64) float64 {
	total := 0.0
	for k := position.Pawn; k <= position.Queen; k++ {
		bb := pos.Pieces(c, k) &^ pinned
		for bb != 0 {
			sq := bitboard.PopLSB(&bb)
			switch {
			case bitboard.Contains(centreSquares, sq):
				total += centreWeight[k] * (1 - endgameT*0.3)
			case bitboard.Contains(expandedCentre, sq):
				total += expandedWeight[k] * (1 - endgameT*0.3)
			}
		}
	}
	return total
}

// pieceProtection rewards pieces that have more defenders than attackers.
func pieceProtection(pos *position.Position, c position.Color, endgameT float64, pinned uint64) float64 {
	total := 0.0
	for k := position.Pawn; k <= position.Queen; k++ {
		bb := pos.Pieces(c, k) &^ pinned
		for bb != 0 {
			sq := position.Square(bitboard.PopLSB(&bb))
			defenders := popCount(movegen.AttackersTo(pos, sq, c))
			if defenders == 0 {
				continue
			}
			margin := defenders - popCount(movegen.AttackersTo(pos, sq, c.Other()))
			if margin > 0 {
				total += float64(margin) * protectionWeight[k] * (1 - 0.5*endgameT)
			}
		}
	}
	return total
}
