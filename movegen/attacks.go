package movegen

import (
	"chessbot/bitboard"
	"chessbot/position"
)

// IsSquareAttacked reports whether any piece of colour by attacks sq in pos.
func IsSquareAttacked(pos *position.Position, sq position.Square, by position.Color) bool {
	return isSquareAttackedWithOcc(pos, int(sq), by, pos.Occupied())
}

func isSquareAttackedWithOcc(pos *position.Position, s int, by position.Color, occ uint64) bool {
	// Pawn attacks via the reverse table: a pawn of the other colour on s
	// would hit exactly the squares our attacking pawns stand on.
	if bitboard.PawnAttackTable[by.Other()][s]&pos.Pieces(by, position.Pawn) != 0 {
		return true
	}
	if bitboard.KnightAttacks[s]&pos.Pieces(by, position.Knight) != 0 {
		return true
	}
	if bitboard.KingAttacks[s]&pos.Pieces(by, position.King) != 0 {
		return true
	}
	if rq := pos.Sliders(by, true); rq != 0 && bitboard.RookAttacks(s, occ)&rq != 0 {
		return true
	}
	if bq := pos.Sliders(by, false); bq != 0 && bitboard.BishopAttacks(s, occ)&bq != 0 {
		return true
	}
	return false
}

// AttackersTo returns every piece of colour by attacking sq.
func AttackersTo(pos *position.Position, sq position.Square, by position.Color) uint64 {
	s := int(sq)
	occ := pos.Occupied()
	var attackers uint64
	attackers |= bitboard.PawnAttackTable[by.Other()][s] & pos.Pieces(by, position.Pawn)
	attackers |= bitboard.KnightAttacks[s] & pos.Pieces(by, position.Knight)
	attackers |= bitboard.KingAttacks[s] & pos.Pieces(by, position.King)
	attackers |= bitboard.RookAttacks(s, occ) & pos.Sliders(by, true)
	attackers |= bitboard.BishopAttacks(s, occ) & pos.Sliders(by, false)
	return attackers
}

// InCheck reports whether the side to move is in check. A side without a
// king is never in check.
func InCheck(pos *position.Position) bool {
	us := pos.SideToMove()
	ks := pos.KingSquare(us)
	if ks == position.NoSquare {
		return false
	}
	return IsSquareAttacked(pos, ks, us.Other())
}

// GivesCheck applies m and reports whether the opponent's king is attacked
// afterwards. It costs a full apply and is meant for move ordering, not for
// the inner search loop.
func GivesCheck(pos *position.Position, m position.Move) bool {
	next := pos.Apply(m)
	them := next.SideToMove()
	ks := next.KingSquare(them)
	if ks == position.NoSquare {
		return false
	}
	return IsSquareAttacked(&next, ks, them.Other())
}

// BlocksCheck reports whether the side to move is in check and m gets it
// out of check.
func BlocksCheck(pos *position.Position, m position.Move) bool {
	if !InCheck(pos) {
		return false
	}
	us := pos.SideToMove()
	next := pos.Apply(m)
	ks := next.KingSquare(us)
	if ks == position.NoSquare {
		return false
	}
	return !IsSquareAttacked(&next, ks, us.Other())
}

// PinnedPieces finds the pieces of colour c pinned against their own king.
// pinLine[sq] is the line a pinned piece on sq may still move along: the
// squares between the king and the pinner, pinner included.
func PinnedPieces(pos *position.Position, c position.Color) (pinned uint64, pinLine [64]uint64) {
	ks := pos.KingSquare(c)
	if ks == position.NoSquare {
		return 0, pinLine
	}
	k := int(ks)
	occ := pos.Occupied()
	own := pos.Colour(c)
	them := c.Other()

	for dir := 0; dir < 8; dir++ {
		sliders := pos.Sliders(them, dir < 4)
		if sliders == 0 {
			continue
		}
		blockers := bitboard.DirRayMask[dir][k] & occ
		if blockers == 0 {
			continue
		}
		first := firstAlong(blockers, dir)
		if !bitboard.Contains(own, first) {
			continue
		}
		beyond := bitboard.DirRayMask[dir][first] & occ
		if beyond == 0 {
			continue
		}
		next := firstAlong(beyond, dir)
		if bitboard.Contains(sliders, next) {
			pinned |= bitboard.SquareBB(first)
			pinLine[first] = bitboard.Between[k][next] | bitboard.SquareBB(next)
		}
	}
	return pinned, pinLine
}

// firstAlong returns the blocker nearest to the ray origin: rays with a
// positive step hit their lowest bit first, the others their highest.
func firstAlong(blockers uint64, dir int) int {
	if bitboard.DirectionOffsets[dir] > 0 {
		return bitboard.LSB(blockers)
	}
	return bitboard.MSB(blockers)
}
