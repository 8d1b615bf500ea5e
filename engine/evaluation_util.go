package engine

import "chessbot/position"

// FlipView mirrors a square vertically so black pieces can read the
// white-oriented tables.
var FlipView = [64]int{
	56, 57, 58, 59, 60, 61, 62, 63,
	48, 49, 50, 51, 52, 53, 54, 55,
	40, 41, 42, 43, 44, 45, 46, 47,
	32, 33, 34, 35, 36, 37, 38, 39,
	24, 25, 26, 27, 28, 29, 30, 31,
	16, 17, 18, 19, 20, 21, 22, 23,
	8, 9, 10, 11, 12, 13, 14, 15,
	0, 1, 2, 3, 4, 5, 6, 7,
}

// Material values used by the evaluator. Move ordering uses its own scale.
var PieceValue = [7]int{
	position.Pawn:   100,
	position.Knight: 300,
	position.Bishop: 320,
	position.Rook:   500,
	position.Queen:  900,
}

const (
	bishopPairBonus = 50

	// weights of the endgame transition: 1 - min(1, current/start)
	queenEndgameWeight  = 45
	rookEndgameWeight   = 20
	bishopEndgameWeight = 10
	knightEndgameWeight = 10
	endgameStartWeight  = 2*rookEndgameWeight + 2*bishopEndgameWeight + 2*knightEndgameWeight + queenEndgameWeight

	// opponent material at or below two rooks and two minors enables mop-up
	endgameMaterialStart = 2*500 + 320 + 300
)

// passedPawnBonus is indexed by the number of squares left to promotion.
var passedPawnBonus = [7]int{0, 120, 80, 50, 30, 15, 15}

// isolatedPawnPenalty is indexed by the number of isolated pawns.
var isolatedPawnPenalty = [9]int{0, -10, -25, -50, -75, -75, -75, -75, -75}

// kingPawnShieldScores is indexed by shield slot modulo six: the three
// squares right in front of the king, then the three after them.
var kingPawnShieldScores = [6]int{4, 7, 4, 3, 6, 3}

const (
	centreSquares  uint64 = 0x0000001818000000 // d4 e4 d5 e5
	expandedCentre uint64 = 0x00003C24243C0000 // ring around the centre
)

var (
	mobilityWeight   = [7]float64{position.Knight: 4, position.Bishop: 3, position.Rook: 2, position.Queen: 1}
	tropismWeight    = [7]float64{position.Knight: 2, position.Bishop: 1, position.Rook: 1.5, position.Queen: 4}
	centreWeight     = [7]float64{position.Pawn: 8, position.Knight: 6, position.Bishop: 5, position.Rook: 3, position.Queen: 3}
	expandedWeight   = [7]float64{position.Pawn: 4, position.Knight: 3, position.Bishop: 2, position.Rook: 1.5, position.Queen: 1.5}
	protectionWeight = [7]float64{position.Pawn: 2, position.Knight: 3, position.Bishop: 3, position.Rook: 4, position.Queen: 5}
)

// Piece-square tables from white's point of view, a1 first. Black reads
// them through FlipView.
var PSQT = [7][64]int{
	position.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	position.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	position.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	position.Rook: {
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	position.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
}

var kingStartTable = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, -5, -5, -5, -5, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-40, -50, -50, -60, -60, -50, -50, -40,
	-60, -60, -60, -60, -60, -60, -60, -60,
	-80, -70, -70, -70, -70, -70, -70, -80,
}

var kingEndTable = [64]int{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -25, 0, 0, 0, 0, -25, -30,
	-25, -20, 20, 25, 25, 20, -20, -25,
	-20, -15, 30, 40, 40, 30, -15, -20,
	-15, -10, 35, 45, 45, 35, -10, -15,
	-10, -5, 20, 30, 30, 20, -5, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

// pstIndex maps a square onto the white-oriented tables.
func pstIndex(sq int, c position.Color) int {
	if c == position.Black {
		return FlipView[sq]
	}
	return sq
}

// materialInfo is the per-side material summary the other terms depend on.
type materialInfo struct {
	pawns, knights, bishops, rooks, queens int
	material                               int
	endgameT                               float64
}

func countMaterial(pos *position.Position, c position.Color) materialInfo {
	var mi materialInfo
	mi.pawns = popCount(pos.Pieces(c, position.Pawn))
	mi.knights = popCount(pos.Pieces(c, position.Knight))
	mi.bishops = popCount(pos.Pieces(c, position.Bishop))
	mi.rooks = popCount(pos.Pieces(c, position.Rook))
	mi.queens = popCount(pos.Pieces(c, position.Queen))

	mi.material = mi.pawns*PieceValue[position.Pawn] +
		mi.knights*PieceValue[position.Knight] +
		mi.bishops*PieceValue[position.Bishop] +
		mi.rooks*PieceValue[position.Rook] +
		mi.queens*PieceValue[position.Queen]

	current := mi.queens*queenEndgameWeight + mi.rooks*rookEndgameWeight +
		mi.bishops*bishopEndgameWeight + mi.knights*knightEndgameWeight
	mi.endgameT = 1 - Min(1, float64(current)/float64(endgameStartWeight))
	return mi
}
