package bitboard

// Precomputed move data. Everything here is filled once by init and is
// read-only afterwards.
var (
	// DirectionOffsets is the square delta of one step in each direction.
	DirectionOffsets = [8]int{8, -8, -1, 1, 7, -7, 9, -9}

	// NumSquaresToEdge[sq][dir] counts the steps from sq to the board edge.
	NumSquaresToEdge [64][8]int

	KnightAttacks   [64]uint64
	KingAttacks     [64]uint64
	PawnAttackTable [2][64]uint64 // [0] white, [1] black

	// DirRayMask[dir][sq] is the ray leaving sq in dir, sq excluded.
	DirRayMask [8][64]uint64

	// AlignMask[a][b] is the whole line through a and b, or 0 when the two
	// squares do not share a rank, file or diagonal.
	AlignMask [64][64]uint64

	// Between[a][b] holds the squares strictly between two aligned squares.
	Between [64][64]uint64

	// DirectionLookup[a][b] is the direction index leading from a to b, or
	// -1 when they are not aligned.
	DirectionLookup [64][64]int8

	OrthogonalDistance      [64][64]int
	KingDistance            [64][64]int
	CentreManhattanDistance [64]int

	FileMask      [8]uint64
	RankMask      [8]uint64
	AdjacentFiles [8]uint64

	// ForwardFileMask[c][sq]: squares ahead of sq on its own file from the
	// point of view of colour c.
	ForwardFileMask [2][64]uint64
	// PassedPawnMask[c][sq]: squares on sq's file and the neighbouring files
	// ahead of sq. No enemy pawn there means a pawn on sq is passed.
	PassedPawnMask [2][64]uint64

	// PawnShieldSquares[c][sq] lists the shield squares of a king on sq:
	// the three files around it (clamped to b..g), first the rank in front
	// and then the one after that.
	PawnShieldSquares [2][64][]int
)

var knightOffsets = [8][2]int{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

// file/rank step of each direction, same order as DirectionOffsets
var directionSteps = [8][2]int{
	{0, 1}, {0, -1}, {-1, 0}, {1, 0},
	{-1, 1}, {1, -1}, {1, 1}, {-1, -1},
}

func init() {
	initMoveData()
	initRays()
	initDistances()
	initPawnMasks()
	initMagics()
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func initMoveData() {
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8

		north := 7 - rank
		south := rank
		west := file
		east := 7 - file
		NumSquaresToEdge[sq] = [8]int{
			north, south, west, east,
			min(north, west), min(south, east),
			min(north, east), min(south, west),
		}

		var knights uint64
		for _, off := range knightOffsets {
			f, r := file+off[0], rank+off[1]
			if onBoard(f, r) {
				knights |= SquareBB(r*8 + f)
			}
		}
		KnightAttacks[sq] = knights

		var king uint64
		for _, step := range directionSteps {
			f, r := file+step[0], rank+step[1]
			if onBoard(f, r) {
				king |= SquareBB(r*8 + f)
			}
		}
		KingAttacks[sq] = king

		PawnAttackTable[0][sq] = PawnAttacks(SquareBB(sq), true)
		PawnAttackTable[1][sq] = PawnAttacks(SquareBB(sq), false)
	}

	for f := 0; f < 8; f++ {
		FileMask[f] = FileA << uint(f)
		RankMask[f] = Rank1 << uint(8*f)
	}
	for f := 0; f < 8; f++ {
		if f > 0 {
			AdjacentFiles[f] |= FileMask[f-1]
		}
		if f < 7 {
			AdjacentFiles[f] |= FileMask[f+1]
		}
	}
}

func initRays() {
	for a := 0; a < 64; a++ {
		for b := 0; b < 64; b++ {
			DirectionLookup[a][b] = -1
		}
	}

	for sq := 0; sq < 64; sq++ {
		for dir := 0; dir < 8; dir++ {
			var ray uint64
			for i := 1; i <= NumSquaresToEdge[sq][dir]; i++ {
				target := sq + DirectionOffsets[dir]*i
				Between[sq][target] = ray
				DirectionLookup[sq][target] = int8(dir)
				ray |= SquareBB(target)
			}
			DirRayMask[dir][sq] = ray
		}
	}

	for a := 0; a < 64; a++ {
		for b := 0; b < 64; b++ {
			dir := DirectionLookup[a][b]
			if dir < 0 {
				continue
			}
			// the line is symmetric: both rays out of a along the axis
			opposite := dir ^ 1
			AlignMask[a][b] = DirRayMask[dir][a] | DirRayMask[opposite][a] | SquareBB(a)
		}
	}
}

func initDistances() {
	for a := 0; a < 64; a++ {
		af, ar := a%8, a/8
		CentreManhattanDistance[a] = min(abs(af-3), abs(af-4)) + min(abs(ar-3), abs(ar-4))
		for b := 0; b < 64; b++ {
			bf, br := b%8, b/8
			OrthogonalDistance[a][b] = abs(af-bf) + abs(ar-br)
			KingDistance[a][b] = max(abs(af-bf), abs(ar-br))
		}
	}
}

func initPawnMasks() {
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8

		ForwardFileMask[0][sq] = DirRayMask[North][sq]
		ForwardFileMask[1][sq] = DirRayMask[South][sq]

		var aheadWhite, aheadBlack uint64
		for r := rank + 1; r < 8; r++ {
			aheadWhite |= RankMask[r]
		}
		for r := rank - 1; r >= 0; r-- {
			aheadBlack |= RankMask[r]
		}
		PassedPawnMask[0][sq] = ForwardFileMask[0][sq] | (AdjacentFiles[file] & aheadWhite)
		PassedPawnMask[1][sq] = ForwardFileMask[1][sq] | (AdjacentFiles[file] & aheadBlack)

		clamped := min(max(file, 1), 6)
		for forward := 1; forward <= 2; forward++ {
			for off := -1; off <= 1; off++ {
				f := clamped + off
				if onBoard(f, rank+forward) {
					PawnShieldSquares[0][sq] = append(PawnShieldSquares[0][sq], (rank+forward)*8+f)
				}
				if onBoard(f, rank-forward) {
					PawnShieldSquares[1][sq] = append(PawnShieldSquares[1][sq], (rank-forward)*8+f)
				}
			}
		}
	}
}
