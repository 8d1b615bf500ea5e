package bitboard

import "math/bits"

const (
	FileA uint64 = 0x0101010101010101
	FileH uint64 = FileA << 7
	Rank1 uint64 = 0x00000000000000FF
	Rank8 uint64 = Rank1 << 56

	NotFileA = ^FileA
	NotFileH = ^FileH

	Empty uint64 = 0
	Full  uint64 = ^Empty
)

// Compass directions. The first four are orthogonal, the last four diagonal,
// so a direction index below 4 is a rook line and 4 or above a bishop line.
const (
	North = iota
	South
	West
	East
	NorthWest
	SouthEast
	NorthEast
	SouthWest
)

// SquareBB returns a bitboard with only sq set.
func SquareBB(sq int) uint64 { return uint64(1) << uint(sq) }

// Contains reports whether sq is set in bb.
func Contains(bb uint64, sq int) bool { return (bb>>uint(sq))&1 != 0 }

// LSB returns the index of the lowest set bit, or 64 for an empty board.
func LSB(bb uint64) int { return bits.TrailingZeros64(bb) }

// MSB returns the index of the highest set bit, or -1 for an empty board.
func MSB(bb uint64) int { return 63 - bits.LeadingZeros64(bb) }

// PopLSB clears the lowest set bit of *bb and returns its index.
func PopLSB(bb *uint64) int {
	sq := bits.TrailingZeros64(*bb)
	*bb &= *bb - 1
	return sq
}

// PopCount returns the number of set bits.
func PopCount(bb uint64) int { return bits.OnesCount64(bb) }

// Shift moves every bit one step in dir, dropping bits that would wrap
// around the a/h files.
func Shift(bb uint64, dir int) uint64 {
	switch dir {
	case North:
		return bb << 8
	case South:
		return bb >> 8
	case West:
		return (bb >> 1) & NotFileH
	case East:
		return (bb << 1) & NotFileA
	case NorthWest:
		return (bb << 7) & NotFileH
	case SouthEast:
		return (bb >> 7) & NotFileA
	case NorthEast:
		return (bb << 9) & NotFileA
	case SouthWest:
		return (bb >> 9) & NotFileH
	}
	return 0
}

// PawnAttacks returns every square attacked by the pawns in bb.
func PawnAttacks(bb uint64, white bool) uint64 {
	if white {
		return Shift(bb, NorthWest) | Shift(bb, NorthEast)
	}
	return Shift(bb, SouthWest) | Shift(bb, SouthEast)
}

// Squares returns the indices of the set bits in ascending order.
func Squares(bb uint64) []int {
	out := make([]int, 0, PopCount(bb))
	for bb != 0 {
		out = append(out, PopLSB(&bb))
	}
	return out
}
