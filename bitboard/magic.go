package bitboard

// Fancy magic bitboards for sliding attacks. The multipliers are searched at
// startup with a fixed-seed generator, so every run builds identical tables.

// Magic holds the lookup data of one square.
type Magic struct {
	Mask   uint64 // relevant occupancy, board edges excluded
	Magic  uint64
	Shift  uint8
	Offset uint32 // start of this square's block in the attack table
}

var (
	RookMagics   [64]Magic
	BishopMagics [64]Magic

	rookTable   []uint64
	bishopTable []uint64
)

const magicSeed = 0x2545F4914F6CDD1D

// xorshift64* generator used only for the magic search
type magicRand struct{ state uint64 }

func (r *magicRand) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 0x2545F4914F6CDD1D
}

// sparse candidates have few set bits and make good multipliers
func (r *magicRand) sparse() uint64 {
	return r.next() & r.next() & r.next()
}

// RookAttacks returns the squares a rook on sq attacks given occupancy occ.
func RookAttacks(sq int, occ uint64) uint64 {
	m := &RookMagics[sq]
	return rookTable[m.Offset+uint32(((occ&m.Mask)*m.Magic)>>m.Shift)]
}

// BishopAttacks returns the squares a bishop on sq attacks given occupancy occ.
func BishopAttacks(sq int, occ uint64) uint64 {
	m := &BishopMagics[sq]
	return bishopTable[m.Offset+uint32(((occ&m.Mask)*m.Magic)>>m.Shift)]
}

func QueenAttacks(sq int, occ uint64) uint64 {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

func initMagics() {
	rng := &magicRand{state: magicSeed}
	rookTable = buildMagics(&RookMagics, rookMask, SlowRookAttacks, rng)
	bishopTable = buildMagics(&BishopMagics, bishopMask, SlowBishopAttacks, rng)
}

func buildMagics(magics *[64]Magic, mask func(int) uint64, slow func(int, uint64) uint64, rng *magicRand) []uint64 {
	var table []uint64
	for sq := 0; sq < 64; sq++ {
		m := mask(sq)
		n := PopCount(m)
		size := 1 << n

		occs := make([]uint64, size)
		attacks := make([]uint64, size)
		for i := 0; i < size; i++ {
			occs[i] = indexToOccupancy(i, n, m)
			attacks[i] = slow(sq, occs[i])
		}

		magic, block := findMagic(m, n, occs, attacks, rng)
		magics[sq] = Magic{
			Mask:   m,
			Magic:  magic,
			Shift:  uint8(64 - n),
			Offset: uint32(len(table)),
		}
		table = append(table, block...)
	}
	return table
}

func findMagic(mask uint64, n int, occs, attacks []uint64, rng *magicRand) (uint64, []uint64) {
	size := len(occs)
	block := make([]uint64, size)
	epoch := make([]int, size)
	shift := uint(64 - n)

	for attempt := 1; ; attempt++ {
		magic := rng.sparse()
		if PopCount((mask*magic)&0xFF00000000000000) < 6 {
			continue
		}
		ok := true
		for i := 0; i < size; i++ {
			idx := (occs[i] * magic) >> shift
			if epoch[idx] != attempt {
				epoch[idx] = attempt
				block[idx] = attacks[i]
			} else if block[idx] != attacks[i] {
				ok = false
				break
			}
		}
		if ok {
			return magic, block
		}
	}
}

// indexToOccupancy spreads the low n bits of index over the set bits of mask.
func indexToOccupancy(index, n int, mask uint64) uint64 {
	var occ uint64
	for i := 0; i < n; i++ {
		sq := PopLSB(&mask)
		if index&(1<<i) != 0 {
			occ |= SquareBB(sq)
		}
	}
	return occ
}

func rookMask(sq int) uint64 {
	file, rank := sq%8, sq/8
	var mask uint64
	for f := 1; f < 7; f++ {
		if f != file {
			mask |= SquareBB(rank*8 + f)
		}
	}
	for r := 1; r < 7; r++ {
		if r != rank {
			mask |= SquareBB(r*8 + file)
		}
	}
	return mask
}

func bishopMask(sq int) uint64 {
	return SlowBishopAttacks(sq, 0) &^ (Rank1 | Rank8 | FileA | FileH)
}

// SlowRookAttacks computes rook attacks by casting rays. Used to fill the
// magic tables and as a reference in tests.
func SlowRookAttacks(sq int, occ uint64) uint64 {
	return slideAttacks(sq, occ, 0, 4)
}

// SlowBishopAttacks is the diagonal counterpart of SlowRookAttacks.
func SlowBishopAttacks(sq int, occ uint64) uint64 {
	return slideAttacks(sq, occ, 4, 8)
}

func slideAttacks(sq int, occ uint64, firstDir, lastDir int) uint64 {
	var attacks uint64
	for dir := firstDir; dir < lastDir; dir++ {
		for i := 1; i <= NumSquaresToEdge[sq][dir]; i++ {
			target := sq + DirectionOffsets[dir]*i
			attacks |= SquareBB(target)
			if Contains(occ, target) {
				break
			}
		}
	}
	return attacks
}
