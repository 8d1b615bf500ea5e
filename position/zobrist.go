package position

import "math/rand"

// Zobrist keys. A fixed seed keeps hashes stable between runs, which the
// tests and any persisted debugging output rely on.
var (
	zobristPiece     [15][64]uint64 // indexed by Piece code
	zobristCastle    [4]uint64      // one key per right
	zobristEnPassant [8]uint64      // by file
	zobristSide      uint64         // xored when black is to move

	// castleHash[cr] is the xor of the keys of every right set in cr.
	castleHash [16]uint64
)

func init() {
	initZobrist()
}

func initZobrist() {
	rnd := rand.New(rand.NewSource(0xC0DE))

	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for i := range zobristCastle {
		zobristCastle[i] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()

	for cr := 0; cr < 16; cr++ {
		var h uint64
		for i := 0; i < 4; i++ {
			if cr&(1<<uint(i)) != 0 {
				h ^= zobristCastle[i]
			}
		}
		castleHash[cr] = h
	}
}

// ComputeHash recomputes the Zobrist key from scratch. Apply keeps the key
// up to date incrementally; the two must always agree.
func (p *Position) ComputeHash() uint64 {
	var key uint64
	for sq, pc := range p.grid {
		if pc != NoPiece {
			key ^= zobristPiece[pc][sq]
		}
	}
	key ^= castleHash[p.castling]
	if p.epSquare != NoSquare {
		key ^= zobristEnPassant[p.epSquare.File()]
	}
	if p.side == Black {
		key ^= zobristSide
	}
	return key
}
