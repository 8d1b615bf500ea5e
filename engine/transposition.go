package engine

import (
	"unsafe"

	"chessbot/position"
)

const (
	// Flags
	AlphaFlag = iota // upper bound: no move raised alpha
	BetaFlag         // lower bound: the node failed high
	ExactFlag

	// In MB
	DefaultTTSize = 16
	clusterSize   = 4
)

type TransTable struct {
	entries      []TTEntry
	clusterCount uint64
}

type TTEntry struct {
	Hash  uint64
	Score int32
	Move  position.Move
	Depth int8
	Flag  int8
}

// NewTransTable allocates a table of roughly sizeMB megabytes, grouped in
// clusters of four entries.
func NewTransTable(sizeMB int) *TransTable {
	tt := &TransTable{}
	tt.init(sizeMB)
	return tt
}

func (TT *TransTable) init(sizeMB int) {
	if sizeMB <= 0 {
		sizeMB = DefaultTTSize
	}
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	totalBytes := uint64(sizeMB) * 1024 * 1024
	clusterCount := totalBytes / (entrySize * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	TT.clusterCount = clusterCount
	TT.entries = make([]TTEntry, TT.clusterCount*clusterSize)
}

// Clear empties every slot without giving the memory back.
func (TT *TransTable) Clear() {
	clear(TT.entries)
}

// Probe returns the entry stored for hash, if any.
func (TT *TransTable) Probe(hash uint64) (TTEntry, bool) {
	if TT.clusterCount == 0 {
		return TTEntry{}, false
	}
	start := int(hash%TT.clusterCount) * clusterSize
	for i := 0; i < clusterSize; i++ {
		if e := TT.entries[start+i]; e.Hash == hash {
			return e, true
		}
	}
	return TTEntry{}, false
}

// useEntry decides whether a probed entry settles the node: it must be at
// least as deep as the remaining depth, and its bound must fit the window.
func useEntry(entry TTEntry, depth, alpha, beta, ply int) (usable bool, score int) {
	if int(entry.Depth) < depth {
		return false, 0
	}
	norm := scoreFromTT(int(entry.Score), ply)
	switch entry.Flag {
	case ExactFlag:
		return true, norm
	case AlphaFlag:
		if norm <= alpha {
			return true, alpha
		}
	case BetaFlag:
		if norm >= beta {
			return true, beta
		}
	}
	return false, 0
}

/*
Replacement: the same position is overwritten, then an empty slot is
taken, and otherwise the shallowest entry of the cluster goes. A single
slot per index would be overwritten unconditionally; the table is cleared
at the start of every search either way.
*/
func (TT *TransTable) Store(hash uint64, depth, ply int, move position.Move, score int, flag int8) {
	if TT.clusterCount == 0 {
		return
	}
	base := int(hash%TT.clusterCount) * clusterSize

	targetIdx := -1
	for i := 0; i < clusterSize; i++ {
		if TT.entries[base+i].Hash == hash {
			targetIdx = base + i
			break
		}
	}
	if targetIdx == -1 {
		for i := 0; i < clusterSize; i++ {
			if TT.entries[base+i].Hash == 0 {
				targetIdx = base + i
				break
			}
		}
	}
	if targetIdx == -1 {
		targetIdx = base
		minDepth := TT.entries[base].Depth
		for i := 1; i < clusterSize; i++ {
			if TT.entries[base+i].Depth < minDepth {
				minDepth = TT.entries[base+i].Depth
				targetIdx = base + i
			}
		}
	}

	entry := &TT.entries[targetIdx]
	entry.Hash = hash
	entry.Depth = int8(Clamp(depth, 0, 127))
	entry.Move = move
	entry.Flag = flag
	entry.Score = int32(scoreToTT(score, ply))
}

// Mate scores are stored relative to the node, not the root, so they stay
// correct when the same position is reached at another ply.
func scoreToTT(score, ply int) int {
	if score > Checkmate {
		return score + ply
	}
	if score < -Checkmate {
		return score - ply
	}
	return score
}

func scoreFromTT(score, ply int) int {
	if score > Checkmate {
		return score - ply
	}
	if score < -Checkmate {
		return score + ply
	}
	return score
}
