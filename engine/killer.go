package engine

import "chessbot/position"

type KillerStruct struct {
	KillerMoves [MaxPly + 1][2]position.Move
}

// InsertKiller records a quiet move that caused a cutoff at ply. The newest
// killer goes in slot 0; a move already stored is left where it is.
func (k *KillerStruct) InsertKiller(move position.Move, ply int) {
	if ply < 0 || ply > MaxPly {
		return
	}
	if move == k.KillerMoves[ply][0] || move == k.KillerMoves[ply][1] {
		return
	}
	k.KillerMoves[ply][1] = k.KillerMoves[ply][0]
	k.KillerMoves[ply][0] = move
}

// killerSlot returns 0 or 1 when move is a killer at ply, -1 otherwise.
func (k *KillerStruct) killerSlot(move position.Move, ply int) int {
	if ply < 0 || ply > MaxPly || move.IsZero() {
		return -1
	}
	switch move {
	case k.KillerMoves[ply][0]:
		return 0
	case k.KillerMoves[ply][1]:
		return 1
	}
	return -1
}

// Clear the killer moves table.
func (k *KillerStruct) ClearKillers() {
	for ply := range k.KillerMoves {
		k.KillerMoves[ply][0] = position.NoMove
		k.KillerMoves[ply][1] = position.NoMove
	}
}
