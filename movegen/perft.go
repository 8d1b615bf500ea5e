package movegen

import "chessbot/position"

// Perft counts the leaf nodes of the legal move tree of pos to the given
// depth.
func Perft(pos *position.Position, depth int) uint64 {
	return NewGenerator().Perft(pos, depth)
}

// PerftDivide returns, for every legal root move, the number of leaf nodes
// below it at the given depth.
func PerftDivide(pos *position.Position, depth int) map[position.Move]uint64 {
	return NewGenerator().PerftDivide(pos, depth)
}

func (g *Generator) Perft(pos *position.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{g: g, bufs: make([][]position.Move, depth+1)}
	return pc.perft(pos, depth)
}

func (g *Generator) PerftDivide(pos *position.Position, depth int) map[position.Move]uint64 {
	result := make(map[position.Move]uint64)
	if depth <= 0 {
		return result
	}
	pc := perftCtx{g: g, bufs: make([][]position.Move, depth+1)}
	moves := g.GenerateMoves(pos, false)
	for _, m := range moves {
		next := pos.Apply(m)
		result[m] = pc.perft(&next, depth-1)
	}
	return result
}

// perftCtx keeps one move buffer per depth so the recursion does not
// allocate.
type perftCtx struct {
	g    *Generator
	bufs [][]position.Move
}

func (pc *perftCtx) bufFor(depth int) []position.Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]position.Move, 0, 256)
	}
	return buf[:0]
}

func (pc *perftCtx) perft(pos *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pc.g.GenerateMovesInto(pc.bufFor(depth), pos, false)
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next := pos.Apply(m)
		nodes += pc.perft(&next, depth-1)
	}
	return nodes
}
