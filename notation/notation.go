// Package notation renders engine moves for people: standard algebraic
// notation and a board diagram, using github.com/corentings/chess for the
// SAN rules (disambiguation, check and mate suffixes).
package notation

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"

	"chessbot/position"
)

func gameAt(pos *position.Position) (*chess.Game, error) {
	opt, err := chess.FEN(pos.FEN())
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", pos.FEN(), err)
	}
	return chess.NewGame(opt), nil
}

// SAN converts a line of moves played from pos into SAN.
func SAN(pos *position.Position, line []position.Move) ([]string, error) {
	game, err := gameAt(pos)
	if err != nil {
		return nil, err
	}
	cur := game.Position()
	out := make([]string, 0, len(line))
	for _, m := range line {
		cm, err := legalMove(cur, m)
		if err != nil {
			return out, err
		}
		out = append(out, chess.AlgebraicNotation{}.Encode(cur, cm))
		cur = cur.Update(cm)
	}
	return out, nil
}

// legalMove finds m among the library's legal moves so castling and en
// passant carry their tags; a bare decoded move lacks them.
func legalMove(cur *chess.Position, m position.Move) (*chess.Move, error) {
	decoded, err := chess.UCINotation{}.Decode(cur, m.String())
	if err != nil {
		return nil, fmt.Errorf("move %s: %w", m, err)
	}
	valid := cur.ValidMoves()
	for i := range valid {
		v := &valid[i]
		if v.S1() == decoded.S1() && v.S2() == decoded.S2() && v.Promo() == decoded.Promo() {
			return v, nil
		}
	}
	return nil, fmt.Errorf("move %s is not legal in %s", m, cur)
}

// Line is SAN with move numbers, e.g. "1. e4 e5 2. Nf3".
func Line(pos *position.Position, line []position.Move) (string, error) {
	sans, err := SAN(pos, line)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	num := pos.FullmoveNumber()
	white := pos.SideToMove() == position.White
	for i, s := range sans {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case white:
			fmt.Fprintf(&sb, "%d. ", num)
		case i == 0:
			fmt.Fprintf(&sb, "%d... ", num)
		}
		sb.WriteString(s)
		if !white {
			num++
		}
		white = !white
	}
	return sb.String(), nil
}

// Diagram draws the board from white's side.
func Diagram(pos *position.Position) (string, error) {
	game, err := gameAt(pos)
	if err != nil {
		return "", err
	}
	return game.Position().Board().Draw(), nil
}
