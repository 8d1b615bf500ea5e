package engine

import "chessbot/position"

// SeePieceValue is the exchange scale. The king is priced out of reach so
// that king captures of defended pieces never look winning.
var SeePieceValue = [7]int{
	position.Pawn:   100,
	position.Knight: 320,
	position.Bishop: 330,
	position.Rook:   500,
	position.Queen:  950,
	position.King:   20000,
}

// SEE estimates a capture from `from` onto `to` as victim value minus
// attacker value. Only the first exchange is counted; recaptures are not
// played out. An empty source square scores 0.
func SEE(pos *position.Position, to, from position.Square) int {
	attacker := pos.PieceAt(from)
	if attacker == position.NoPiece {
		return 0
	}
	victim := pos.PieceAt(to).Kind()
	if victim == position.None && attacker.Kind() == position.Pawn && to == pos.EnPassant() {
		victim = position.Pawn
	}
	return SeePieceValue[victim] - SeePieceValue[attacker.Kind()]
}

// mvvLva[victim][attacker] = value(victim)*10 - value(attacker); king
// victims and empty squares stay 0.
var mvvLva [7][7]int

func init() {
	values := [7]int{0, 100, 320, 330, 500, 950, 0}
	for victim := position.Pawn; victim < position.King; victim++ {
		for attacker := position.Pawn; attacker <= position.King; attacker++ {
			mvvLva[victim][attacker] = values[victim]*10 - values[attacker]
		}
	}
}

// MVVLVA scores a capture by most valuable victim, least valuable attacker.
func MVVLVA(pos *position.Position, m position.Move) int {
	victim := pos.Captured(m).Kind()
	attacker := pos.PieceAt(m.From).Kind()
	return mvvLva[victim][attacker]
}
