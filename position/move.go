package position

import (
	"fmt"
	"strings"
)

// Tag marks the special kind of a move.
type Tag uint8

const (
	TagNone Tag = iota
	TagPromoteQueen
	TagPromoteRook
	TagPromoteBishop
	TagPromoteKnight
	TagCastle
	TagEnPassant
	TagDoublePush
	TagNull
)

func (t Tag) String() string {
	switch t {
	case TagNone:
		return "none"
	case TagPromoteQueen:
		return "q"
	case TagPromoteRook:
		return "r"
	case TagPromoteBishop:
		return "b"
	case TagPromoteKnight:
		return "n"
	case TagCastle:
		return "castle"
	case TagEnPassant:
		return "ep"
	case TagDoublePush:
		return "double"
	case TagNull:
		return "null"
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// PromotionTag returns the tag promoting to k, or TagNone.
func PromotionTag(k Kind) Tag {
	switch k {
	case Queen:
		return TagPromoteQueen
	case Rook:
		return TagPromoteRook
	case Bishop:
		return TagPromoteBishop
	case Knight:
		return TagPromoteKnight
	}
	return TagNone
}

// Move is a comparable value: two moves are equal when their squares and
// tags are equal. The zero Move is NoMove.
type Move struct {
	From Square
	To   Square
	Tag  Tag
}

var (
	NoMove   = Move{}
	NullMove = Move{From: NoSquare, To: NoSquare, Tag: TagNull}
)

func NewMove(from, to Square, tag Tag) Move { return Move{From: from, To: to, Tag: tag} }

func (m Move) IsZero() bool      { return m == NoMove }
func (m Move) IsNull() bool      { return m.Tag == TagNull }
func (m Move) IsCastle() bool    { return m.Tag == TagCastle }
func (m Move) IsEnPassant() bool { return m.Tag == TagEnPassant }
func (m Move) IsPromotion() bool { return m.Tag >= TagPromoteQueen && m.Tag <= TagPromoteKnight }

// PromotionKind returns the piece kind a promotion produces, or None.
func (m Move) PromotionKind() Kind {
	switch m.Tag {
	case TagPromoteQueen:
		return Queen
	case TagPromoteRook:
		return Rook
	case TagPromoteBishop:
		return Bishop
	case TagPromoteKnight:
		return Knight
	}
	return None
}

// String returns the move in UCI long algebraic form ("e2e4", "e7e8q").
// The null move prints as "0000".
func (m Move) String() string {
	if m.IsNull() || m.IsZero() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += m.Tag.String()
	}
	return s
}

// ParseMove reads a UCI move and tags it using pos: castling, en passant,
// double pushes and promotions are recognised. Legality is not checked.
func ParseMove(pos *Position, s string) (Move, error) {
	s = strings.TrimSpace(s)
	if s == "0000" {
		return NullMove, nil
	}
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece || piece.Color() != pos.SideToMove() {
		return NoMove, fmt.Errorf("%w: %s has no piece of the side to move", ErrIllegalMove, s)
	}

	tag := TagNone
	if len(s) == 5 {
		pc, ok := PieceFromChar(s[4])
		if !ok || pc.Kind() < Knight || pc.Kind() > Queen {
			return NoMove, fmt.Errorf("invalid promotion in %q", s)
		}
		tag = PromotionTag(pc.Kind())
	}

	switch piece.Kind() {
	case King:
		if d := int(to) - int(from); d == 2 || d == -2 {
			tag = TagCastle
		}
	case Pawn:
		switch {
		case to == pos.EnPassant() && from.File() != to.File() && pos.PieceAt(to) == NoPiece:
			tag = TagEnPassant
		case int(to)-int(from) == 16 || int(to)-int(from) == -16:
			tag = TagDoublePush
		}
	}
	return NewMove(from, to, tag), nil
}
