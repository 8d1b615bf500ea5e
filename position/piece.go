package position

import "fmt"

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Kind is a colourless piece type used for table lookups.
type Kind uint8

const (
	None Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece packs a colour and a kind: the kind lives in the low three bits and
// black pieces carry bit 3, so Piece&7 is the kind.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Knight)
	WhiteBishop Piece = Piece(Bishop)
	WhiteRook   Piece = Piece(Rook)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)
	BlackPawn   Piece = Piece(Pawn) | 8
	BlackKnight Piece = Piece(Knight) | 8
	BlackBishop Piece = Piece(Bishop) | 8
	BlackRook   Piece = Piece(Rook) | 8
	BlackQueen  Piece = Piece(Queen) | 8
	BlackKing   Piece = Piece(King) | 8
)

// MakePiece combines a colour and kind. None yields NoPiece.
func MakePiece(c Color, k Kind) Piece {
	if k == None {
		return NoPiece
	}
	return Piece(k) | Piece(c)<<3
}

func (p Piece) Kind() Kind   { return Kind(p & 7) }
func (p Piece) Color() Color { return Color(p >> 3 & 1) }

// valid reports whether p is NoPiece or one of the twelve real pieces.
func (p Piece) valid() bool {
	k := p.Kind()
	return p == NoPiece || (k >= Pawn && k <= King && p&^15 == 0)
}

const pieceChars = " PNBRQK  pnbrqk"

// PieceFromChar converts a FEN letter to a Piece.
func PieceFromChar(ch byte) (Piece, bool) {
	for i := 1; i < len(pieceChars); i++ {
		if pieceChars[i] == ch && ch != ' ' {
			return Piece(i), true
		}
	}
	return NoPiece, false
}

// Char returns the FEN letter of p, or '.' for an empty square.
func (p Piece) Char() byte {
	if p == NoPiece || !p.valid() {
		return '.'
	}
	return pieceChars[p]
}

// Square is a board index, a1 = 0 through h8 = 63.
type Square int8

const NoSquare Square = -1

func MakeSquare(file, rank int) Square { return Square(rank*8 + file) }

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

func (s Square) String() string {
	if s < 0 || s > 63 {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// ParseSquare reads a square in algebraic form such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return MakeSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// CastlingRights holds the four castling flags.
type CastlingRights uint8

const (
	CastleWhiteKing CastlingRights = 1 << iota
	CastleWhiteQueen
	CastleBlackKing
	CastleBlackQueen

	CastleNone CastlingRights = 0
	CastleAll                 = CastleWhiteKing | CastleWhiteQueen | CastleBlackKing | CastleBlackQueen
)

// ParseCastling reads any subset of "KQkq", or "-" for none.
func ParseCastling(s string) (CastlingRights, error) {
	var cr CastlingRights
	if s == "-" || s == "" {
		return cr, nil
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'K':
			cr |= CastleWhiteKing
		case 'Q':
			cr |= CastleWhiteQueen
		case 'k':
			cr |= CastleBlackKing
		case 'q':
			cr |= CastleBlackQueen
		default:
			return 0, fmt.Errorf("invalid castling character %q", s[i])
		}
	}
	return cr, nil
}

func (cr CastlingRights) String() string {
	if cr == 0 {
		return "-"
	}
	var b []byte
	for i, ch := range []byte("KQkq") {
		if cr&(1<<uint(i)) != 0 {
			b = append(b, ch)
		}
	}
	return string(b)
}

// KingSide and QueenSide return the flag of the given side.
func KingSide(c Color) CastlingRights {
	if c == White {
		return CastleWhiteKing
	}
	return CastleBlackKing
}

func QueenSide(c Color) CastlingRights {
	if c == White {
		return CastleWhiteQueen
	}
	return CastleBlackQueen
}
