package position

import (
	"errors"
	"fmt"
	"log/slog"

	"chessbot/bitboard"
)

var log = slog.Default().With("package", "position")

var (
	ErrInvalidFEN      = errors.New("invalid FEN")
	ErrInvalidPosition = errors.New("invalid position")
	ErrIllegalMove     = errors.New("illegal move")
)

// Position is an immutable board snapshot. Apply and NullMove return new
// values and never touch the receiver, so search can backtrack by simply
// dropping the child.
type Position struct {
	grid     [64]Piece
	pieces   [2][7]uint64 // [colour][kind], index 0 unused
	colours  [2]uint64
	all      uint64
	side     Color
	castling CastlingRights
	epSquare Square
	lastMove Move
	hash     uint64

	// move counters are only carried for FEN round trips
	halfmove int
	fullmove int
}

// castlingClear[sq] holds the rights lost when a piece leaves or lands on sq.
var castlingClear [64]CastlingRights

func init() {
	castlingClear[0] = CastleWhiteQueen
	castlingClear[7] = CastleWhiteKing
	castlingClear[4] = CastleWhiteKing | CastleWhiteQueen
	castlingClear[56] = CastleBlackQueen
	castlingClear[63] = CastleBlackKing
	castlingClear[60] = CastleBlackKing | CastleBlackQueen
}

// New builds a position from an 8x8 grid (row 0 is rank 8, column 0 the
// a-file), a castling string made of any subset of "KQkq", the side to move
// and the move that produced the position. The en-passant square follows
// from lastMove when it was a double pawn push.
func New(grid [8][8]Piece, castling string, side Color, lastMove Move) (Position, error) {
	var p Position
	p.epSquare = NoSquare
	p.fullmove = 1
	for row := 0; row < 8; row++ {
		for file := 0; file < 8; file++ {
			pc := grid[row][file]
			if !pc.valid() {
				return Position{}, fmt.Errorf("%w: bad piece code %d", ErrInvalidPosition, pc)
			}
			if pc != NoPiece {
				p.put(MakeSquare(file, 7-row), pc)
			}
		}
	}
	cr, err := ParseCastling(castling)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	p.castling = cr
	p.side = side
	p.lastMove = lastMove

	if !lastMove.IsZero() && !lastMove.IsNull() && lastMove.To >= 0 && lastMove.To < 64 {
		moved := p.grid[lastMove.To]
		d := int(lastMove.To) - int(lastMove.From)
		if moved.Kind() == Pawn && (d == 16 || d == -16) {
			p.epSquare = Square((int(lastMove.From) + int(lastMove.To)) / 2)
		}
	}

	p.hash = p.ComputeHash()
	return p, nil
}

// put places pc on an empty square and updates the key.
func (p *Position) put(sq Square, pc Piece) {
	bb := bitboard.SquareBB(int(sq))
	c := pc.Color()
	p.grid[sq] = pc
	p.pieces[c][pc.Kind()] |= bb
	p.colours[c] |= bb
	p.all |= bb
	p.hash ^= zobristPiece[pc][sq]
}

// remove clears sq and returns what was there.
func (p *Position) remove(sq Square) Piece {
	pc := p.grid[sq]
	if pc == NoPiece {
		return NoPiece
	}
	bb := bitboard.SquareBB(int(sq))
	c := pc.Color()
	p.grid[sq] = NoPiece
	p.pieces[c][pc.Kind()] &^= bb
	p.colours[c] &^= bb
	p.all &^= bb
	p.hash ^= zobristPiece[pc][sq]
	return pc
}

// Apply returns the position after m. The receiver is left unchanged. If
// the source square is empty the move is malformed: a diagnostic is logged
// and an identical copy is returned.
func (p *Position) Apply(m Move) Position {
	if m.IsNull() {
		return p.NullMove()
	}
	next := *p
	if m.From < 0 || m.From > 63 || m.To < 0 || m.To > 63 || p.grid[m.From] == NoPiece {
		log.Warn("apply: no piece on source square", "move", m.String(), "fen", p.FEN())
		return next
	}

	us := p.side
	piece := p.grid[m.From]

	captured := next.remove(m.To)
	if m.Tag == TagEnPassant {
		capSq := m.To - 8
		if us == Black {
			capSq = m.To + 8
		}
		captured = next.remove(capSq)
	}
	next.remove(m.From)

	placed := piece
	if m.IsPromotion() {
		placed = MakePiece(us, m.PromotionKind())
	}
	next.put(m.To, placed)

	if m.Tag == TagCastle {
		rookFrom, rookTo := castleRookSquares(m.To)
		if rook := next.remove(rookFrom); rook != NoPiece {
			next.put(rookTo, rook)
		}
	}

	next.hash ^= castleHash[next.castling]
	next.castling &^= castlingClear[m.From] | castlingClear[m.To]
	next.hash ^= castleHash[next.castling]

	if next.epSquare != NoSquare {
		next.hash ^= zobristEnPassant[next.epSquare.File()]
		next.epSquare = NoSquare
	}
	if piece.Kind() == Pawn {
		if d := int(m.To) - int(m.From); d == 16 || d == -16 {
			next.epSquare = Square((int(m.From) + int(m.To)) / 2)
			next.hash ^= zobristEnPassant[next.epSquare.File()]
		}
	}

	if piece.Kind() == Pawn || captured != NoPiece {
		next.halfmove = 0
	} else {
		next.halfmove++
	}
	if us == Black {
		next.fullmove++
	}

	next.side = us.Other()
	next.hash ^= zobristSide
	next.lastMove = m
	return next
}

func castleRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case 6:
		return 7, 5
	case 2:
		return 0, 3
	case 62:
		return 63, 61
	case 58:
		return 56, 59
	}
	return NoSquare, NoSquare
}

// NullMove returns the same placement with the other side to move. The
// en-passant square is dropped since it expires after any move.
func (p *Position) NullMove() Position {
	next := *p
	if next.epSquare != NoSquare {
		next.hash ^= zobristEnPassant[next.epSquare.File()]
		next.epSquare = NoSquare
	}
	next.side = p.side.Other()
	next.hash ^= zobristSide
	next.lastMove = NullMove
	return next
}

func (p *Position) SideToMove() Color { return p.side }
func (p *Position) Castling() CastlingRights { return p.castling }
func (p *Position) EnPassant() Square { return p.epSquare }
func (p *Position) LastMove() Move { return p.lastMove }
func (p *Position) Hash() uint64 { return p.hash }
func (p *Position) PieceAt(sq Square) Piece { return p.grid[sq] }
func (p *Position) Pieces(c Color, k Kind) uint64 { return p.pieces[c][k] }
func (p *Position) Colour(c Color) uint64 { return p.colours[c] }
func (p *Position) Occupied() uint64 { return p.all }
func (p *Position) HalfmoveClock() int { return p.halfmove }
func (p *Position) FullmoveNumber() int { return p.fullmove }

// Sliders returns the colour's rooks and queens (orthogonal) or bishops and
// queens (diagonal).
func (p *Position) Sliders(c Color, orthogonal bool) uint64 {
	if orthogonal {
		return p.pieces[c][Rook] | p.pieces[c][Queen]
	}
	return p.pieces[c][Bishop] | p.pieces[c][Queen]
}

// KingSquare returns the lowest king square of c, or NoSquare when the side
// has no king.
func (p *Position) KingSquare(c Color) Square {
	kings := p.pieces[c][King]
	if kings == 0 {
		return NoSquare
	}
	return Square(bitboard.LSB(kings))
}

// IsCapture reports whether m takes a piece, en passant included.
func (p *Position) IsCapture(m Move) bool {
	if m.IsNull() || m.From < 0 || m.To < 0 {
		return false
	}
	return m.Tag == TagEnPassant || p.grid[m.To] != NoPiece
}

// Captured returns the piece m removes from the board, if any.
func (p *Position) Captured(m Move) Piece {
	if m.Tag == TagEnPassant {
		return MakePiece(p.side.Other(), Pawn)
	}
	if m.To < 0 || m.To > 63 {
		return NoPiece
	}
	return p.grid[m.To]
}

// NonKingPieceCount counts every piece on the board except the kings.
func (p *Position) NonKingPieceCount() int {
	return bitboard.PopCount(p.all &^ (p.pieces[White][King] | p.pieces[Black][King]))
}

// Validate checks the structural invariants: per-kind boards add up to the
// colour boards, colours are disjoint, the grid mirrors the bitboards and
// the stored hash is current.
func (p *Position) Validate() error {
	if p.colours[White]&p.colours[Black] != 0 {
		return fmt.Errorf("%w: colour boards overlap", ErrInvalidPosition)
	}
	if p.colours[White]|p.colours[Black] != p.all {
		return fmt.Errorf("%w: occupancy mismatch", ErrInvalidPosition)
	}
	for c := White; c <= Black; c++ {
		var sum uint64
		for k := Pawn; k <= King; k++ {
			if sum&p.pieces[c][k] != 0 {
				return fmt.Errorf("%w: overlapping piece boards for %v", ErrInvalidPosition, c)
			}
			sum |= p.pieces[c][k]
		}
		if sum != p.colours[c] {
			return fmt.Errorf("%w: piece boards of %v do not add up", ErrInvalidPosition, c)
		}
	}
	for sq := Square(0); sq < 64; sq++ {
		pc := p.grid[sq]
		if pc == NoPiece {
			if bitboard.Contains(p.all, int(sq)) {
				return fmt.Errorf("%w: %v empty in grid but occupied", ErrInvalidPosition, sq)
			}
			continue
		}
		if !bitboard.Contains(p.pieces[pc.Color()][pc.Kind()], int(sq)) {
			return fmt.Errorf("%w: %v grid and bitboards disagree", ErrInvalidPosition, sq)
		}
	}
	if p.hash != p.ComputeHash() {
		return fmt.Errorf("%w: stale hash", ErrInvalidPosition)
	}
	return nil
}

// Grid returns the placement as rows from rank 8 down to rank 1, the same
// layout New accepts.
func (p *Position) Grid() [8][8]Piece {
	var g [8][8]Piece
	for sq := 0; sq < 64; sq++ {
		g[7-sq/8][sq%8] = p.grid[sq]
	}
	return g
}

// String draws the board, rank 8 first.
func (p *Position) String() string {
	var b []byte
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			b = append(b, p.grid[rank*8+file].Char(), ' ')
		}
		b = append(b, '\n')
	}
	return string(b) + p.FEN()
}
