package position

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// StartPosition returns the standard initial position.
func StartPosition() Position {
	p, err := ParseFEN(FENStartPos)
	if err != nil {
		panic(err)
	}
	return p
}

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFEN, fmt.Sprintf(format, args...))
}

// ParseFEN parses a FEN string. The two move counters are optional.
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, fenError("not enough fields")
	}

	var p Position
	p.epSquare = NoSquare
	p.fullmove = 1

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fenError("incorrect number of ranks")
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc, ok := PieceFromChar(ch)
			if !ok {
				return Position{}, fenError("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return Position{}, fenError("too many squares in rank %d", rank+1)
			}
			p.put(MakeSquare(file, rank), pc)
			file++
		}
		if file != 8 {
			return Position{}, fenError("rank %d does not have 8 columns", rank+1)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		p.side = White
	case "b":
		p.side = Black
	default:
		return Position{}, fenError("side to move must be 'w' or 'b'")
	}

	// 3. Castling rights
	cr, err := ParseCastling(fields[2])
	if err != nil {
		return Position{}, fenError("%v", err)
	}
	p.castling = cr

	// 4. En passant target square
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Position{}, fenError("en passant: %v", err)
		}
		p.epSquare = sq
		// reconstruct the double push so callers see a sensible last move
		switch sq.Rank() {
		case 2:
			p.lastMove = NewMove(sq-8, sq+8, TagDoublePush)
		case 5:
			p.lastMove = NewMove(sq+8, sq-8, TagDoublePush)
		}
	}

	// 5. Halfmove clock, 6. fullmove number
	if len(fields) > 4 {
		if p.halfmove, err = strconv.Atoi(fields[4]); err != nil {
			return Position{}, fenError("halfmove clock is not a number")
		}
	}
	if len(fields) > 5 {
		if p.fullmove, err = strconv.Atoi(fields[5]); err != nil {
			return Position{}, fenError("fullmove number is not a number")
		}
	}

	p.hash = p.ComputeHash()
	return p, nil
}

// Key is the position description used for opening book lookups: the FEN
// without its two move counters.
func (p *Position) Key() string {
	var sb strings.Builder
	p.writeKey(&sb)
	return sb.String()
}

// FEN returns the full FEN of the position.
func (p *Position) FEN() string {
	var sb strings.Builder
	p.writeKey(&sb)
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmove))
	return sb.String()
}

func (p *Position) writeKey(sb *strings.Builder) {
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.grid[rank*8+file]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.side.String())
	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(p.epSquare.String())
}
