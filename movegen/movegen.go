// Package movegen produces legal moves for a position.Position and answers
// attack, check and pin queries. The position package knows nothing about
// legality; all of that lives here.
package movegen

import (
	"log/slog"

	"chessbot/bitboard"
	"chessbot/position"
)

var log = slog.Default().With("package", "movegen")

// PromotionMode selects which pieces a pawn reaching the last rank may
// become.
type PromotionMode uint8

const (
	PromotionsAll PromotionMode = iota
	PromotionsQueenOnly
	PromotionsQueenAndKnight
)

type Option func(*Generator)

// WithPromotions restricts the promotion pieces generated for quiet
// generation. Captures-only generation always promotes to a queen.
func WithPromotions(mode PromotionMode) Option {
	return func(g *Generator) { g.promotions = mode }
}

// Generator holds the scratch state of one generation call. It is reused
// between calls and must not be shared between goroutines.
type Generator struct {
	promotions PromotionMode

	pos          *position.Position
	moves        []position.Move
	quiets       bool
	us, them     position.Color
	friendly     uint64
	enemy        uint64
	all          uint64
	emptyOrEnemy uint64
	kingSq       int

	inCheck         bool
	inDoubleCheck   bool
	checkRayMask    uint64
	pinRays         uint64
	opponentAttacks uint64
}

// NewGenerator returns a generator producing every promotion piece unless
// told otherwise.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{moves: make([]position.Move, 0, 128)}
	for _, o := range opts {
		o(g)
	}
	return g
}

// InCheck and the accessors below describe the position of the last
// GenerateMoves call.
func (g *Generator) InCheck() bool             { return g.inCheck }
func (g *Generator) InDoubleCheck() bool       { return g.inDoubleCheck }
func (g *Generator) PinRays() uint64           { return g.pinRays }
func (g *Generator) OpponentAttackMap() uint64 { return g.opponentAttacks }

var defaultGenerator = NewGenerator()

// GenerateMoves is a convenience wrapper around a package-level generator.
// It is not safe for concurrent use; searches own their own Generator.
func GenerateMoves(pos *position.Position, capturesOnly bool) []position.Move {
	return defaultGenerator.GenerateMoves(pos, capturesOnly)
}

// GenerateMoves returns the legal moves of pos in a freshly allocated slice.
// With capturesOnly set, only captures (en passant included) are produced.
func (g *Generator) GenerateMoves(pos *position.Position, capturesOnly bool) []position.Move {
	return g.GenerateMovesInto(make([]position.Move, 0, 64), pos, capturesOnly)
}

// GenerateMovesInto appends the legal moves of pos to dst[:0].
func (g *Generator) GenerateMovesInto(dst []position.Move, pos *position.Position, capturesOnly bool) []position.Move {
	g.init(pos, capturesOnly)
	g.calculateAttackData()

	g.generateKingMoves()
	// in double check only the king may move
	if !g.inDoubleCheck {
		g.generateSlidingMoves()
		g.generateKnightMoves()
		g.generatePawnMoves()
	}

	dst = dst[:0]
	if g.kingSq < 0 {
		log.Debug("no king for side to move, returning pseudo-legal moves", "fen", pos.FEN())
		return append(dst, g.moves...)
	}

	// Second pass: every move is applied and the king re-tested. The
	// pin/check masks above already exclude illegal moves; this catches
	// whatever they miss, such as an en-passant capture uncovering a
	// diagonal attack.
	ks := position.Square(g.kingSq)
	for _, m := range g.moves {
		next := pos.Apply(m)
		sq := ks
		if pos.PieceAt(m.From).Kind() == position.King {
			sq = m.To
		}
		if !IsSquareAttacked(&next, sq, g.them) {
			dst = append(dst, m)
		}
	}
	return dst
}

func (g *Generator) init(pos *position.Position, capturesOnly bool) {
	g.pos = pos
	g.moves = g.moves[:0]
	g.quiets = !capturesOnly
	g.us = pos.SideToMove()
	g.them = g.us.Other()
	g.friendly = pos.Colour(g.us)
	g.enemy = pos.Colour(g.them)
	g.all = pos.Occupied()
	g.emptyOrEnemy = ^g.friendly
	g.kingSq = int(pos.KingSquare(g.us))
}

// moveTypeMask limits targets to enemy pieces when only captures are wanted.
func (g *Generator) moveTypeMask() uint64 {
	if g.quiets {
		return bitboard.Full
	}
	return g.enemy
}

func (g *Generator) add(from, to int, tag position.Tag) {
	g.moves = append(g.moves, position.NewMove(position.Square(from), position.Square(to), tag))
}

// calculateAttackData builds the opponent's attack map and finds checks and
// pins by walking the eight rays out of the friendly king.
func (g *Generator) calculateAttackData() {
	g.inCheck = false
	g.inDoubleCheck = false
	g.checkRayMask = 0
	g.pinRays = 0

	pos := g.pos
	them := g.them
	var attacks uint64

	// Sliders see through our king so that it cannot step back along the
	// line of a checking piece.
	occ := g.all
	if g.kingSq >= 0 {
		occ &^= bitboard.SquareBB(g.kingSq)
	}
	for bb := pos.Sliders(them, true); bb != 0; {
		attacks |= bitboard.RookAttacks(bitboard.PopLSB(&bb), occ)
	}
	for bb := pos.Sliders(them, false); bb != 0; {
		attacks |= bitboard.BishopAttacks(bitboard.PopLSB(&bb), occ)
	}

	if g.kingSq >= 0 {
		g.castRays()
	}

	for bb := pos.Pieces(them, position.Knight); bb != 0; {
		sq := bitboard.PopLSB(&bb)
		attacks |= bitboard.KnightAttacks[sq]
		if g.kingSq >= 0 && bitboard.Contains(bitboard.KnightAttacks[sq], g.kingSq) {
			g.inDoubleCheck = g.inCheck
			g.inCheck = true
			g.checkRayMask |= bitboard.SquareBB(sq)
		}
	}

	pawns := pos.Pieces(them, position.Pawn)
	pawnAttacks := bitboard.PawnAttacks(pawns, them == position.White)
	attacks |= pawnAttacks
	if g.kingSq >= 0 && bitboard.Contains(pawnAttacks, g.kingSq) {
		g.inDoubleCheck = g.inCheck
		g.inCheck = true
		g.checkRayMask |= bitboard.PawnAttackTable[g.us][g.kingSq] & pawns
	}

	if eks := pos.KingSquare(them); eks != position.NoSquare {
		attacks |= bitboard.KingAttacks[eks]
	}

	g.opponentAttacks = attacks
	if !g.inCheck {
		g.checkRayMask = bitboard.Full
	}
}

// castRays records pin rays and slider checks. A lone friendly piece
// between the king and an enemy slider is pinned; an enemy slider with
// nothing in between gives check.
func (g *Generator) castRays() {
	pos := g.pos
	startDir, endDir := 0, 8
	if pos.Sliders(g.them, true) == 0 {
		startDir = 4
	}
	if pos.Sliders(g.them, false) == 0 {
		endDir = 4
	}

	for dir := startDir; dir < endDir; dir++ {
		sliders := pos.Sliders(g.them, dir < 4)
		offset := bitboard.DirectionOffsets[dir]

		var rayMask uint64
		friendlyAlongRay := false
		for i := 1; i <= bitboard.NumSquaresToEdge[g.kingSq][dir]; i++ {
			sq := g.kingSq + offset*i
			rayMask |= bitboard.SquareBB(sq)
			pc := pos.PieceAt(position.Square(sq))
			if pc == position.NoPiece {
				continue
			}
			if pc.Color() == g.us {
				if friendlyAlongRay {
					// two friendly pieces, nothing pinned here
					break
				}
				friendlyAlongRay = true
				continue
			}
			if bitboard.Contains(sliders, sq) {
				if friendlyAlongRay {
					g.pinRays |= rayMask
				} else {
					g.checkRayMask |= rayMask
					g.inDoubleCheck = g.inCheck
					g.inCheck = true
				}
			}
			break
		}
		if g.inDoubleCheck {
			break
		}
	}
}

func (g *Generator) isPinned(sq int) bool {
	return bitboard.Contains(g.pinRays, sq)
}

func (g *Generator) generateKingMoves() {
	if g.kingSq < 0 {
		return
	}
	targets := bitboard.KingAttacks[g.kingSq] &^ (g.friendly | g.opponentAttacks) & g.moveTypeMask()
	for targets != 0 {
		g.add(g.kingSq, bitboard.PopLSB(&targets), position.TagNone)
	}

	if !g.quiets || g.inCheck {
		return
	}
	g.generateCastles()
}

func (g *Generator) generateCastles() {
	pos := g.pos
	rights := pos.Castling()
	blocked := g.all | g.opponentAttacks

	home := 4
	if g.us == position.Black {
		home = 60
	}
	if g.kingSq != home {
		return
	}
	rook := position.MakePiece(g.us, position.Rook)

	if rights&position.KingSide(g.us) != 0 && pos.PieceAt(position.Square(home+3)) == rook {
		path := bitboard.SquareBB(home+1) | bitboard.SquareBB(home+2)
		if path&blocked == 0 {
			g.add(home, home+2, position.TagCastle)
		}
	}
	if rights&position.QueenSide(g.us) != 0 && pos.PieceAt(position.Square(home-4)) == rook {
		safe := bitboard.SquareBB(home-1) | bitboard.SquareBB(home-2)
		empty := safe | bitboard.SquareBB(home-3)
		if safe&g.opponentAttacks == 0 && empty&g.all == 0 {
			g.add(home, home-2, position.TagCastle)
		}
	}
}

func (g *Generator) generateSlidingMoves() {
	pos := g.pos
	moveMask := g.emptyOrEnemy & g.checkRayMask & g.moveTypeMask()

	for bb := pos.Sliders(g.us, true); bb != 0; {
		sq := bitboard.PopLSB(&bb)
		g.addSliderMoves(sq, bitboard.RookAttacks(sq, g.all)&moveMask)
	}
	for bb := pos.Sliders(g.us, false); bb != 0; {
		sq := bitboard.PopLSB(&bb)
		g.addSliderMoves(sq, bitboard.BishopAttacks(sq, g.all)&moveMask)
	}
}

func (g *Generator) addSliderMoves(from int, targets uint64) {
	// a pinned slider may only move along the line through its king
	if g.isPinned(from) && g.kingSq >= 0 {
		targets &= bitboard.AlignMask[from][g.kingSq]
	}
	for targets != 0 {
		g.add(from, bitboard.PopLSB(&targets), position.TagNone)
	}
}

func (g *Generator) generateKnightMoves() {
	knights := g.pos.Pieces(g.us, position.Knight) &^ g.pinRays
	moveMask := g.emptyOrEnemy & g.checkRayMask & g.moveTypeMask()
	for knights != 0 {
		from := bitboard.PopLSB(&knights)
		targets := bitboard.KnightAttacks[from] & moveMask
		for targets != 0 {
			g.add(from, bitboard.PopLSB(&targets), position.TagNone)
		}
	}
}

func (g *Generator) generatePawnMoves() {
	pos := g.pos
	push, startRank, promoRank := 8, 1, 7
	if g.us == position.Black {
		push, startRank, promoRank = -8, 6, 0
	}

	for pawns := pos.Pieces(g.us, position.Pawn); pawns != 0; {
		from := bitboard.PopLSB(&pawns)

		if g.quiets {
			one := from + push
			if !bitboard.Contains(g.all, one) {
				if g.allowed(from, one) {
					if one/8 == promoRank {
						g.addPromotions(from, one)
					} else {
						g.add(from, one, position.TagNone)
					}
				}
				if from/8 == startRank {
					two := one + push
					if !bitboard.Contains(g.all, two) && g.allowed(from, two) {
						g.add(from, two, position.TagDoublePush)
					}
				}
			}
		}

		captures := bitboard.PawnAttackTable[g.us][from] & g.enemy
		for captures != 0 {
			to := bitboard.PopLSB(&captures)
			if !g.allowed(from, to) {
				continue
			}
			if to/8 == promoRank {
				g.addPromotions(from, to)
			} else {
				g.add(from, to, position.TagNone)
			}
		}
	}

	g.generateEnPassant(push)
}

// allowed applies the check and pin masks to a pawn move.
func (g *Generator) allowed(from, to int) bool {
	if !bitboard.Contains(g.checkRayMask, to) {
		return false
	}
	if g.isPinned(from) && g.kingSq >= 0 && !bitboard.Contains(bitboard.AlignMask[from][g.kingSq], to) {
		return false
	}
	return true
}

func (g *Generator) generateEnPassant(push int) {
	pos := g.pos
	ep := pos.EnPassant()
	if ep == position.NoSquare {
		return
	}
	to := int(ep)
	captured := to - push
	// our pawns standing where an enemy pawn on the ep square would attack
	attackers := bitboard.PawnAttackTable[g.them][to] & pos.Pieces(g.us, position.Pawn)
	for attackers != 0 {
		from := bitboard.PopLSB(&attackers)
		// taking the pawn that gives check resolves the check too
		if !bitboard.Contains(g.checkRayMask, to) && !bitboard.Contains(g.checkRayMask, captured) {
			continue
		}
		if g.isPinned(from) && g.kingSq >= 0 && !bitboard.Contains(bitboard.AlignMask[from][g.kingSq], to) {
			continue
		}
		if g.inCheckAfterEnPassant(from, to, captured) {
			continue
		}
		g.add(from, to, position.TagEnPassant)
	}
}

// inCheckAfterEnPassant tests the rank case the pin rays cannot see: both
// pawns leave the king's rank at once and uncover a rook or queen.
func (g *Generator) inCheckAfterEnPassant(from, to, captured int) bool {
	if g.kingSq < 0 {
		return false
	}
	sliders := g.pos.Sliders(g.them, true)
	if sliders == 0 {
		return false
	}
	occ := g.all &^ (bitboard.SquareBB(from) | bitboard.SquareBB(captured)) | bitboard.SquareBB(to)
	return bitboard.RookAttacks(g.kingSq, occ)&sliders != 0
}

func (g *Generator) addPromotions(from, to int) {
	g.add(from, to, position.TagPromoteQueen)
	if !g.quiets {
		return
	}
	switch g.promotions {
	case PromotionsAll:
		g.add(from, to, position.TagPromoteKnight)
		g.add(from, to, position.TagPromoteRook)
		g.add(from, to, position.TagPromoteBishop)
	case PromotionsQueenAndKnight:
		g.add(from, to, position.TagPromoteKnight)
	}
}
