package engine

import (
	"context"
	"log/slog"
	"time"

	"chessbot/movegen"
	"chessbot/position"
)

var log = slog.Default().With("package", "engine")

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MaxPly = 128

	// MateScore - ply is the score for mating at ply; anything beyond
	// Checkmate in absolute value is a mate score.
	MateScore = 1_000_000
	Checkmate = MateScore - MaxPly
	DrawScore = 0

	// FullWindow bounds the root window after an aspiration failure.
	FullWindow     = 100_000
	AspirationSize = 100

	DefaultMaxDepth  = 64
	QuiescenceDepth  = 6
	QuiescenceMargin = 100
)

// Result is what BestMove hands back to the caller.
type Result struct {
	Move     position.Move
	HasMove  bool
	Score    int
	Depth    int
	Nodes    uint64
	PV       []position.Move
	FromBook bool
	Stats    CutStatistics
}

// Option configures a Search.
type Option func(*Search)

// WithMaxDepth caps iterative deepening.
func WithMaxDepth(depth int) Option {
	return func(s *Search) {
		s.maxDepth = Clamp(depth, 1, MaxPly-QuiescenceDepth-1)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Search) { s.log = l }
}

// WithBook makes BestMove consult the book before searching.
func WithBook(b BookProvider) Option {
	return func(s *Search) { s.book = b }
}

// WithPromotions restricts the under-promotions the search considers.
func WithPromotions(mode movegen.PromotionMode) Option {
	return func(s *Search) { s.gen = movegen.NewGenerator(movegen.WithPromotions(mode)) }
}

// WithInfo registers a callback run after every completed iteration.
func WithInfo(fn func(Info)) Option {
	return func(s *Search) { s.info = fn }
}

// WithAspirationWindow sets the half-width of the root window tried
// around the previous iteration's score.
func WithAspirationWindow(cp int) Option {
	return func(s *Search) { s.aspiration = Clamp(cp, 1, FullWindow) }
}

// WithHashMB sets the transposition table size in megabytes.
func WithHashMB(mb int) Option {
	return func(s *Search) { s.hashMB = mb }
}

// Search owns every piece of mutable search state: the transposition
// table, repetition table and move ordering heuristics. One Search must
// only run one BestMove at a time.
type Search struct {
	maxDepth   int
	hashMB     int
	aspiration int
	log        *slog.Logger
	book       BookProvider
	info       func(Info)

	gen   *movegen.Generator
	tt    *TransTable
	rep   *RepetitionTable
	order *Orderer
	timer TimeHandler

	ctx         context.Context
	stop        bool
	nodes       uint64
	stats       CutStatistics
	gameHistory []uint64
	moveBufs    [MaxPly + 1][]position.Move

	iterBest position.Move
}

func New(opts ...Option) *Search {
	s := &Search{
		maxDepth:   DefaultMaxDepth,
		hashMB:     DefaultTTSize,
		aspiration: AspirationSize,
		log:        log,
		gen:        movegen.NewGenerator(),
		rep:        NewRepetitionTable(),
		order:      NewOrderer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tt = NewTransTable(s.hashMB)
	return s
}

// SetMaxDepth changes the depth cap for following searches.
func (s *Search) SetMaxDepth(depth int) {
	WithMaxDepth(depth)(s)
}

// SetGameHistory records the hashes of the positions played before the one
// that will be searched, so repetitions across the game are seen.
func (s *Search) SetGameHistory(hashes []uint64) {
	s.gameHistory = append(s.gameHistory[:0], hashes...)
}

// ResetForNewGame forgets the game history.
func (s *Search) ResetForNewGame() {
	s.gameHistory = s.gameHistory[:0]
	s.tt.Clear()
	s.order.Clear()
}

// BestMove searches pos for at most the given number of seconds and
// returns the move to play. No move is returned only when pos has no legal
// moves; Score then tells mate (-MateScore) from stalemate (0).
func (s *Search) BestMove(ctx context.Context, pos position.Position, seconds float64) Result {
	s.reset(ctx)

	rootMoves := s.gen.GenerateMoves(&pos, false)
	if len(rootMoves) == 0 {
		score := DrawScore
		if movegen.InCheck(&pos) {
			score = -MateScore
		}
		return Result{Score: score}
	}

	if s.book != nil {
		if m, ok := s.bookMove(&pos, rootMoves); ok {
			s.log.Debug("book move", "move", m.String(), "key", pos.Key())
			return Result{Move: m, HasMove: true, PV: []position.Move{m}, FromBook: true}
		}
	}

	s.timer.StartTime(time.Duration(seconds * float64(time.Second)))
	for _, h := range s.gameHistory {
		s.rep.Push(h)
	}
	s.rep.Push(pos.Hash())

	var result Result
	bestScore := 0
	pvMove := position.NoMove

	for depth := 1; depth <= s.maxDepth; depth++ {
		if s.timer.TimeStatus() {
			s.log.Debug("stopping before iteration", "depth", depth, "remaining", s.timer.Remaining())
			break
		}

		alpha := Max(bestScore-s.aspiration, -FullWindow)
		beta := Min(bestScore+s.aspiration, FullWindow)
		s.iterBest = position.NoMove

		var pvLine PVLine
		score, move := s.alphaBeta(&pos, depth, alpha, beta, 0, pvMove, false, &pvLine)
		if !s.stop && (score <= alpha || score >= beta) {
			s.stats.AspirationFails++
			pvLine.Clear()
			score, move = s.alphaBeta(&pos, depth, -FullWindow, FullWindow, 0, pvMove, false, &pvLine)
		}

		if s.stop {
			if !result.HasMove && !s.iterBest.IsZero() {
				result.Move, result.HasMove = s.iterBest, true
				result.PV = []position.Move{s.iterBest}
			}
			s.log.Debug("search interrupted", "depth", depth)
			break
		}
		if move.IsZero() {
			break
		}

		bestScore = score
		pvMove = move
		result.Move, result.HasMove = move, true
		result.Score = score
		result.Depth = depth
		result.PV = pvLine.Clone().Moves
		if len(result.PV) == 0 || result.PV[0] != move {
			result.PV = []position.Move{move}
		}

		if s.info != nil {
			s.info(Info{Depth: depth, Score: score, Nodes: s.nodes, Time: s.timer.Elapsed(), PV: result.PV})
		}
		s.log.Debug("iteration done", "depth", depth, "score", score, "move", move.String(), "nodes", s.nodes)

		if IsMateScore(score) {
			break
		}
	}

	if !result.HasMove {
		// not even the first root move finished in time
		result.Move, result.HasMove = rootMoves[0], true
		result.PV = []position.Move{rootMoves[0]}
		s.log.Warn("no iteration finished, falling back to first legal move", "move", rootMoves[0].String())
	}
	result.Nodes = s.nodes
	result.Stats = s.stats
	return result
}

func (s *Search) reset(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx = ctx
	s.stop = false
	s.nodes = 0
	s.stats = CutStatistics{}
	s.tt.Clear()
	s.rep.Clear()
	s.order.Clear()
}

func (s *Search) bookMove(pos *position.Position, legal []position.Move) (position.Move, bool) {
	m, ok := s.book.Lookup(pos.Key())
	if !ok {
		return position.NoMove, false
	}
	for _, lm := range legal {
		if lm == m {
			return lm, true
		}
	}
	s.log.Warn("book move is not legal here", "move", m.String(), "key", pos.Key())
	return position.NoMove, false
}

// shouldStop polls the deadline and the context. Once it returns true it
// keeps doing so until the next BestMove.
func (s *Search) shouldStop() bool {
	if s.stop {
		return true
	}
	if s.timer.Remaining() <= 0 {
		s.stop = true
		return true
	}
	select {
	case <-s.ctx.Done():
		s.stop = true
	default:
	}
	return s.stop
}

func (s *Search) movesAt(ply int, pos *position.Position, capturesOnly bool) []position.Move {
	buf := s.moveBufs[ply]
	if buf == nil {
		buf = make([]position.Move, 0, 64)
	}
	s.moveBufs[ply] = s.gen.GenerateMovesInto(buf[:0], pos, capturesOnly)
	return s.moveBufs[ply]
}

func (s *Search) alphaBeta(pos *position.Position, depth, alpha, beta, ply int, pvMove position.Move, didNull bool, pvLine *PVLine) (int, position.Move) {
	s.nodes++

	if s.shouldStop() {
		return 0, position.NoMove
	}

	hash := pos.Hash()
	if ply > 0 && s.rep.IsRepetition(hash) {
		return DrawScore, position.NoMove
	}

	inCheck := movegen.InCheck(pos)

	// Quiescence at leaf nodes
	if depth <= 0 || ply >= MaxPly-QuiescenceDepth {
		return s.quiescence(pos, alpha, beta, QuiescenceDepth, ply), position.NoMove
	}

	/*
		NULL MOVE PRUNING
		Hand the opponent a free move; if a reduced search still fails high we
		assume the full one would too. Skipped in check, at the root, right
		after another null move, and with little material left (zugzwang).
	*/
	if ply > 0 && !didNull && !inCheck && depth >= 3 && pos.NonKingPieceCount() > 4 {
		r := 2
		if depth >= 5 {
			r = 3
		}
		child := pos.NullMove()
		var nullPV PVLine
		score, _ := s.alphaBeta(&child, depth-r, -beta, -beta+1, ply+1, position.NoMove, true, &nullPV)
		score = -score
		if s.stop {
			return 0, position.NoMove
		}
		if score >= beta {
			s.stats.NullMoveCutoffs++
			return beta, position.NoMove
		}
	}

	/*
		TRANSPOSITION TABLE LOOKUP
	*/
	ttMove := position.NoMove
	if entry, found := s.tt.Probe(hash); found {
		ttMove = entry.Move
		if ply > 0 {
			if usable, score := useEntry(entry, depth, alpha, beta, ply); usable {
				s.stats.TTCutoffs++
				return score, ttMove
			}
		}
	}

	moves := s.movesAt(ply, pos, false)
	if len(moves) == 0 {
		if inCheck {
			return -MateScore + ply, position.NoMove
		}
		return DrawScore, position.NoMove
	}

	ordered := s.order.OrderMoves(moves, ply, pos, pvMove, ttMove)

	bestScore := -MateScore - 1
	bestMove := position.NoMove
	flag := int8(AlphaFlag)
	lastMove := pos.LastMove()
	searched := 0
	var skipped []position.Move
	var childPV PVLine

	candidates := ordered
moveLoop:
	for pass := 0; pass < 2; pass++ {
		for _, move := range candidates {
			isCapture := pos.IsCapture(move)
			// Losing captures are skipped, unless nothing else is left.
			if pass == 0 && isCapture && SEE(pos, move.To, move.From) < 0 {
				skipped = append(skipped, move)
				s.stats.SEESkips++
				continue
			}

			next := pos.Apply(move)
			childHash := next.Hash()
			s.rep.Push(childHash)
			childPV.Clear()

			var score int
			if searched == 0 {
				score, _ = s.alphaBeta(&next, depth-1, -beta, -alpha, ply+1, position.NoMove, false, &childPV)
				score = -score
			} else {
				reduced := depth - 1
				if depth >= 3 && !inCheck && !isCapture && searched >= 3 && !movegen.GivesCheck(pos, move) {
					reduced = depth - 2
				}
				score, _ = s.alphaBeta(&next, reduced, -alpha-1, -alpha, ply+1, position.NoMove, false, &childPV)
				score = -score
				if score > alpha && score < beta && !s.stop {
					if reduced < depth-1 {
						s.stats.LMRResearches++
					}
					childPV.Clear()
					score, _ = s.alphaBeta(&next, depth-1, -beta, -alpha, ply+1, position.NoMove, false, &childPV)
					score = -score
				}
			}

			s.rep.Pop(childHash)
			searched++

			if s.stop {
				return 0, position.NoMove
			}

			if score > bestScore {
				bestScore = score
				bestMove = move
				if ply == 0 {
					s.iterBest = move
				}
			}

			if score > alpha {
				alpha = score
				flag = ExactFlag
				pvLine.Update(move, childPV)
			}

			if score >= beta {
				flag = BetaFlag
				s.stats.BetaCutoffs++
				s.order.InsertKiller(pos, move, ply)
				s.order.AddHistory(move, depth)
				s.order.AddCounter(lastMove, move)
				break moveLoop
			}
		}
		if searched > 0 || len(skipped) == 0 {
			break
		}
		candidates = skipped
	}

	s.tt.Store(hash, depth, ply, bestMove, bestScore, flag)
	return bestScore, bestMove
}

// quiescence resolves captures until the position is quiet so the static
// evaluation is not taken in the middle of an exchange.
func (s *Search) quiescence(pos *position.Position, alpha, beta, depth, ply int) int {
	s.nodes++

	if s.shouldStop() {
		return 0
	}
	if depth <= 0 || ply >= MaxPly {
		return Evaluate(pos)
	}

	standPat := Evaluate(pos)
	if standPat >= beta {
		s.stats.QStandPatCutoffs++
		return beta
	}
	if alpha < standPat {
		alpha = standPat
	}
	if standPat+QuiescenceMargin < alpha {
		s.stats.QFutilityPrunes++
		return alpha
	}

	moves := s.movesAt(ply, pos, true)
	ordered := s.order.OrderMoves(moves, ply, pos, position.NoMove, position.NoMove)
	for _, move := range ordered {
		if pos.IsCapture(move) && SEE(pos, move.To, move.From) < 0 {
			continue
		}
		next := pos.Apply(move)
		score := -s.quiescence(&next, -beta, -alpha, depth-1, ply+1)
		if s.stop {
			return 0
		}
		if score >= beta {
			s.stats.QBetaCutoffs++
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
