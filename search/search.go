// Package search implements Corvid's iterative-deepening negamax:
// alpha-beta pruning, null-move pruning, late-move reductions and
// quiescence search, with transposition-table-backed PV extraction. The
// Reporter interface mirrors the callback pattern package position uses
// to break the position/movegen import cycle, so this package never has
// to import package uci either.
package search

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/config"
	"github.com/corvidchess/corvid/eval"
	"github.com/corvidchess/corvid/logging"
	"github.com/corvidchess/corvid/movegen"
	"github.com/corvidchess/corvid/moveorder"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/syzygy"
	"github.com/corvidchess/corvid/tt"
	"github.com/corvidchess/corvid/types"
	"github.com/corvidchess/corvid/zobrist"
)

var printer = message.NewPrinter(language.English)

// Reporter receives progress during a search: one Info call per
// completed iterative-deepening iteration, and exactly one BestMove
// call when the search concludes. A nil Reporter is valid; Searcher
// simply reports nothing.
type Reporter interface {
	Info(depth, nodes int, score int, elapsed time.Duration, pv []types.Move)
	BestMove(best, ponder types.Move)
}

// Result is the outcome of one SearchPosition call.
type Result struct {
	BestMove   types.Move
	PonderMove types.Move
	Score      int
	Depth      int
	Nodes      int64
	Pv         []types.Move
	SearchTime time.Duration
}

// Searcher owns one transposition table and the ephemeral state of a
// single search: node counter, stop flag, killer/history tables and the
// repetition stack. A semaphore guards reentrant SearchPosition calls
// rather than a plain mutex since Acquire's context.Context parameter
// gives SearchPosition a natural place to respect a caller-supplied
// cancellation later.
type Searcher struct {
	tt        *tt.Table
	evaluator *eval.Evaluator
	tablebase *syzygy.Tablebase

	log *logging.Logger

	killers *moveorder.Killers
	history *moveorder.History

	repetition []zobrist.Key

	nodes    int64
	stats    Statistics
	stopFlag atomic.Bool

	startTime time.Time
	hardLimit time.Duration
	infinite  bool

	running *semaphore.Weighted
}

// NewSearcher creates a Searcher with a transposition table sized to
// sizeMB megabytes (see package tt's Resize for the power-of-two floor).
func NewSearcher(sizeMB int) *Searcher {
	if sizeMB <= 0 {
		sizeMB = config.Settings.Search.TTSizeMB
	}
	return &Searcher{
		tt:        tt.NewTable(sizeMB),
		evaluator: eval.New(),
		tablebase: syzygy.New(),
		log:       logging.GetSearch(),
		running:   semaphore.NewWeighted(1),
	}
}

// Stop requests that a running search unwind at the next node-count
// check. Safe to call concurrently with SearchPosition.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Join blocks until any SearchPosition call currently in flight has
// returned. The UCI handler calls this before "isready" replies
// "readyok", so a GUI never gets the ready signal while a background
// search is still touching engine state.
func (s *Searcher) Join() {
	_ = s.running.Acquire(context.Background(), 1)
	s.running.Release(1)
}

// NewGame clears the transposition table and repetition history for an
// unrelated game ("ucinewgame"). Acquires the same semaphore
// SearchPosition holds for its duration, so a search already running
// when NewGame is called finishes first rather than racing Table.Clear.
func (s *Searcher) NewGame() {
	_ = s.running.Acquire(context.Background(), 1)
	defer s.running.Release(1)
	s.tt.Clear()
	s.repetition = s.repetition[:0]
}

// ResizeHash rebuilds the transposition table for a new megabyte budget,
// joining any in-flight search first so the table's internal slice
// reallocation never races a concurrent Probe/Store.
func (s *Searcher) ResizeHash(sizeMB int) {
	_ = s.running.Acquire(context.Background(), 1)
	defer s.running.Release(1)
	s.tt.Resize(sizeMB)
}

// LoadTablebase wires a Syzygy-style endgame table lookup into the
// searcher; an empty path clears it.
func (s *Searcher) LoadTablebase(path string) error {
	return s.tablebase.Load(path)
}

// SearchPosition runs iterative deepening from p until a search limit is
// reached, reporting progress through reporter (which may be nil) and
// returning the final result.
func (s *Searcher) SearchPosition(p *position.Position, limits Limits, history []zobrist.Key, reporter Reporter) Result {
	_ = s.running.Acquire(context.Background(), 1)
	defer s.running.Release(1)

	s.stopFlag.Store(false)
	s.nodes = 0
	s.stats.reset()
	s.killers = &moveorder.Killers{}
	s.history = &moveorder.History{}
	s.repetition = append(s.repetition[:0], history...)
	s.startTime = time.Now()
	s.tt.NewSearch()

	budget, infinite := limits.TimeBudget(p.SideToMove())
	s.hardLimit = budget
	s.infinite = infinite
	softLimit := budget / 2

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth > types.MaxPly {
		maxDepth = types.MaxPly
		if infinite {
			maxDepth = config.Settings.Search.DefaultDepth
		}
	}

	var result Result
	completed := false

	for depth := 1; depth <= maxDepth; depth++ {
		score := s.negamax(p, depth, 0, -Infinity, Infinity, true)

		if s.stopFlag.Load() && completed {
			break
		}

		result = Result{
			BestMove: s.rootBestMove(p),
			Score:    score,
			Depth:    depth,
			Nodes:    s.nodes,
			Pv:       s.extractPV(p, depth),
		}
		result.SearchTime = time.Since(s.startTime)
		completed = true

		s.stats.Log(s.log, depth)

		if reporter != nil {
			reporter.Info(depth, int(s.nodes), score, result.SearchTime, result.Pv)
		}

		if s.stopFlag.Load() {
			break
		}
		if score > Mate-mateWindow || score < -Mate+mateWindow {
			break // forced mate found, no point searching deeper
		}
		if !infinite && time.Since(s.startTime) > softLimit {
			break
		}
	}

	if reporter != nil {
		reporter.BestMove(result.BestMove, types.MoveNone)
	}

	nps := int64(0)
	if ns := result.SearchTime.Nanoseconds(); ns > 0 {
		nps = (s.nodes * time.Second.Nanoseconds()) / ns
	}
	s.log.Info(printer.Sprintf("search finished: depth %d, %d nodes, %d ms, %d nps, best %s",
		result.Depth, s.nodes, result.SearchTime.Milliseconds(), nps, result.BestMove.String()))

	return result
}

// rootBestMove recovers the best move for the root position from the
// transposition table; used instead of a dedicated field so that a
// hard stop mid-iteration still reports whatever the table holds.
func (s *Searcher) rootBestMove(p *position.Position) types.Move {
	if move, _, _, _, ok := s.tt.Probe(p.Hash()); ok {
		return move
	}
	return types.MoveNone
}

// extractPV follows the best-move chain through the transposition table,
// halting on a cycle or missing entry.
func (s *Searcher) extractPV(p *position.Position, maxLen int) []types.Move {
	seen := make(map[zobrist.Key]bool)
	pv := make([]types.Move, 0, maxLen)
	cur := p
	for len(pv) < maxLen {
		if seen[cur.Hash()] {
			break
		}
		seen[cur.Hash()] = true
		move, _, _, _, ok := s.tt.Probe(cur.Hash())
		if !ok || move == types.MoveNone {
			break
		}
		pv = append(pv, move)
		cur = cur.MakeMove(move)
	}
	return pv
}

func (s *Searcher) checkStop() {
	if s.nodes%config.Settings.Search.CheckEveryNodes == 0 {
		if !s.infinite && time.Since(s.startTime) > s.hardLimit {
			s.stopFlag.Store(true)
		}
	}
}

func (s *Searcher) inRepetition(h zobrist.Key) bool {
	for _, prev := range s.repetition {
		if prev == h {
			return true
		}
	}
	return false
}

func (s *Searcher) pushHash(h zobrist.Key) { s.repetition = append(s.repetition, h) }
func (s *Searcher) popHash()               { s.repetition = s.repetition[:len(s.repetition)-1] }

// negamax is the core search algorithm: fail-soft alpha-beta with
// null-move pruning, late-move reductions and transposition-table
// probing/storing.
func (s *Searcher) negamax(p *position.Position, depth, ply int, alpha, beta int, canNull bool) int {
	s.nodes++
	s.stats.Nodes++
	s.checkStop()
	if s.stopFlag.Load() {
		return 0
	}

	switch p.Status() {
	case position.Checkmate:
		return -Mate + ply
	case position.Stalemate:
		return 0
	}

	if ply > 0 && s.inRepetition(p.Hash()) {
		return 0
	}

	if depth == 0 {
		return s.quiescence(p, ply, alpha, beta)
	}

	alphaOrig := alpha
	var ttMove types.Move
	if move, score, ttDepth, bound, ok := s.tt.Probe(p.Hash()); ok {
		ttMove = move
		s.stats.TTHits++
		if ttDepth >= depth {
			if adjusted, usable := tt.RetrieveScore(score, bound, ply, alpha, beta); usable {
				return adjusted
			}
		}
	}

	if ply > 0 && config.Settings.Search.UseTablebase {
		if wdl, ok := s.tablebase.ProbeWDL(p); ok {
			return wdl
		}
	}

	if config.Settings.Search.UseNullMove &&
		canNull && ply > 0 && depth >= config.Settings.Search.NmpMinDepth &&
		!p.IsInCheck() && p.HasNonPawnMaterial(p.SideToMove()) {
		if np, ok := p.NullMove(); ok {
			s.pushHash(p.Hash())
			score := -s.negamax(np, depth-1-config.Settings.Search.NmpReduction, ply+1, -beta, -beta+1, false)
			s.popHash()
			if s.stopFlag.Load() {
				return 0
			}
			if score >= beta {
				s.stats.NmpCutoffs++
				return beta
			}
		}
	}

	moves := movegen.Generate(p)
	if len(moves) == 0 {
		return 0 // unreachable given the Status check above; kept defensive
	}
	scored := moveorder.Order(p, moves, ttMove, s.killers, s.history, ply)

	bestScore := -Infinity
	bestMove := types.MoveNone
	s.pushHash(p.Hash())
	for i, sm := range scored {
		m := sm.Move
		np := p.MakeMove(m)
		capture := moveorder.IsCapture(p, m)
		givesCheck := np.IsInCheck()

		newDepth := depth - 1
		var score int
		useLmr := config.Settings.Search.UseLmr &&
			i >= config.Settings.Search.LmrMinMoveNumber &&
			depth >= config.Settings.Search.LmrMinDepth &&
			!capture && !m.IsPromotion() &&
			!p.IsInCheck() && !givesCheck &&
			!s.killers.IsKiller(ply, m)

		if useLmr {
			score = -s.negamax(np, depth-2, ply+1, -alpha-1, -alpha, true)
			if score > alpha && !s.stopFlag.Load() {
				s.stats.LmrResearches++
				score = -s.negamax(np, newDepth, ply+1, -beta, -alpha, true)
			}
		} else {
			score = -s.negamax(np, newDepth, ply+1, -beta, -alpha, true)
		}

		if s.stopFlag.Load() {
			break
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !capture && !m.IsPromotion() {
				s.killers.Update(ply, m)
				pt := p.PieceOn(m.From()).TypeOf()
				s.history.Add(pt, m.To(), depth)
			}
			break
		}
	}
	s.popHash()

	bound := tt.BoundExact
	switch {
	case bestScore >= beta:
		bound = tt.BoundLower
	case bestScore <= alphaOrig:
		bound = tt.BoundUpper
	}
	s.tt.Store(p.Hash(), bestMove, bestScore, depth, ply, bound)

	return bestScore
}

// quiescence is the capture-only search run at the search horizon: no
// stand-pat while in check (all legal moves are searched, since
// evading check is mandatory), otherwise a stand-pat cutoff followed by
// capture-ordered recursion.
func (s *Searcher) quiescence(p *position.Position, ply int, alpha, beta int) int {
	s.nodes++
	s.stats.Nodes++
	s.stats.QNodes++
	s.checkStop()
	if s.stopFlag.Load() {
		return 0
	}
	if ply >= MaxPly {
		return s.evaluator.Evaluate(p)
	}

	inCheck := p.IsInCheck()
	bestScore := -Infinity

	if !inCheck {
		standPat := s.evaluator.Evaluate(p)
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
		bestScore = standPat
	}

	var candidates []types.Move
	if inCheck {
		candidates = movegen.Generate(p)
		if len(candidates) == 0 {
			return -Mate + ply
		}
	} else {
		all := movegen.Generate(p)
		candidates = make([]types.Move, 0, len(all))
		for _, m := range all {
			if moveorder.IsCapture(p, m) {
				candidates = append(candidates, m)
			}
		}
	}

	scored := moveorder.OrderCaptures(p, candidates)
	for _, sm := range scored {
		np := p.MakeMove(sm.Move)
		score := -s.quiescence(np, ply+1, -beta, -alpha)
		if s.stopFlag.Load() {
			break
		}
		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	return bestScore
}
