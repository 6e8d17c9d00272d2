// Package eval implements Corvid's static evaluation: tapered
// midgame/endgame material and piece-square scoring plus a small
// pawn-structure cache. Material and positional sub-scores are summed
// from White's perspective, then negated for Black.
package eval

import (
	"github.com/corvidchess/corvid/logging"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/types"
)

// Evaluator computes a static score for a position. It carries a logger
// and a pawn-structure cache; create one with New and reuse it across a
// whole search run.
type Evaluator struct {
	log   *logging.Logger
	pawns *pawnCache
}

// New creates an Evaluator with its own pawn-structure cache.
func New() *Evaluator {
	return &Evaluator{
		log:   logging.Get(),
		pawns: newPawnCache(pawnCacheEntries),
	}
}

// Evaluate returns the static score of p in centipawns from the side to
// move's perspective: positive favors the side to move.
func (e *Evaluator) Evaluate(p *position.Position) int {
	mgWhite, egWhite := e.materialAndPsqt(p, types.White)
	mgBlack, egBlack := e.materialAndPsqt(p, types.Black)

	mg := mgWhite - mgBlack
	eg := egWhite - egBlack

	eg += e.pawnStructure(p, types.White) - e.pawnStructure(p, types.Black)

	phase := gamePhase(p)
	score := (mg*phase + eg*(types.TotalPhase-phase)) / types.TotalPhase

	if p.SideToMove() == types.Black {
		score = -score
	}
	e.log.Debugf("eval %s -> %d (phase %d/%d)", p.FEN(), score, phase, types.TotalPhase)
	return score
}

func (e *Evaluator) materialAndPsqt(p *position.Position, c types.Color) (mg, eg int) {
	for pt := types.Pawn; pt < types.PtLength; pt++ {
		bb := p.PiecesOf(pt, c)
		material := pt.Value()
		for bb != types.BbZero {
			sq := bb.PopLsb()
			mg += material + psqtValue(pt, c, sq, true)
			eg += material + psqtValue(pt, c, sq, false)
		}
	}
	return mg, eg
}

// gamePhase sums the per-piece phase weights present on the board and
// clamps to TotalPhase — promotions can otherwise push the raw sum above
// the starting-position total.
func gamePhase(p *position.Position) int {
	phase := 0
	for pt := types.Pawn; pt < types.PtLength; pt++ {
		count := p.PieceTypeBb(pt).PopCount()
		phase += count * pt.PhaseWeight()
	}
	if phase > types.TotalPhase {
		phase = types.TotalPhase
	}
	return phase
}
