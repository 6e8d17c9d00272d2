// Package moveorder scores and sorts pseudo-legal moves before they are
// tried by search, so that alpha-beta cuts off as early as possible:
// MVV-LVA for captures, plus killer and history tables for quiet moves.
// The three heuristics are pulled into their own package and scored once
// the move list already exists, against a fixed score table, rather than
// baking the score into generation.
package moveorder

import (
	"github.com/corvidchess/corvid/moveslice"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/types"
)

// Score bands, highest tried first.
const (
	hashMoveScore  = 100_000
	captureBase    = 10_000
	promotionBonus = 9_000
	killerScore0   = 8_000
	killerScore1   = 7_000
	historyMax     = 16_384
)

// Killers remembers the two quiet moves that caused a beta cutoff at each
// ply, tried right after captures since they are likely to cut off again
// in sibling nodes. Indexed by ply, capped at two slots per ply.
type Killers struct {
	slots [types.MaxPly][2]types.Move
}

// Update records m as the newest killer at ply, evicting the older slot.
// A move already present is not duplicated.
func (k *Killers) Update(ply int, m types.Move) {
	if ply < 0 || ply >= types.MaxPly {
		return
	}
	if k.slots[ply][0] == m {
		return
	}
	k.slots[ply][1] = k.slots[ply][0]
	k.slots[ply][0] = m
}

func (k *Killers) at(ply int) (types.Move, types.Move) {
	if ply < 0 || ply >= types.MaxPly {
		return types.MoveNone, types.MoveNone
	}
	return k.slots[ply][0], k.slots[ply][1]
}

// IsKiller reports whether m is one of the two remembered killers at
// ply, used by search to exclude killers from late-move reduction.
func (k *Killers) IsKiller(ply int, m types.Move) bool {
	k0, k1 := k.at(ply)
	return m == k0 || m == k1
}

// History counts how often a quiet move [piece][to] has caused a beta
// cutoff, aged by depth squared so cutoffs found deeper in the tree are
// favored. Values are clamped to historyMax (16,384), which is above the
// killer scores and the capture base, so a heavily rewarded quiet move
// can sort ahead of killers and some captures.
type History struct {
	counts [types.PtLength][64]int
}

// Add rewards a quiet move that caused a cutoff at the given depth.
func (h *History) Add(pt types.PieceType, to types.Square, depth int) {
	bonus := depth * depth
	v := h.counts[pt][to] + bonus
	if v > historyMax {
		v = historyMax
	}
	h.counts[pt][to] = v
}

func (h *History) value(pt types.PieceType, to types.Square) int {
	return h.counts[pt][to]
}

// Order scores every move in moves and returns them sorted best-first.
// hashMove (the TT's stored move for this position, or MoveNone) is tried
// first; killers and history only apply to quiet moves at the given ply.
func Order(p *position.Position, moves moveslice.MoveSlice, hashMove types.Move, killers *Killers, history *History, ply int) []moveslice.ScoredMove {
	scored := make([]moveslice.ScoredMove, len(moves))
	k0, k1 := types.MoveNone, types.MoveNone
	if killers != nil {
		k0, k1 = killers.at(ply)
	}
	for i, m := range moves {
		scored[i] = moveslice.ScoredMove{Move: m, Score: score(p, m, hashMove, k0, k1, history)}
	}
	moveslice.SortScored(scored)
	return scored
}

// OrderCaptures scores and sorts only the capture/promotion ordering used
// by quiescence search: MVV-LVA plus a promotion bonus, no hash move,
// killers or history since quiescence never stores or reuses those.
func OrderCaptures(p *position.Position, moves moveslice.MoveSlice) []moveslice.ScoredMove {
	scored := make([]moveslice.ScoredMove, len(moves))
	for i, m := range moves {
		scored[i] = moveslice.ScoredMove{Move: m, Score: captureScore(p, m)}
	}
	moveslice.SortScored(scored)
	return scored
}

func score(p *position.Position, m, hashMove, k0, k1 types.Move, history *History) int {
	if hashMove != types.MoveNone && m == hashMove {
		return hashMoveScore
	}
	if isCapture(p, m) {
		return captureScore(p, m)
	}
	if m.IsPromotion() {
		return promotionBonus
	}
	if m == k0 {
		return killerScore0
	}
	if m == k1 {
		return killerScore1
	}
	if history != nil {
		pt := p.PieceOn(m.From()).TypeOf()
		return history.value(pt, m.To())
	}
	return 0
}

// captureScore is MVV-LVA (most valuable victim, least valuable
// aggressor) plus a flat promotion bonus: victim value dominates the
// ranking, attacker value only breaks ties among equal victims.
func captureScore(p *position.Position, m types.Move) int {
	s := captureBase + victimValue(p, m)*10 - attackerValue(p, m)
	if m.IsPromotion() {
		s += promotionBonus
	}
	return s
}

// IsCapture reports whether m captures a piece in p, including en
// passant. Exported for package search's quiescence move filter.
func IsCapture(p *position.Position, m types.Move) bool {
	return isCapture(p, m)
}

func isCapture(p *position.Position, m types.Move) bool {
	if p.PieceOn(m.To()) != types.PieceNone {
		return true
	}
	// En passant: the destination square is empty, but a pawn moves
	// diagonally onto it only when capturing.
	mover := p.PieceOn(m.From())
	return mover.TypeOf() == types.Pawn && m.From().FileOf() != m.To().FileOf() && m.To() == p.EpSquare()
}

func victimValue(p *position.Position, m types.Move) int {
	victim := p.PieceOn(m.To())
	if victim == types.PieceNone {
		return types.Pawn.Value() // en passant always captures a pawn
	}
	return victim.TypeOf().Value()
}

func attackerValue(p *position.Position, m types.Move) int {
	return p.PieceOn(m.From()).TypeOf().Value()
}
