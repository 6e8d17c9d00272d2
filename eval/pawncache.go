package eval

import (
	"github.com/corvidchess/corvid/config"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/types"
)

// pawnCacheEntries is the default slot count for a pawn-structure cache,
// grounded on config.toml's Eval.PawnCacheSize.
const pawnCacheEntries = 16384

// pawnCacheEntry holds the pawn-structure score for one color's pawns,
// keyed by that color's pawn bitboard — pawn structure almost never
// changes between plies, so this tends to have a very high hit rate
// relative to the transposition table.
type pawnCacheEntry struct {
	key   types.Bitboard
	valid bool
	score int
}

type pawnCache struct {
	entries []pawnCacheEntry
}

func newPawnCache(size int) *pawnCache {
	if size <= 0 {
		size = pawnCacheEntries
	}
	return &pawnCache{entries: make([]pawnCacheEntry, size)}
}

func (c *pawnCache) slot(key types.Bitboard) *pawnCacheEntry {
	return &c.entries[uint64(key)%uint64(len(c.entries))]
}

// pawnStructure scores color c's pawns: a penalty per doubled pawn, a
// penalty per isolated pawn (no friendly pawn on an adjacent file), and
// a bonus per passed pawn (no enemy pawn ahead on its file or the two
// adjacent files), scaled toward the endgame where passers matter most.
func (e *Evaluator) pawnStructure(p *position.Position, c types.Color) int {
	pawns := p.PiecesOf(types.Pawn, c)
	if !config.Settings.Eval.UsePawnCache {
		return computePawnStructure(p, c, pawns)
	}

	slot := e.pawns.slot(pawns)
	if slot.valid && slot.key == pawns {
		return slot.score
	}
	score := computePawnStructure(p, c, pawns)
	*slot = pawnCacheEntry{key: pawns, valid: true, score: score}
	return score
}

func computePawnStructure(p *position.Position, c types.Color, pawns types.Bitboard) int {
	them := c.Negate()
	enemyPawns := p.PiecesOf(types.Pawn, them)
	score := 0

	for f := types.FileA; f < types.FileLength; f++ {
		fileBb := types.FileBb(f)
		onFile := (pawns & fileBb).PopCount()
		if onFile > 1 {
			score -= 12 * (onFile - 1)
		}
		if onFile > 0 {
			var neighborFiles types.Bitboard
			if f > types.FileA {
				neighborFiles |= types.FileBb(f - 1)
			}
			if f < types.FileH {
				neighborFiles |= types.FileBb(f + 1)
			}
			if pawns&neighborFiles == types.BbZero {
				score -= 10 * onFile
			}
		}
	}

	bb := pawns
	for bb != types.BbZero {
		sq := bb.PopLsb()
		if isPassedPawn(sq, c, enemyPawns) {
			score += passedPawnBonus(sq, c)
		}
	}
	return score
}

func isPassedPawn(sq types.Square, c types.Color, enemyPawns types.Bitboard) bool {
	f := sq.FileOf()
	var files types.Bitboard = types.FileBb(f)
	if f > types.FileA {
		files |= types.FileBb(f - 1)
	}
	if f < types.FileH {
		files |= types.FileBb(f + 1)
	}

	var aheadRanks types.Bitboard
	if c == types.White {
		for r := sq.RankOf() + 1; r < types.RankLength; r++ {
			aheadRanks |= types.RankBb(r)
		}
	} else {
		for r := sq.RankOf() - 1; r >= types.Rank1; r-- {
			aheadRanks |= types.RankBb(r)
		}
	}
	return enemyPawns&files&aheadRanks == types.BbZero
}

var passedBonusByRank = [types.RankLength]int{0, 5, 10, 20, 35, 60, 100, 0}

func passedPawnBonus(sq types.Square, c types.Color) int {
	r := sq.RankOf()
	if c == types.Black {
		r = types.Rank8 - r
	}
	return passedBonusByRank[r]
}
