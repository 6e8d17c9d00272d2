// Package moveslice provides MoveSlice, a typed []types.Move with the
// sorting and containment helpers used throughout movegen, moveorder and
// search.
package moveslice

import (
	"sort"
	"strings"

	"github.com/corvidchess/corvid/types"
)

// MoveSlice is a typed slice of moves, usable directly as a []types.Move.
type MoveSlice []types.Move

// ScoredMove pairs a move with an ordering score, used by package
// moveorder's stable descending sort.
type ScoredMove struct {
	Move  types.Move
	Score int
}

// Has reports whether m appears in the slice.
func (ms MoveSlice) Has(m types.Move) bool {
	for _, cur := range ms {
		if cur == m {
			return true
		}
	}
	return false
}

// Sort orders the slice by ascending move value for deterministic
// printing; search instead sorts ScoredMove slices by score. Used in
// tests and debug output.
func (ms MoveSlice) Sort() {
	sort.Slice(ms, func(i, j int) bool { return ms[i] < ms[j] })
}

// String renders the slice as a space separated list of UCI move strings.
func (ms MoveSlice) String() string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// SortScored stable-sorts sm by descending score, so that equally-scored
// moves retain their generation order.
func SortScored(sm []ScoredMove) {
	sort.SliceStable(sm, func(i, j int) bool { return sm[i].Score > sm[j].Score })
}
