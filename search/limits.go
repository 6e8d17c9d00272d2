package search

import (
	"time"

	"github.com/corvidchess/corvid/types"
)

// Limits controls how long and how deep a single SearchPosition call may
// run, mirroring the fields UCI's "go" command can carry.
type Limits struct {
	WhiteTime, BlackTime time.Duration
	WhiteInc, BlackInc   time.Duration
	MoveTime             time.Duration
	MovesToGo            int

	Depth int
	Nodes int64

	Infinite bool
}

// defaultMovesToGo is used when the GUI never sends movestogo.
const defaultMovesToGo = 30

// allocate computes the hard time budget for the side to move:
// T/max(M,1) + 3I/4, capped at 4T/5. MoveTime and Infinite are handled
// by the caller before reaching here.
func allocate(clock, inc time.Duration, movesToGo int) time.Duration {
	m := movesToGo
	if m <= 0 {
		m = defaultMovesToGo
	}
	budget := clock/time.Duration(m) + 3*inc/4
	if ceiling := 4 * clock / 5; budget > ceiling {
		budget = ceiling
	}
	if budget < 0 {
		budget = 0
	}
	return budget
}

// TimeBudget returns the hard limit for this search given the side to
// move, or (0, true) for an unbounded ("infinite") search.
func (l Limits) TimeBudget(side types.Color) (time.Duration, bool) {
	if l.Infinite {
		return 0, true
	}
	if l.MoveTime > 0 {
		return l.MoveTime, false
	}
	if side == types.White {
		if l.WhiteTime == 0 && l.BlackTime == 0 {
			return 0, true
		}
		return allocate(l.WhiteTime, l.WhiteInc, l.MovesToGo), false
	}
	if l.WhiteTime == 0 && l.BlackTime == 0 {
		return 0, true
	}
	return allocate(l.BlackTime, l.BlackInc, l.MovesToGo), false
}
