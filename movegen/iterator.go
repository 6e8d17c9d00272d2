package movegen

import (
	"github.com/corvidchess/corvid/moveslice"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/types"
)

// Iterator materialises the full legal-move list for a position up front
// and drains it across successive destination-mask passes, for example a
// capture pass (mask = enemy pieces), an en-passant pass, then a quiet
// pass (mask = types.BbAll). Each move is yielded exactly once across any sequence of masks that
// eventually includes types.BbAll — already-yielded moves are marked
// consumed and never re-emitted.
type Iterator struct {
	moves    moveslice.MoveSlice
	consumed []bool
}

// NewIterator builds an iterator over every legal move of p.
func NewIterator(p *position.Position) *Iterator {
	moves := Generate(p)
	return &Iterator{moves: moves, consumed: make([]bool, len(moves))}
}

// Drain returns every not-yet-consumed move whose destination square is a
// member of mask, marking them consumed. Pass types.BbAll to drain
// everything remaining.
func (it *Iterator) Drain(mask types.Bitboard) moveslice.MoveSlice {
	var out moveslice.MoveSlice
	for i, m := range it.moves {
		if it.consumed[i] {
			continue
		}
		if !mask.Has(m.To()) {
			continue
		}
		it.consumed[i] = true
		out = append(out, m)
	}
	return out
}

// Remaining reports how many legal moves have not yet been consumed by
// any Drain call.
func (it *Iterator) Remaining() int {
	n := 0
	for _, c := range it.consumed {
		if !c {
			n++
		}
	}
	return n
}

// All returns the full legal-move list this iterator was built from,
// regardless of what has already been drained.
func (it *Iterator) All() moveslice.MoveSlice {
	return it.moves
}
