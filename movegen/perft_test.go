package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/types"
)

// TestPerftStartpos checks node counts from the initial position against
// well-known published perft reference values.
func TestPerftStartpos(t *testing.T) {
	p := position.New()
	want := []uint64{1, 20, 400, 8902, 197281}
	for depth, w := range want {
		assert.Equal(t, w, Perft(p, depth), "depth %d", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	p, err := position.FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	want := []uint64{1, 48, 2039, 97862}
	for depth, w := range want {
		assert.Equal(t, w, Perft(p, depth), "depth %d", depth)
	}
}

func TestPerftPosition3(t *testing.T) {
	p, err := position.FromFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	require.NoError(t, err)
	want := []uint64{1, 14, 191, 2812}
	for depth, w := range want {
		assert.Equal(t, w, Perft(p, depth), "depth %d", depth)
	}
}

func TestGenerateOnlyLegalMoves(t *testing.T) {
	p := position.New()
	for _, m := range Generate(p) {
		assert.True(t, p.Legal(m))
	}
	assert.Len(t, Generate(p), 20)
}

func TestIteratorDrainsEveryMoveExactlyOnce(t *testing.T) {
	p, err := position.FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	all := Generate(p)

	it := NewIterator(p)
	captures := it.Drain(p.ColorBb(p.SideToMove().Negate()))
	quiets := it.Drain(types.BbAll)
	assert.Equal(t, len(all), len(captures)+len(quiets))
	assert.Equal(t, 0, it.Remaining())

	seen := map[string]bool{}
	for _, m := range append(captures, quiets...) {
		assert.False(t, seen[m.String()], "move %s yielded twice", m)
		seen[m.String()] = true
	}
}

func TestCastlingRequiresKingNotInCheck(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	require.True(t, p.IsInCheck())
	for _, m := range Generate(p) {
		assert.NotEqual(t, "e1g1", m.String())
		assert.NotEqual(t, "e1c1", m.String())
	}
}

func TestCastlingBlockedByAttackedTransitSquare(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/8/8/8/5r2/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	for _, m := range Generate(p) {
		assert.NotEqual(t, "e1g1", m.String())
	}
}
