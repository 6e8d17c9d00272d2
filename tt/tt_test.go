package tt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/corvid/types"
	"github.com/corvidchess/corvid/zobrist"
)

func TestResizeFloorsAtMinEntriesAndPowerOfTwo(t *testing.T) {
	table := NewTable(0)
	assert.GreaterOrEqual(t, table.Len(), minEntries)
	assert.Equal(t, 0, table.Len()&(table.Len()-1), "capacity must be a power of two")

	table.Resize(1)
	assert.Equal(t, 0, table.Len()&(table.Len()-1), "capacity must be a power of two")
}

func TestProbeRejectsKeyCollision(t *testing.T) {
	table := NewTable(1)
	table.Store(12345, types.NewMove(types.SqE2, types.SqE4), 50, 4, 0, BoundExact)

	_, _, _, _, ok := table.Probe(12345)
	assert.True(t, ok)

	// A different key that happens to land in the same slot (same low
	// bits) must be rejected, not silently returned.
	collidingKey := zobristKeyInSameSlot(table, 12345)
	_, _, _, _, ok = table.Probe(collidingKey)
	assert.False(t, ok)
}

func zobristKeyInSameSlot(table *Table, key zobrist.Key) zobrist.Key {
	return key ^ (zobrist.Key(table.Len()) << 3)
}

func TestMateScoreRoundTripsThroughStorage(t *testing.T) {
	table := NewTable(1)
	const ply = 5
	mateScore := Mate - 3 // a mate found 3 plies from here

	table.Store(999, types.MoveNone, mateScore, 10, ply, BoundExact)
	_, storedScore, _, bound, ok := table.Probe(999)
	assert.True(t, ok)
	assert.Equal(t, BoundExact, bound)

	adjusted, usable := RetrieveScore(storedScore, bound, ply, -Infinity, Infinity)
	assert.True(t, usable)
	assert.Equal(t, mateScore, adjusted)
}

func TestRetrieveScoreRespectsBoundAgainstWindow(t *testing.T) {
	_, ok := RetrieveScore(50, BoundLower, 0, -100, 40) // score 50 >= beta 40 -> cutoff
	assert.True(t, ok)

	_, ok = RetrieveScore(50, BoundLower, 0, -100, 60) // score 50 < beta 60 -> no cutoff
	assert.False(t, ok)

	_, ok = RetrieveScore(-50, BoundUpper, 0, -40, 100) // score -50 <= alpha -40 -> cutoff
	assert.True(t, ok)
}

func TestReplacementPolicySameKeyAlwaysRefreshes(t *testing.T) {
	table := NewTable(1)
	table.Store(42, types.NewMove(types.SqA2, types.SqA3), 10, 8, 0, BoundExact)
	table.Store(777, types.NewMove(types.SqB2, types.SqB3), 20, 3, 0, BoundExact) // shallower, different key

	// 42 and 777 land in different slots in a table this size; a
	// shallower store under the same key 42 still replaces the deeper
	// entry already held for that key.
	table.Store(42, types.NewMove(types.SqC2, types.SqC3), 99, 1, 0, BoundExact)
	move, _, depth, _, ok := table.Probe(42)
	assert.True(t, ok)
	assert.Equal(t, 1, depth) // same key always refreshes regardless of depth
	assert.Equal(t, types.NewMove(types.SqC2, types.SqC3), move)
}

func TestNewSearchAgesGenerationAllowingShallowerOverwrite(t *testing.T) {
	table := NewTable(1)
	table.Store(100, types.NewMove(types.SqD2, types.SqD4), 0, 10, 0, BoundExact)
	table.NewSearch()
	table.Store(zobristKeyInSameSlot(table, 100), types.NewMove(types.SqE2, types.SqE4), 0, 1, 0, BoundExact)

	_, _, depth, _, ok := table.Probe(zobristKeyInSameSlot(table, 100))
	assert.True(t, ok)
	assert.Equal(t, 1, depth)
}

func TestClearResetsEverything(t *testing.T) {
	table := NewTable(1)
	table.Store(5, types.NewMove(types.SqE2, types.SqE4), 0, 4, 0, BoundExact)
	table.Clear()
	assert.Equal(t, uint64(0), table.Hits+table.Misses+table.Stores)
	_, _, _, _, ok := table.Probe(5)
	assert.False(t, ok)
}
