package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/types"
)

func TestStartingPositionIsRoughlyBalanced(t *testing.T) {
	e := New()
	score := e.Evaluate(position.New())
	assert.InDelta(t, 0, score, 60, "startpos eval should be near zero, got %d", score)
}

func TestMaterialAdvantageIsDetected(t *testing.T) {
	e := New()
	p, err := position.FromFEN("4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	require.NoError(t, err)
	score := e.Evaluate(p)
	assert.Greater(t, score, 400)
}

func TestGamePhaseClampsAtStartingTotal(t *testing.T) {
	p := position.New()
	assert.Equal(t, types.TotalPhase, gamePhase(p))
}

func TestDoubledPawnsScoreWorseThanHealthyStructure(t *testing.T) {
	e := New()
	doubled, err := position.FromFEN("4k3/8/8/8/8/4P3/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	healthy, err := position.FromFEN("4k3/8/8/8/8/4P3/3P4/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Less(t, e.Evaluate(doubled), e.Evaluate(healthy))
}

func TestPassedPawnRecognizedAndCached(t *testing.T) {
	e := New()
	p, err := position.FromFEN("4k3/8/8/4P3/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	first := e.pawnStructure(p, types.White)
	second := e.pawnStructure(p, types.White) // must hit the cache and agree
	assert.Equal(t, first, second)
	assert.Greater(t, first, 0)
}
