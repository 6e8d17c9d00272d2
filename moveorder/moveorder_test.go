package moveorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/movegen"
	"github.com/corvidchess/corvid/moveslice"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/types"
)

func TestHashMoveSortsFirst(t *testing.T) {
	p := position.New()
	moves := legalMoves(t, p)
	hash := moves[len(moves)-1]

	scored := Order(p, moves, hash, nil, nil, 0)
	assert.Equal(t, hash, scored[0].Move)
	assert.Equal(t, hashMoveScore, scored[0].Score)
}

func TestCapturesOutrankQuietMoves(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/4p3/3P4/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	capture := types.NewMove(types.SqD4, types.SqE5)
	quiet := types.NewMove(types.SqE1, types.SqE2)

	scored := Order(p, []types.Move{quiet, capture}, types.MoveNone, nil, nil, 0)
	assert.Equal(t, capture, scored[0].Move)
}

func TestMvvLvaPrefersCapturingWithCheaperAttacker(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/3q4/2P2N2/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	pawnTakes := types.NewMove(types.SqC4, types.SqD5)
	knightTakes := types.NewMove(types.SqF4, types.SqD5)

	scored := Order(p, []types.Move{knightTakes, pawnTakes}, types.MoveNone, nil, nil, 0)
	assert.Equal(t, pawnTakes, scored[0].Move, "cheaper attacker on an equal victim should sort first")
}

func TestKillersOutrankOrdinaryQuietMoves(t *testing.T) {
	p := position.New()
	killerMove := types.NewMove(types.SqG1, types.SqF3)
	otherQuiet := types.NewMove(types.SqB1, types.SqC3)

	killers := &Killers{}
	killers.Update(0, killerMove)

	scored := Order(p, []types.Move{otherQuiet, killerMove}, types.MoveNone, killers, nil, 0)
	assert.Equal(t, killerMove, scored[0].Move)
}

func TestHistoryBreaksTiesAmongQuietMoves(t *testing.T) {
	p := position.New()
	favored := types.NewMove(types.SqB1, types.SqC3)
	other := types.NewMove(types.SqG1, types.SqF3)

	history := &History{}
	history.Add(types.Knight, types.SqC3, 4)

	scored := Order(p, []types.Move{other, favored}, types.MoveNone, nil, history, 0)
	assert.Equal(t, favored, scored[0].Move)
}

func TestHistoryClampsAtMax(t *testing.T) {
	history := &History{}
	for i := 0; i < 1000; i++ {
		history.Add(types.Queen, types.SqD4, 20)
	}
	assert.Equal(t, historyMax, history.value(types.Queen, types.SqD4))
}

func TestOrderCapturesScoresCaptureAboveBase(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/4p3/3P4/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	capture := types.NewMove(types.SqD4, types.SqE5)

	scored := OrderCaptures(p, []types.Move{capture})
	require.Len(t, scored, 1)
	assert.Equal(t, capture, scored[0].Move)
	assert.Greater(t, scored[0].Score, captureBase)
}

func legalMoves(t *testing.T, p *position.Position) moveslice.MoveSlice {
	t.Helper()
	moves := movegen.Generate(p)
	require.NotEmpty(t, moves)
	return moves
}
