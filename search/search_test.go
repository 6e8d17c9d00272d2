package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/config"
	"github.com/corvidchess/corvid/movegen"
	"github.com/corvidchess/corvid/moveorder"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/tt"
	"github.com/corvidchess/corvid/types"
	"github.com/corvidchess/corvid/zobrist"
)

func TestTimeAllocationRespectsClockAndIncrement(t *testing.T) {
	l := Limits{WhiteTime: 60 * time.Second, WhiteInc: 2 * time.Second, MovesToGo: 30}
	budget, infinite := l.TimeBudget(types.White)
	assert.False(t, infinite)
	assert.Greater(t, budget, time.Duration(0))
	assert.LessOrEqual(t, budget, 4*60*time.Second/5)
}

func TestTimeAllocationUsesMoveTimeDirectly(t *testing.T) {
	l := Limits{MoveTime: 500 * time.Millisecond, WhiteTime: time.Minute}
	budget, infinite := l.TimeBudget(types.White)
	assert.False(t, infinite)
	assert.Equal(t, 500*time.Millisecond, budget)
}

func TestTimeAllocationInfiniteHasNoBudget(t *testing.T) {
	l := Limits{Infinite: true}
	_, infinite := l.TimeBudget(types.White)
	assert.True(t, infinite)
}

func TestFormatScoreReportsCentipawnsAwayFromMate(t *testing.T) {
	assert.Equal(t, "cp 35", FormatScore(35))
	assert.Equal(t, "cp -120", FormatScore(-120))
}

func TestFormatScoreReportsMateDistance(t *testing.T) {
	assert.Equal(t, "mate 1", FormatScore(Mate-1))
	assert.Equal(t, "mate -1", FormatScore(-Mate+1))
}

// S1: start position, depth 3 returns a legal move with nodes > 0, and a
// second identical search does not need more nodes than the first since
// the transposition table is already warm.
func TestStartPositionDepthThreeFindsAMoveAndReusesTT(t *testing.T) {
	s := NewSearcher(16)
	p := position.New()
	r1 := s.SearchPosition(p, Limits{Depth: 3}, nil, nil)
	require.NotEqual(t, types.MoveNone, r1.BestMove)
	require.Greater(t, r1.Nodes, int64(0))

	r2 := s.SearchPosition(p, Limits{Depth: 3}, nil, nil)
	assert.LessOrEqual(t, r2.Nodes, r1.Nodes)
}

// S2: a forced mate-in-1 by queen capture is found at shallow depth.
func TestFindsForcedMateInOne(t *testing.T) {
	s := NewSearcher(16)
	p, err := position.FromFEN("r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4")
	require.NoError(t, err)

	r := s.SearchPosition(p, Limits{Depth: 2}, nil, nil)
	assert.Equal(t, "h5f7", r.BestMove.String())
	assert.Greater(t, r.Score, Mate-10)
}

// S3: side to move is checkmated; negamax at depth 1 returns a score
// below -MATE+200, and null_move refuses since the side is in check.
func TestCheckmatedPositionReturnsMateScore(t *testing.T) {
	s := NewSearcher(16)
	p, err := position.FromFEN("rnbqkbnr/pppp1ppp/4p3/8/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)

	require.Equal(t, position.Checkmate, p.Status())
	score := s.negamax(p, 1, 0, -Infinity, Infinity, true)
	assert.Less(t, score, -Mate+200)

	_, ok := p.NullMove()
	assert.False(t, ok)
}

// Property #8: a position reached three times by repetition scores 0 at
// ply > 0, since negamax treats any hash already on the searcher's
// repetition stack as a draw.
func TestThreefoldRepetitionScoresAsDraw(t *testing.T) {
	s := NewSearcher(16)
	p := position.New()

	seq := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	history := []zobrist.Key{p.Hash()}
	cur := p
	for _, uci := range seq {
		m, ok := types.MoveFromUCI(uci)
		require.True(t, ok)
		cur = cur.MakeMove(m)
		history = append(history, cur.Hash())
	}

	s.stopFlag.Store(false)
	s.nodes = 0
	s.killers = &moveorder.Killers{}
	s.history = &moveorder.History{}
	s.repetition = append([]zobrist.Key(nil), history...)

	score := s.negamax(cur, 1, 1, -Infinity, Infinity, true)
	assert.Equal(t, 0, score)
}

// Searching past the horizon into quiescence, and hitting the
// transposition table on a repeated search of the same position, both
// show up in the accumulated Statistics counters.
func TestStatisticsCountQuiescenceNodesAndTTHits(t *testing.T) {
	s := NewSearcher(16)
	p := position.New()

	r1 := s.SearchPosition(p, Limits{Depth: 3}, nil, nil)
	require.NotEqual(t, types.MoveNone, r1.BestMove)
	assert.Greater(t, s.stats.QNodes, int64(0))
	assert.Equal(t, s.nodes, s.stats.Nodes)

	s.SearchPosition(p, Limits{Depth: 3}, nil, nil)
	assert.Greater(t, s.stats.TTHits, int64(0))
}

// A stop detected partway through the root move loop must keep the best
// score and move already recorded from earlier siblings rather than
// discarding them: the loop used to return 0 outright on a mid-loop stop,
// skipping the transposition-table store below it, which left
// rootBestMove with nothing to recover for the very first iterative-
// deepening iteration.
//
// The node count at which the first candidate move's entire subtree
// finishes is measured in isolation, then the stop-check interval is set
// so the hard-expired clock is only sampled once play moves on to the
// second candidate — landing the stop after the first sibling is fully
// scored but before the second contributes anything.
func TestStopMidRootLoopKeepsEarlierSiblingScore(t *testing.T) {
	origCheckEvery := config.Settings.Search.CheckEveryNodes
	defer func() { config.Settings.Search.CheckEveryNodes = origCheckEvery }()

	p := position.New()
	moves := movegen.Generate(p)
	require.Greater(t, len(moves), 1)

	probe := NewSearcher(16)
	probe.killers = &moveorder.Killers{}
	probe.history = &moveorder.History{}
	probe.infinite = true

	scored := moveorder.Order(p, moves, types.MoveNone, probe.killers, probe.history, 0)
	firstMove := scored[0].Move
	child := p.MakeMove(firstMove)
	probe.negamax(child, 1, 1, -Infinity, Infinity, true)
	firstChildNodes := probe.nodes
	require.Greater(t, firstChildNodes, int64(0))

	// One node for the root itself, the first candidate's whole subtree,
	// then one more node into the second candidate.
	config.Settings.Search.CheckEveryNodes = firstChildNodes + 2

	s := NewSearcher(16)
	s.killers = &moveorder.Killers{}
	s.history = &moveorder.History{}
	s.infinite = false
	s.hardLimit = 0
	s.startTime = time.Now()

	score := s.negamax(p, 2, 0, -Infinity, Infinity, true)
	require.True(t, s.stopFlag.Load())
	assert.NotEqual(t, -Infinity, score)

	move, stored, _, _, ok := s.tt.Probe(p.Hash())
	require.True(t, ok)
	assert.Equal(t, firstMove, move)
	assert.Equal(t, score, stored)
}

// Property #9: a mate score stored near the root round-trips through the
// transposition table's own adjust-for-storage/adjust-from-storage path.
func TestTTMateScoreRoundTripsThroughSearch(t *testing.T) {
	table := tt.NewTable(16)
	key := zobrist.Key(0xabcdef)
	const ply = 4
	mateScore := Mate - 7

	table.Store(key, types.MoveNone, mateScore, 10, ply, tt.BoundExact)
	_, stored, _, bound, ok := table.Probe(key)
	require.True(t, ok)

	adjusted, usable := tt.RetrieveScore(stored, bound, ply, -Infinity, Infinity)
	assert.True(t, usable)
	assert.Equal(t, mateScore, adjusted)
}
