package testsuite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/position"
)

func TestParseLineExtractsBestMoveOpcode(t *testing.T) {
	line := `r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4 bm Qxf7#; id "mate in one";`
	test, err := parseLine(line)
	require.NoError(t, err)
	require.NotNil(t, test)
	assert.Equal(t, opBestMove, test.op)
	assert.Equal(t, "mate in one", test.ID)
	require.Len(t, test.targetMoves, 1)
	assert.Equal(t, "h5f7", test.targetMoves[0].String())
}

func TestParseLineExtractsDirectMateOpcode(t *testing.T) {
	line := `rnbqkbnr/pppp1ppp/4p3/8/6Pq/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2 dm 1; id "scholar setup";`
	test, err := parseLine(line)
	require.NoError(t, err)
	require.NotNil(t, test)
	assert.Equal(t, opDirectMate, test.op)
	assert.Equal(t, 1, test.mateDepth)
}

func TestParseLineSkipsBlankAndCommentLines(t *testing.T) {
	test, err := parseLine("   ")
	require.NoError(t, err)
	assert.Nil(t, test)

	test, err = parseLine("# just a comment, no EPD here")
	require.NoError(t, err)
	assert.Nil(t, test)
}

func TestParseLineRejectsUnresolvableMove(t *testing.T) {
	line := `8/8/8/8/8/8/8/4K2k w - - 0 1 bm Qxf7#; id "no queen on the board";`
	_, err := parseLine(line)
	assert.Error(t, err)
}

func TestResolveSANFindsQueenCapture(t *testing.T) {
	p, err := position.FromFEN("r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4")
	require.NoError(t, err)
	m, ok := resolveSAN(p, "Qxf7#")
	require.True(t, ok)
	assert.Equal(t, "h5f7", m.String())
}

func TestResolveSANFindsKingsideCastle(t *testing.T) {
	p, err := position.FromFEN("rnbqk2r/pppp1ppp/5n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")
	require.NoError(t, err)
	m, ok := resolveSAN(p, "O-O")
	require.True(t, ok)
	assert.Equal(t, "e1g1", m.String())
}

func TestSuiteRunPassesBestMoveTest(t *testing.T) {
	line := `r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4 bm Qxf7#; id "mate in one";`
	test, err := parseLine(line)
	require.NoError(t, err)

	suite := &Suite{Tests: []*Test{test}, Depth: 2, MoveTime: 2 * time.Second}
	suite.Run()

	assert.Equal(t, Passed, test.Verdict)
	assert.Equal(t, 1, suite.Result.Total)
	assert.Equal(t, 1, suite.Result.Passed)
}

// BK.01, one of the positions from the classic Bratko-Kopec test suite
// (translated here rather than carried over verbatim as a fixture file;
// see DESIGN.md).
func TestResolveSANHandlesBratkoKopecPosition(t *testing.T) {
	p, err := position.FromFEN("1k1r4/pp1b1R2/3q2pp/4p3/2B5/4Q3/PPP2B2/2K5 b - -")
	require.NoError(t, err)
	m, ok := resolveSAN(p, "Qd1+")
	require.True(t, ok)
	assert.Equal(t, "d6d1", m.String())
}

func TestSuiteRunFailsWhenAvoidMoveIsPlayed(t *testing.T) {
	line := `r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4 am Qxf7#; id "must not take";`
	test, err := parseLine(line)
	require.NoError(t, err)

	suite := &Suite{Tests: []*Test{test}, Depth: 2}
	suite.Run()

	assert.Equal(t, Failed, test.Verdict)
}
