package uci

import (
	"bufio"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/corvidchess/corvid/config"
	"github.com/corvidchess/corvid/position"
)

func TestUciCommandAdvertisesIdentityAndOptions(t *testing.T) {
	u := NewHandler()
	result := u.Command("uci")
	assert.Contains(t, result, "id name "+engineName)
	assert.Contains(t, result, "id author")
	assert.Contains(t, result, "option name Hash")
	assert.Contains(t, result, "uciok")
}

func TestIsReadyRespondsImmediately(t *testing.T) {
	u := NewHandler()
	result := u.Command("isready")
	assert.Contains(t, result, "readyok")
}

func TestPositionCommandAppliesStartposAndMoves(t *testing.T) {
	u := NewHandler()

	u.Command("position startpos")
	assert.Equal(t, position.StartFEN, u.pos.FEN())

	u.Command("position startpos moves e2e4 e7e5 g1f3 b8c6")
	assert.Equal(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", u.pos.FEN())
}

func TestPositionCommandRejectsIllegalMove(t *testing.T) {
	u := NewHandler()
	result := u.Command("position startpos moves e2e5")
	assert.Contains(t, result, "info string")
	assert.Equal(t, position.StartFEN, u.pos.FEN())
}

func TestPositionCommandAcceptsFen(t *testing.T) {
	u := NewHandler()
	u.Command("position fen " + position.StartFEN)
	assert.Equal(t, position.StartFEN, u.pos.FEN())
}

func TestSetOptionResizesHash(t *testing.T) {
	u := NewHandler()
	result := u.Command("setoption name Hash value 32")
	assert.Empty(t, result)
	assert.Equal(t, 32, config.Settings.Search.TTSizeMB)
}

func TestSetOptionUnknownNameReportsInfoString(t *testing.T) {
	u := NewHandler()
	result := u.Command("setoption name Nonexistent value 1")
	assert.Contains(t, result, "info string")
}

func TestGoDepthReportsBestMove(t *testing.T) {
	u := NewHandler()
	u.Command("position startpos")
	buf := new(bytes.Buffer)
	u.out = bufio.NewWriter(buf)
	u.handle("go depth 2")
	// The search runs in its own goroutine; give it time to start a
	// shallow fixed-depth search, then wait for it to finish before
	// checking for a response.
	time.Sleep(500 * time.Millisecond)
	u.searcher.Join()
	u.outMu.Lock()
	defer u.outMu.Unlock()
	_ = u.out.Flush()
	assert.Contains(t, buf.String(), "bestmove")
}

func TestPerftCommandReportsNodeCount(t *testing.T) {
	u := NewHandler()
	u.Command("position startpos")
	result := u.Command("perft 3")
	assert.Contains(t, result, "perft depth 3")
	assert.Contains(t, result, "nodes 8902")
}

func TestStopHaltsAnInfiniteSearch(t *testing.T) {
	u := NewHandler()
	u.Command("position startpos")
	buf := new(bytes.Buffer)
	u.out = bufio.NewWriter(buf)
	u.handle("go infinite")
	time.Sleep(100 * time.Millisecond)
	u.searcher.Stop()
	// Join returns only once the search goroutine has finished.
	u.searcher.Join()
	u.outMu.Lock()
	defer u.outMu.Unlock()
	_ = u.out.Flush()
	assert.Contains(t, buf.String(), "bestmove")
}
