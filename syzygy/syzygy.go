// Package syzygy provides a stand-in endgame table lookup: not a real
// Syzygy WDL/DTZ decoder, but the same shaped seam — a prober keyed by
// material signature that negamax can consult once material has thinned
// enough to matter, gated past a minimum ply and piece count the same
// way a worker holding a tablebase prober would gate it.
package syzygy

import (
	"fmt"
	"os"

	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/types"
)

// MaxPieces bounds how much material remains before a probe is even
// attempted; beyond this a lookup table would be impractically large
// for the handful of KPvK/KRvK signatures this stand-in actually knows.
const MaxPieces = 5

// Tablebase answers win/draw/loss queries for thin-material positions
// from a small built-in signature table rather than a file format.
type Tablebase struct {
	path    string
	loaded  bool
	entries map[string]int // material signature -> WDL from White's perspective
}

// New returns an empty, unloaded Tablebase; ProbeWDL always misses until
// Load is called.
func New() *Tablebase {
	return &Tablebase{entries: builtinSignatures()}
}

// Load records the configured tablebase directory. Corvid does not ship
// a real Syzygy decoder, so this only validates the path exists and
// flips the prober on; an empty path clears it (matching UCI's
// "setoption name SyzygyPath value <empty>" convention).
func (t *Tablebase) Load(path string) error {
	if path == "" {
		t.path = ""
		t.loaded = false
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("syzygy: cannot use path %q: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("syzygy: %q is not a directory", path)
	}
	t.path = path
	t.loaded = true
	return nil
}

// ProbeWDL reports a win/draw/loss score for p from the side to move's
// perspective, or ok=false when the position has too much material or
// no tablebase is loaded. Scores are small (±1) rather than mate
// distances since this stand-in carries no DTZ information.
func (t *Tablebase) ProbeWDL(p *position.Position) (int, bool) {
	if !t.loaded || CountPieces(p) > MaxPieces {
		return 0, false
	}
	wdl, ok := t.entries[materialSignature(p)]
	if !ok {
		return 0, false
	}
	if p.SideToMove() == types.Black {
		wdl = -wdl
	}
	return wdl, true
}

// CountPieces returns the total number of pieces (both colors, all
// types) on the board.
func CountPieces(p *position.Position) int {
	return p.Occupied().PopCount()
}

// materialSignature is a compact, color- and piece-type-keyed count
// string independent of square — two positions with the same pieces in
// different places share one signature, as endgame tables require.
func materialSignature(p *position.Position) string {
	sig := make([]byte, 0, 12)
	for _, c := range [2]types.Color{types.White, types.Black} {
		for pt := types.Pawn; pt < types.PtLength; pt++ {
			n := p.PiecesOf(pt, c).PopCount()
			sig = append(sig, byte(c), byte(pt), byte(n))
		}
	}
	return string(sig)
}

// builtinSignatures seeds the handful of trivially-known endgame
// results this stand-in recognizes (from White's perspective): a lone
// extra pawn or rook is a win, bare kings are a draw. A real Syzygy
// decoder would replace this with on-disk WDL tables covering up to
// seven pieces.
func builtinSignatures() map[string]int {
	return map[string]int{
		signatureOf(map[types.PieceType]int{}):              0, // K vs K
		signatureOf(map[types.PieceType]int{types.Pawn: 1}):  1, // KP vs K
		signatureOf(map[types.PieceType]int{types.Rook: 1}):  1, // KR vs K
		signatureOf(map[types.PieceType]int{types.Queen: 1}): 1, // KQ vs K
	}
}

// signatureOf builds the White-ahead half of a material signature for a
// bare White king plus the given extra White pieces against a bare
// Black king, matching materialSignature's byte layout.
func signatureOf(whiteExtra map[types.PieceType]int) string {
	sig := make([]byte, 0, 12)
	for pt := types.Pawn; pt < types.PtLength; pt++ {
		sig = append(sig, byte(types.White), byte(pt), byte(whiteExtra[pt]))
	}
	for pt := types.Pawn; pt < types.PtLength; pt++ {
		sig = append(sig, byte(types.Black), byte(pt), 0)
	}
	return string(sig)
}
