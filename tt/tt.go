// Package tt implements Corvid's transposition table: a power-of-two
// sized array of 16-byte entries addressed by hash & (size-1), with a
// depth-preferred, generation-aged replacement policy and mate-distance
// score adjustment on store/probe.
package tt

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/corvidchess/corvid/logging"
	"github.com/corvidchess/corvid/types"
	"github.com/corvidchess/corvid/zobrist"
)

// Bound classifies what a stored score means relative to the window it
// was computed in.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower
	BoundUpper
)

// Mate and Infinity mirror the search's own scoring constants; duplicated
// here rather than imported from package search to avoid a search<->tt
// import cycle (search is tt's only caller).
const (
	Mate      = 29_000
	Infinity  = 30_000
	mateWindow = 100
)

// entrySize is the 16-byte packed entry: an 8-byte key plus a 2-byte
// move, 2-byte score, 1-byte depth, 1-byte bound, 1-byte generation and
// 1 byte of padding the Go struct layout already supplies without an
// explicit packing trick.
type entry struct {
	key        zobrist.Key
	move       types.Move
	score      int16
	depth      int8
	bound      Bound
	generation uint8
}

const entrySize = 16

// MaxSizeMB caps a requested table size.
const MaxSizeMB = 65_536

// minEntries is the floor Resize enforces even for a tiny requested
// size.
const minEntries = 1024

var printer = message.NewPrinter(language.English)

// Table is the transposition table. The zero value is usable but holds
// zero entries; call NewTable or Resize to give it capacity.
type Table struct {
	entries    []entry
	mask       uint64
	generation uint8
	log        *logging.Logger

	Hits   uint64
	Misses uint64
	Stores uint64
}

// NewTable creates a table sized to fit within sizeMB megabytes, rounded
// down to a power of two with a 1,024-entry floor.
func NewTable(sizeMB int) *Table {
	t := &Table{log: logging.Get()}
	t.Resize(sizeMB)
	return t
}

// Resize rebuilds the table for a new megabyte budget, discarding all
// entries.
func (t *Table) Resize(sizeMB int) {
	if sizeMB > MaxSizeMB {
		sizeMB = MaxSizeMB
	}
	if sizeMB < 0 {
		sizeMB = 0
	}
	bytes := uint64(sizeMB) * 1024 * 1024
	numEntries := uint64(1)
	if bytes >= entrySize {
		pow := int(math.Floor(math.Log2(float64(bytes / entrySize))))
		numEntries = uint64(1) << uint(pow)
	}
	if numEntries < minEntries {
		numEntries = minEntries
	}
	t.entries = make([]entry, numEntries)
	t.mask = numEntries - 1
	t.log.Infof("tt: resized to %s entries (%s MB requested)",
		printer.Sprintf("%d", numEntries), printer.Sprintf("%d", sizeMB))
}

func (t *Table) slot(key zobrist.Key) *entry {
	return &t.entries[uint64(key)&t.mask]
}

// NewSearch bumps the generation counter (wrapping), marking every entry
// from the previous search as a stale-but-reusable candidate.
func (t *Table) NewSearch() {
	t.generation++
}

// Clear zeroes every slot and resets the generation.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = entry{}
	}
	t.generation = 0
	t.Hits, t.Misses, t.Stores = 0, 0, 0
}

// Probe returns the stored entry for key and ok=true iff its key matches
// exactly (type-1 collisions are rejected outright; there is no linear
// probing).
func (t *Table) Probe(key zobrist.Key) (move types.Move, score int, depth int, bound Bound, ok bool) {
	if len(t.entries) == 0 {
		return types.MoveNone, 0, 0, BoundNone, false
	}
	e := t.slot(key)
	if e.key != key {
		t.Misses++
		return types.MoveNone, 0, 0, BoundNone, false
	}
	t.Hits++
	return e.move, int(e.score), int(e.depth), e.bound, true
}

// RetrieveScore adjusts a probed score back toward ply and returns it
// along with ok=true only when the stored bound justifies an alpha-beta
// cutoff at the given window: Exact always qualifies, Lower iff
// score >= beta, Upper iff score <= alpha. A false result does not mean
// the probe was useless — the returned move is still a good ordering
// hint — only that the score itself cannot be trusted as a cutoff here.
func RetrieveScore(score int, bound Bound, ply, alpha, beta int) (int, bool) {
	adjusted := adjustFromStorage(score, ply)
	switch bound {
	case BoundExact:
		return adjusted, true
	case BoundLower:
		return adjusted, adjusted >= beta
	case BoundUpper:
		return adjusted, adjusted <= alpha
	default:
		return adjusted, false
	}
}

// adjustFromStorage converts a mate score stored as distance-from-root
// back into distance-from-the-current-ply.
func adjustFromStorage(score, ply int) int {
	switch {
	case score > Mate-mateWindow:
		return score - ply
	case score < -Mate+mateWindow:
		return score + ply
	default:
		return score
	}
}

// adjustForStorage converts a mate score expressed as distance from the
// current ply into distance-from-root, the form persisted in the table
// so it reads correctly regardless of which ply later probes it.
func adjustForStorage(score, ply int) int {
	switch {
	case score > Mate-mateWindow:
		return score + ply
	case score < -Mate+mateWindow:
		return score - ply
	default:
		return score
	}
}

// Store records a search result, applying the depth-preferred,
// generation-aged replacement policy: replace iff the slot is empty, the
// key matches (refreshing an existing entry), the new depth is at least
// the old depth, or the old entry is from a previous generation.
func (t *Table) Store(key zobrist.Key, move types.Move, score, depth, ply int, bound Bound) {
	if len(t.entries) == 0 {
		return
	}
	e := t.slot(key)
	replace := e.key == 0 || e.key == key || int8(depth) >= e.depth || e.generation != t.generation
	if !replace {
		return
	}
	t.Stores++
	*e = entry{
		key:        key,
		move:       move,
		score:      int16(adjustForStorage(score, ply)),
		depth:      int8(depth),
		bound:      bound,
		generation: t.generation,
	}
}

// Len reports the table's entry capacity.
func (t *Table) Len() int { return len(t.entries) }
