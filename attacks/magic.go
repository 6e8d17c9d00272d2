package attacks

import "github.com/corvidchess/corvid/types"

// magic is one square's entry in a magic-bitboard slider table: the
// relevant-blocker mask, the magic multiplier, the right-shift amount and
// the offset of this square's slice within the shared flat attack table.
type magic struct {
	mask   types.Bitboard
	number uint64
	shift  uint
	offset int
	table  *[]types.Bitboard
}

// index computes the perfect-hash index for a given occupancy: mask off
// the irrelevant squares, multiply by the magic number, and shift the top
// bits down to [0, 2^bits).
func (mg *magic) index(occupied types.Bitboard) int {
	blockers := uint64(occupied & mg.mask)
	return mg.offset + int((blockers*mg.number)>>mg.shift)
}

func (mg *magic) attacks(occupied types.Bitboard) types.Bitboard {
	return (*mg.table)[mg.index(occupied)]
}

var rookDirections = [4]types.Direction{types.North, types.East, types.South, types.West}
var bishopDirections = [4]types.Direction{types.Northeast, types.Southeast, types.Southwest, types.Northwest}

// directionDelta is the (file, rank) unit step for each ray direction,
// used to detect board-edge wraparound while walking a ray one square at
// a time.
var directionDelta = map[types.Direction][2]int{
	types.North:     {0, 1},
	types.South:     {0, -1},
	types.East:      {1, 0},
	types.West:      {-1, 0},
	types.Northeast: {1, 1},
	types.Northwest: {-1, 1},
	types.Southeast: {1, -1},
	types.Southwest: {-1, -1},
}

// rayWalk returns, in order of increasing distance from sq, every square
// along the ray in direction dir, stopping at and including the first
// occupied square (classical, non-magic slider attack generation — used
// both as the reference attack set and to derive relevant-blocker masks).
func rayWalk(sq types.Square, dir types.Direction, occupied types.Bitboard) []types.Square {
	delta := directionDelta[dir]
	var squares []types.Square
	cur := sq
	for {
		f := int(cur.FileOf()) + delta[0]
		r := int(cur.RankOf()) + delta[1]
		if f < 0 || f > 7 || r < 0 || r > 7 {
			break
		}
		next := types.SquareOf(types.File(f), types.Rank(r))
		squares = append(squares, next)
		if occupied.Has(next) {
			break
		}
		cur = next
	}
	return squares
}

// slidingAttack computes the classical (non-magic) attack bitboard for a
// slider on sq moving along dirs given full board occupancy.
func slidingAttack(sq types.Square, dirs [4]types.Direction, occupied types.Bitboard) types.Bitboard {
	var bb types.Bitboard
	for _, d := range dirs {
		for _, s := range rayWalk(sq, d, occupied) {
			bb = bb.Set(s)
		}
	}
	return bb
}

// relevantMask computes the relevant-blocker mask for a slider on sq:
// every square a blocker could occupy along each ray, excluding the final
// (edge) square — a blocker there never changes the attack set, since the
// ray terminates at the board edge regardless.
func relevantMask(sq types.Square, dirs [4]types.Direction) types.Bitboard {
	var bb types.Bitboard
	for _, d := range dirs {
		squares := rayWalk(sq, d, types.BbZero)
		if len(squares) == 0 {
			continue
		}
		for _, s := range squares[:len(squares)-1] {
			bb = bb.Set(s)
		}
	}
	return bb
}

// subsets enumerates every subset of mask, including BbZero and mask
// itself, using the Carry-Rippler identity next = (cur - mask) & mask.
func subsets(mask types.Bitboard) []types.Bitboard {
	n := 1 << mask.PopCount()
	out := make([]types.Bitboard, 0, n)
	var occ types.Bitboard
	for {
		out = append(out, occ)
		occ = (occ - mask) & mask
		if occ == 0 {
			break
		}
	}
	return out
}
