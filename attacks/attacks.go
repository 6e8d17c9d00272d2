// Package attacks precomputes, once at process start, every attack table
// the move generator and evaluator need: leaper tables for knights, kings
// and pawns, and magic-bitboard lookup tables for bishops and rooks
// (queens are the union of the two).
//
// The magic numbers are found by direct search at init time rather than
// hard-coded from a published constant table.
package attacks

import (
	"sync"

	"github.com/corvidchess/corvid/types"
)

var (
	knightAttacks [types.SqLength]types.Bitboard
	kingAttacks   [types.SqLength]types.Bitboard
	pawnAttacks   [types.ColorLength][types.SqLength]types.Bitboard

	rookMagics   [types.SqLength]magic
	bishopMagics [types.SqLength]magic
	rookTable    []types.Bitboard
	bishopTable  []types.Bitboard

	initOnce sync.Once
)

// Init computes every attack table. It is idempotent and safe to call
// from any goroutine as long as one call happens-before any lookup; the
// package's own init() already calls it once, so most callers never need
// to call it explicitly.
func Init() {
	initOnce.Do(func() {
		computeLeapers()
		initMagics(rookDirections, &rookMagics, &rookTable)
		initMagics(bishopDirections, &bishopMagics, &bishopTable)
	})
}

func init() {
	Init()
}

// Knight returns the squares a knight on sq attacks.
func Knight(sq types.Square) types.Bitboard { return knightAttacks[sq] }

// King returns the squares a king on sq attacks (non-castling).
func King(sq types.Square) types.Bitboard { return kingAttacks[sq] }

// Pawn returns the two diagonal capture squares for a pawn of color c on
// sq (fewer near the board edges).
func Pawn(c types.Color, sq types.Square) types.Bitboard { return pawnAttacks[c][sq] }

// Bishop returns the bishop attack set from sq given full board occupancy.
func Bishop(sq types.Square, occupied types.Bitboard) types.Bitboard {
	return bishopMagics[sq].attacks(occupied)
}

// Rook returns the rook attack set from sq given full board occupancy.
func Rook(sq types.Square, occupied types.Bitboard) types.Bitboard {
	return rookMagics[sq].attacks(occupied)
}

// Queen returns the queen attack set from sq given full board occupancy:
// the union of the bishop and rook attack sets.
func Queen(sq types.Square, occupied types.Bitboard) types.Bitboard {
	return Bishop(sq, occupied) | Rook(sq, occupied)
}

// Of returns the attack set of a non-pawn piece type from sq given
// occupancy. Panics on Pawn — pawn attacks are color-dependent, use Pawn.
func Of(pt types.PieceType, sq types.Square, occupied types.Bitboard) types.Bitboard {
	switch pt {
	case types.Knight:
		return Knight(sq)
	case types.King:
		return King(sq)
	case types.Bishop:
		return Bishop(sq, occupied)
	case types.Rook:
		return Rook(sq, occupied)
	case types.Queen:
		return Queen(sq, occupied)
	default:
		panic("attacks.Of: pawn attacks require a color, use attacks.Pawn")
	}
}

func computeLeapers() {
	knightSteps := []types.Direction{
		types.North + types.North + types.East, types.North + types.North + types.West,
		types.South + types.South + types.East, types.South + types.South + types.West,
		types.East + types.East + types.North, types.East + types.East + types.South,
		types.West + types.West + types.North, types.West + types.West + types.South,
	}
	kingSteps := []types.Direction{
		types.North, types.South, types.East, types.West,
		types.Northeast, types.Northwest, types.Southeast, types.Southwest,
	}
	for sq := types.SqA1; sq < types.SqLength; sq++ {
		knightAttacks[sq] = leap(sq, knightSteps)
		kingAttacks[sq] = leap(sq, kingSteps)
		pawnAttacks[types.White][sq] = leap(sq, []types.Direction{types.Northeast, types.Northwest})
		pawnAttacks[types.Black][sq] = leap(sq, []types.Direction{types.Southeast, types.Southwest})
	}
}

// leap computes the set of squares reachable from sq by each single step
// in steps, discarding any step that would wrap around a board edge.
func leap(sq types.Square, steps []types.Direction) types.Bitboard {
	var bb types.Bitboard
	f := int(sq.FileOf())
	r := int(sq.RankOf())
	for _, d := range steps {
		to := sq.To(d)
		if !to.IsValid() {
			continue
		}
		tf := int(to.FileOf())
		tr := int(to.RankOf())
		if abs(tf-f) > 2 || abs(tr-r) > 2 {
			continue
		}
		bb = bb.Set(to)
	}
	return bb
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
