// Package zobrist holds the process-wide, immutable table of pseudorandom
// keys used to incrementally hash a position: one key per (piece, color,
// square), a side-to-move key, one key per castling-rights value, and one
// key per en-passant file.
package zobrist

import (
	"math/rand"
	"sync"

	"github.com/corvidchess/corvid/types"
)

// Key is a Zobrist hash value.
type Key uint64

const seed = 0x5DEECE66D

var (
	pieceSquare [types.PtLength][types.ColorLength][types.SqLength]Key
	castling    [16]Key
	epFile      [types.FileLength]Key
	sideToMove  Key

	initOnce sync.Once
)

// Init computes every Zobrist key from the fixed seed. Idempotent; the
// package init() already calls it once.
func Init() {
	initOnce.Do(func() {
		r := rand.New(rand.NewSource(seed))
		for pt := types.Pawn; pt < types.PtLength; pt++ {
			for c := types.White; c < types.ColorLength; c++ {
				for sq := types.SqA1; sq < types.SqLength; sq++ {
					pieceSquare[pt][c][sq] = Key(r.Uint64())
				}
			}
		}
		for i := range castling {
			castling[i] = Key(r.Uint64())
		}
		for f := types.FileA; f < types.FileLength; f++ {
			epFile[f] = Key(r.Uint64())
		}
		sideToMove = Key(r.Uint64())
	})
}

func init() {
	Init()
}

// PieceSquare returns the key for a piece of type pt and color c sitting
// on sq.
func PieceSquare(pt types.PieceType, c types.Color, sq types.Square) Key {
	return pieceSquare[pt][c][sq]
}

// Castling returns the key for a given 4-bit castling-rights mask.
func Castling(cr types.CastlingRights) Key {
	return castling[cr]
}

// EpFile returns the key for an en-passant target on file f.
func EpFile(f types.File) Key {
	return epFile[f]
}

// SideToMove returns the key XORed in whenever it is Black to move.
func SideToMove() Key {
	return sideToMove
}
