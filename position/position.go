// Package position implements the bitboard board representation: piece
// and color bitboards, castling rights, en-passant state, the half-move
// clock, an incrementally maintained Zobrist hash and a cached checkers
// bitboard.
package position

import (
	"github.com/corvidchess/corvid/assert"
	"github.com/corvidchess/corvid/attacks"
	"github.com/corvidchess/corvid/moveslice"
	"github.com/corvidchess/corvid/types"
	"github.com/corvidchess/corvid/zobrist"
)

// Status is the terminal-or-not classification of a position.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

// Position is a copy-by-value chess position. The zero value is not a
// legal position; use New() or FromFEN to obtain one.
type Position struct {
	pieces [types.PtLength]types.Bitboard
	colors [types.ColorLength]types.Bitboard

	sideToMove     types.Color
	castling       types.CastlingRights
	epSquare       types.Square
	halfmoveClock  int
	fullmoveNumber int

	hash     zobrist.Key
	checkers types.Bitboard
}

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// New returns the standard starting position.
func New() *Position {
	p, err := FromFEN(StartFEN)
	if err != nil {
		panic("position: start FEN must always parse: " + err.Error())
	}
	return p
}

// generateLegalFunc is injected by package movegen at init time so that
// Position.Legal and Position.Status can consult real legal-move
// generation without position importing movegen (which itself must
// import position) — a callback-injection idiom that avoids an import
// cycle between position and movegen.
var generateLegalFunc func(*Position) moveslice.MoveSlice

// RegisterMoveGenerator is called once by package movegen's init() to
// wire Legal/Status to the real generator.
func RegisterMoveGenerator(fn func(*Position) moveslice.MoveSlice) {
	generateLegalFunc = fn
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() types.Color { return p.sideToMove }

// Castling returns the current castling rights.
func (p *Position) Castling() types.CastlingRights { return p.castling }

// EpSquare returns the current en-passant target square, or SqNone.
func (p *Position) EpSquare() types.Square { return p.epSquare }

// HalfmoveClock returns the number of plies since the last capture or
// pawn move. Tracked for FEN round-tripping only: Corvid does not
// implement the 50-move draw rule, so nothing in search or Status ever
// reads this field.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// FullmoveNumber returns the FEN full-move counter.
func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

// Hash returns the incrementally maintained Zobrist hash.
func (p *Position) Hash() zobrist.Key { return p.hash }

// Checkers returns the enemy pieces currently attacking the side to
// move's king.
func (p *Position) Checkers() types.Bitboard { return p.checkers }

// IsInCheck reports whether the side to move is in check.
func (p *Position) IsInCheck() bool { return p.checkers != types.BbZero }

// Occupied returns the bitboard of all occupied squares.
func (p *Position) Occupied() types.Bitboard { return p.colors[types.White] | p.colors[types.Black] }

// ColorBb returns the bitboard of every piece of color c.
func (p *Position) ColorBb(c types.Color) types.Bitboard { return p.colors[c] }

// PieceTypeBb returns the bitboard of every piece of type pt (both
// colors).
func (p *Position) PieceTypeBb(pt types.PieceType) types.Bitboard { return p.pieces[pt] }

// PiecesOf returns the bitboard of pieces of type pt and color c:
// piece[p] & color[c].
func (p *Position) PiecesOf(pt types.PieceType, c types.Color) types.Bitboard {
	return p.pieces[pt] & p.colors[c]
}

// PieceOn returns the colored piece sitting on sq, or PieceNone.
func (p *Position) PieceOn(sq types.Square) types.Piece {
	var c types.Color
	switch {
	case p.colors[types.White].Has(sq):
		c = types.White
	case p.colors[types.Black].Has(sq):
		c = types.Black
	default:
		return types.PieceNone
	}
	for pt := types.Pawn; pt < types.PtLength; pt++ {
		if p.pieces[pt].Has(sq) {
			return types.MakePiece(c, pt)
		}
	}
	return types.PieceNone
}

// ColorOn returns the color of the piece on sq, if any.
func (p *Position) ColorOn(sq types.Square) (types.Color, bool) {
	if p.colors[types.White].Has(sq) {
		return types.White, true
	}
	if p.colors[types.Black].Has(sq) {
		return types.Black, true
	}
	return types.White, false
}

func (p *Position) placePiece(pt types.PieceType, c types.Color, sq types.Square) {
	p.pieces[pt] = p.pieces[pt].Set(sq)
	p.colors[c] = p.colors[c].Set(sq)
	p.hash ^= zobrist.PieceSquare(pt, c, sq)
}

func (p *Position) removePiece(pt types.PieceType, c types.Color, sq types.Square) {
	p.pieces[pt] = p.pieces[pt].Clear(sq)
	p.colors[c] = p.colors[c].Clear(sq)
	p.hash ^= zobrist.PieceSquare(pt, c, sq)
}

// KingSquare returns the square of color c's king.
func (p *Position) KingSquare(c types.Color) types.Square {
	kings := p.PiecesOf(types.King, c)
	if assert.Debug {
		assert.Invariant(kings != types.BbZero, "position: color %v has no king", c)
	}
	return kings.Lsb()
}

// AttackersTo returns every piece (of either color) attacking sq given
// the board's full occupancy.
func (p *Position) AttackersTo(sq types.Square) types.Bitboard {
	occ := p.Occupied()
	var att types.Bitboard
	att |= attacks.Pawn(types.Black, sq) & p.PiecesOf(types.Pawn, types.White)
	att |= attacks.Pawn(types.White, sq) & p.PiecesOf(types.Pawn, types.Black)
	att |= attacks.Knight(sq) & p.pieces[types.Knight]
	att |= attacks.King(sq) & p.pieces[types.King]
	att |= attacks.Bishop(sq, occ) & (p.pieces[types.Bishop] | p.pieces[types.Queen])
	att |= attacks.Rook(sq, occ) & (p.pieces[types.Rook] | p.pieces[types.Queen])
	return att
}

// IsAttackedBy reports whether any piece of color c attacks sq.
func (p *Position) IsAttackedBy(sq types.Square, c types.Color) bool {
	return p.AttackersTo(sq)&p.colors[c] != types.BbZero
}

func (p *Position) computeCheckers() types.Bitboard {
	ksq := p.KingSquare(p.sideToMove)
	return p.AttackersTo(ksq) & p.colors[p.sideToMove.Negate()]
}

// HashFromScratch recomputes the Zobrist hash from the current board
// state without using the incrementally maintained field — used by tests
// that check the incremental hash never drifts from a from-scratch
// recomputation.
func (p *Position) HashFromScratch() zobrist.Key {
	var h zobrist.Key
	for pt := types.Pawn; pt < types.PtLength; pt++ {
		for c := types.White; c < types.ColorLength; c++ {
			bb := p.PiecesOf(pt, c)
			for bb != types.BbZero {
				sq := bb.PopLsb()
				h ^= zobrist.PieceSquare(pt, c, sq)
			}
		}
	}
	if p.sideToMove == types.Black {
		h ^= zobrist.SideToMove()
	}
	h ^= zobrist.Castling(p.castling)
	if p.epSquare != types.SqNone {
		h ^= zobrist.EpFile(p.epSquare.FileOf())
	}
	return h
}

// Legal reports whether m is among the legal moves in this position.
func (p *Position) Legal(m types.Move) bool {
	if generateLegalFunc == nil {
		panic("position: no move generator registered — import package movegen")
	}
	return generateLegalFunc(p).Has(m)
}

// Status classifies the position as Ongoing, Checkmate or Stalemate by
// attempting to generate one legal move.
func (p *Position) Status() Status {
	if generateLegalFunc == nil {
		panic("position: no move generator registered — import package movegen")
	}
	if len(generateLegalFunc(p)) > 0 {
		return Ongoing
	}
	if p.IsInCheck() {
		return Checkmate
	}
	return Stalemate
}

// String renders the position as a FEN string.
func (p *Position) String() string {
	return p.FEN()
}

// Clone returns a value copy of p (Position contains no pointers or
// slices, so a plain struct copy suffices — MakeMove already returns by
// value for this reason).
func (p *Position) Clone() *Position {
	cp := *p
	return &cp
}

// HasNonPawnMaterial reports whether color c has at least one
// piece that is neither a pawn nor a king — a null-move-pruning
// precondition, since null-move search is unsound in pawn/king-only
// endgames prone to zugzwang.
func (p *Position) HasNonPawnMaterial(c types.Color) bool {
	for pt := types.Knight; pt <= types.Queen; pt++ {
		if p.PiecesOf(pt, c) != types.BbZero {
			return true
		}
	}
	return false
}
