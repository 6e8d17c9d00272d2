package position

import (
	"github.com/corvidchess/corvid/assert"
	"github.com/corvidchess/corvid/types"
	"github.com/corvidchess/corvid/zobrist"
)

// castleRook describes the rook relocation that accompanies a castling
// king move, keyed by the king's destination square.
type castleRook struct {
	rookFrom, rookTo types.Square
}

var castleRookMoves = map[types.Square]castleRook{
	types.SqG1: {types.SqH1, types.SqF1},
	types.SqC1: {types.SqA1, types.SqD1},
	types.SqG8: {types.SqH8, types.SqF8},
	types.SqC8: {types.SqA8, types.SqD8},
}

// MakeMove applies a pseudo-legal move and returns the resulting
// position by value; it does not itself verify legality (that is
// Position.Legal's job, or the move generator's legality filter) but it
// does leave the board in a self-consistent state for any move the
// generator could have produced.
func (p *Position) MakeMove(m types.Move) *Position {
	np := p.Clone()

	from, to := m.From(), m.To()
	us := np.sideToMove
	them := us.Negate()
	mover := np.PieceOn(from)
	if assert.Debug {
		assert.Invariant(mover != types.PieceNone, "makemove: no piece on source square %s", from)
	}
	movedType := mover.TypeOf()

	// Step 1: retract the hash contribution of the castling/EP state
	// that is about to change.
	np.hash ^= zobrist.Castling(np.castling)
	if np.epSquare != types.SqNone {
		np.hash ^= zobrist.EpFile(np.epSquare.FileOf())
	}

	isPawnMove := movedType == types.Pawn
	isCapture := false

	// En-passant capture: the captured pawn sits one rank behind the
	// destination, not on the destination itself.
	if isPawnMove && to == np.epSquare && np.epSquare != types.SqNone {
		capSq := to.To(types.South)
		if us == types.Black {
			capSq = to.To(types.North)
		}
		np.removePiece(types.Pawn, them, capSq)
		isCapture = true
	} else if captured := np.PieceOn(to); captured != types.PieceNone {
		np.removePiece(captured.TypeOf(), them, to)
		isCapture = true
	}

	np.removePiece(movedType, us, from)
	if m.IsPromotion() {
		np.placePiece(m.PromotionType(), us, to)
	} else {
		np.placePiece(movedType, us, to)
	}

	// Castling: the move generator only ever produces a two-file king
	// move to g1/c1/g8/c8 as part of castling, so a destination lookup
	// alone identifies it; relocate the rook too.
	if movedType == types.King {
		if rm, ok := castleRookMoves[to]; ok {
			np.removePiece(types.Rook, us, rm.rookFrom)
			np.placePiece(types.Rook, us, rm.rookTo)
		}
	}

	np.castling &= types.CastlingMask[from] & types.CastlingMask[to]

	np.epSquare = types.SqNone
	if isPawnMove {
		diff := int(to) - int(from)
		if diff == 16 || diff == -16 {
			ep := from.To(types.North)
			if us == types.Black {
				ep = from.To(types.South)
			}
			np.epSquare = ep
		}
	}

	if isPawnMove || isCapture {
		np.halfmoveClock = 0
	} else {
		np.halfmoveClock++
	}
	if us == types.Black {
		np.fullmoveNumber++
	}

	np.hash ^= zobrist.Castling(np.castling)
	if np.epSquare != types.SqNone {
		np.hash ^= zobrist.EpFile(np.epSquare.FileOf())
	}

	np.sideToMove = them
	np.hash ^= zobrist.SideToMove()

	np.checkers = np.computeCheckers()
	return np
}

// NullMove returns the position with only the side to move flipped (and
// any en-passant right cleared), or ok=false if the side to move is
// currently in check — a null move is illegal to apply while in check,
// since it would leave the king exposed with no intervening response.
func (p *Position) NullMove() (*Position, bool) {
	if p.IsInCheck() {
		return nil, false
	}
	np := p.Clone()
	if np.epSquare != types.SqNone {
		np.hash ^= zobrist.EpFile(np.epSquare.FileOf())
		np.epSquare = types.SqNone
	}
	np.sideToMove = np.sideToMove.Negate()
	np.hash ^= zobrist.SideToMove()
	np.checkers = np.computeCheckers()
	return np, true
}
