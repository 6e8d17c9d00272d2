// Package movegen generates chess moves from a position: pseudo-legal
// generation, a make-move-and-check-in-check legality filter, and a
// destination-mask iterator that drains the legal moves in stages (for
// example captures, then en-passants, then quiets). Search does not use
// the iterator: it scores and sorts the full legal-move list once with
// package moveorder.
package movegen

import (
	"github.com/corvidchess/corvid/attacks"
	"github.com/corvidchess/corvid/moveslice"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/types"
)

func init() {
	position.RegisterMoveGenerator(Generate)
}

// Generate returns every legal move in p.
func Generate(p *position.Position) moveslice.MoveSlice {
	pseudo := GeneratePseudoLegal(p)
	legal := make(moveslice.MoveSlice, 0, len(pseudo))
	for _, m := range pseudo {
		if IsLegal(p, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// GeneratePseudoLegal returns every pseudo-legal move: moves that obey
// piece movement rules while disregarding whether the mover's own king
// ends up attacked.
func GeneratePseudoLegal(p *position.Position) moveslice.MoveSlice {
	moves := make(moveslice.MoveSlice, 0, 48)
	generatePawnMoves(p, &moves)
	generateLeaperMoves(p, types.Knight, &moves)
	generateSliderMoves(p, types.Bishop, &moves)
	generateSliderMoves(p, types.Rook, &moves)
	generateSliderMoves(p, types.Queen, &moves)
	generateLeaperMoves(p, types.King, &moves)
	generateCastling(p, &moves)
	return moves
}

// IsLegal applies m on a copy of p and reports whether the side that just
// moved left its own king attacked — simpler and cheaper than pin-aware
// generation.
func IsLegal(p *position.Position, m types.Move) bool {
	us := p.SideToMove()
	them := us.Negate()
	np := p.MakeMove(m)
	return !np.IsAttackedBy(np.KingSquare(us), them)
}

func generateLeaperMoves(p *position.Position, pt types.PieceType, out *moveslice.MoveSlice) {
	us := p.SideToMove()
	ownPieces := p.ColorBb(us)
	bb := p.PiecesOf(pt, us)
	for bb != types.BbZero {
		from := bb.PopLsb()
		targets := attacks.Of(pt, from, p.Occupied()) &^ ownPieces
		for targets != types.BbZero {
			to := targets.PopLsb()
			*out = append(*out, types.NewMove(from, to))
		}
	}
}

func generateSliderMoves(p *position.Position, pt types.PieceType, out *moveslice.MoveSlice) {
	us := p.SideToMove()
	ownPieces := p.ColorBb(us)
	occ := p.Occupied()
	bb := p.PiecesOf(pt, us)
	for bb != types.BbZero {
		from := bb.PopLsb()
		targets := attacks.Of(pt, from, occ) &^ ownPieces
		for targets != types.BbZero {
			to := targets.PopLsb()
			*out = append(*out, types.NewMove(from, to))
		}
	}
}

var promotionTypes = [4]types.PieceType{types.Queen, types.Knight, types.Rook, types.Bishop}

func generatePawnMoves(p *position.Position, out *moveslice.MoveSlice) {
	us := p.SideToMove()
	them := us.Negate()
	ownPawns := p.PiecesOf(types.Pawn, us)
	enemy := p.ColorBb(them)
	occ := p.Occupied()

	push, doubleRank, promoRank := types.North, types.Rank2, types.Rank8Bb
	if us == types.Black {
		push, doubleRank, promoRank = types.South, types.Rank7, types.Rank1Bb
	}

	addPawnMove := func(from, to types.Square) {
		if to.SqBb()&promoRank != 0 {
			for _, pt := range promotionTypes {
				*out = append(*out, types.NewPromotionMove(from, to, pt))
			}
			return
		}
		*out = append(*out, types.NewMove(from, to))
	}

	bb := ownPawns
	for bb != types.BbZero {
		from := bb.PopLsb()

		to := from.To(push)
		if to.IsValid() && !occ.Has(to) {
			addPawnMove(from, to)
			if from.RankOf() == doubleRank {
				to2 := to.To(push)
				if to2.IsValid() && !occ.Has(to2) {
					*out = append(*out, types.NewMove(from, to2))
				}
			}
		}

		captures := attacks.Pawn(us, from) & enemy
		for captures != types.BbZero {
			addPawnMove(from, captures.PopLsb())
		}

		if ep := p.EpSquare(); ep != types.SqNone {
			if attacks.Pawn(us, from).Has(ep) {
				*out = append(*out, types.NewMove(from, ep))
			}
		}
	}
}

type castleSpec struct {
	color           types.Color
	right           types.CastlingRights
	kingFrom        types.Square
	kingTo          types.Square
	travelSquares   types.Bitboard
	kingPassSquares [2]types.Square // squares that must not be attacked: start and the square passed over
}

var castleSpecs = []castleSpec{
	{types.White, types.CastleWhiteKS, types.SqE1, types.SqG1, types.SqF1.SqBb() | types.SqG1.SqBb(), [2]types.Square{types.SqE1, types.SqF1}},
	{types.White, types.CastleWhiteQS, types.SqE1, types.SqC1, types.SqB1.SqBb() | types.SqC1.SqBb() | types.SqD1.SqBb(), [2]types.Square{types.SqE1, types.SqD1}},
	{types.Black, types.CastleBlackKS, types.SqE8, types.SqG8, types.SqF8.SqBb() | types.SqG8.SqBb(), [2]types.Square{types.SqE8, types.SqF8}},
	{types.Black, types.CastleBlackQS, types.SqE8, types.SqC8, types.SqB8.SqBb() | types.SqC8.SqBb() | types.SqD8.SqBb(), [2]types.Square{types.SqE8, types.SqD8}},
}

func generateCastling(p *position.Position, out *moveslice.MoveSlice) {
	us := p.SideToMove()
	them := us.Negate()
	if p.IsInCheck() {
		return
	}
	occ := p.Occupied()
	for _, cs := range castleSpecs {
		if cs.color != us {
			continue
		}
		if !p.Castling().Has(cs.right) {
			continue
		}
		if occ&cs.travelSquares != types.BbZero {
			continue
		}
		if p.IsAttackedBy(cs.kingPassSquares[0], them) || p.IsAttackedBy(cs.kingPassSquares[1], them) || p.IsAttackedBy(cs.kingTo, them) {
			continue
		}
		*out = append(*out, types.NewMove(cs.kingFrom, cs.kingTo))
	}
}
