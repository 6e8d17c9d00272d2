package testsuite

import (
	"regexp"
	"strings"

	"github.com/corvidchess/corvid/movegen"
	"github.com/corvidchess/corvid/position"
	"github.com/corvidchess/corvid/types"
)

// sanPattern splits a (decoration-stripped) SAN move into its piece
// letter, optional file/rank disambiguator, capture marker, destination
// square and promotion letter. Castling is handled separately since it
// doesn't fit this shape.
var sanPattern = regexp.MustCompile(`^([NBRQK]?)([a-h]?)([1-8]?)(x?)([a-h][1-8])(?:=?([NBRQ]))?$`)

// pieceTypeFromSAN resolves a SAN piece letter, defaulting to Pawn for an
// empty letter since pawn moves carry none.
func pieceTypeFromSAN(letter string) types.PieceType {
	switch letter {
	case "N":
		return types.Knight
	case "B":
		return types.Bishop
	case "R":
		return types.Rook
	case "Q":
		return types.Queen
	case "K":
		return types.King
	default:
		return types.Pawn
	}
}

// resolveSAN finds the single legal move in p matching the EPD-supplied
// SAN text san, stripping the "!"/"?" annotation suffixes EPD "bm"/"am"
// operands sometimes carry. ok is false when san is malformed or matches
// zero or more than one legal move (an ambiguous EPD entry is unusable).
func resolveSAN(p *position.Position, san string) (types.Move, bool) {
	san = strings.TrimRight(san, "!?+#")

	switch san {
	case "O-O", "0-0":
		return castlingMove(p, false)
	case "O-O-O", "0-0-0":
		return castlingMove(p, true)
	}

	parts := sanPattern.FindStringSubmatch(san)
	if parts == nil {
		return types.MoveNone, false
	}
	pieceLetter, disambigFile, disambigRank, _, dest, promoLetter := parts[1], parts[2], parts[3], parts[4], parts[5], parts[6]

	destSq, ok := types.SquareFromString(dest)
	if !ok {
		return types.MoveNone, false
	}
	pt := pieceTypeFromSAN(pieceLetter)

	var wantPromo types.PieceType
	wantsPromo := promoLetter != ""
	if wantsPromo {
		wantPromo = pieceTypeFromSAN(promoLetter)
	}

	var match types.Move
	found := 0
	for _, m := range movegen.Generate(p) {
		if m.To() != destSq {
			continue
		}
		if p.PieceOn(m.From()).TypeOf() != pt {
			continue
		}
		if disambigFile != "" && m.From().FileOf() != types.File(disambigFile[0]-'a') {
			continue
		}
		if disambigRank != "" && m.From().RankOf() != types.Rank(disambigRank[0]-'1') {
			continue
		}
		if wantsPromo != m.IsPromotion() {
			continue
		}
		if wantsPromo && m.PromotionType() != wantPromo {
			continue
		}
		match = m
		found++
	}
	if found != 1 {
		return types.MoveNone, false
	}
	return match, true
}

// castlingMove finds the king move matching queenside/kingside castling
// for the side to move.
func castlingMove(p *position.Position, queenside bool) (types.Move, bool) {
	king := p.KingSquare(p.SideToMove())
	var dest types.Square
	switch {
	case p.SideToMove() == types.White && !queenside:
		dest = types.SqG1
	case p.SideToMove() == types.White && queenside:
		dest = types.SqC1
	case p.SideToMove() == types.Black && !queenside:
		dest = types.SqG8
	default:
		dest = types.SqC8
	}
	for _, m := range movegen.Generate(p) {
		if m.From() == king && m.To() == dest {
			return m, true
		}
	}
	return types.MoveNone, false
}
