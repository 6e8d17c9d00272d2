package types

// Move is a packed chess move: 6 bits source square, 6 bits destination
// square, 2 bits promotion piece (Knight/Bishop/Rook/Queen), 1 bit
// promotion flag. Two moves are equal iff their bit patterns are equal.
type Move uint16

const (
	moveFromShift  = 0
	moveToShift    = 6
	movePromShift  = 12
	movePromFlag   = 1 << 14
	moveFromMask   = 0x3F
	moveToMask     = 0x3F
	movePromMask   = 0x3
	MoveNone  Move = 0
)

// promoPieces maps the 2-bit promotion code to a piece type.
var promoPieces = [4]PieceType{Knight, Bishop, Rook, Queen}
var promoCode = map[PieceType]uint16{Knight: 0, Bishop: 1, Rook: 2, Queen: 3}

// NewMove builds a non-promoting move.
func NewMove(from, to Square) Move {
	return Move(uint16(from)<<moveFromShift | uint16(to)<<moveToShift)
}

// NewPromotionMove builds a promoting move.
func NewPromotionMove(from, to Square, promo PieceType) Move {
	return Move(uint16(from)<<moveFromShift | uint16(to)<<moveToShift |
		promoCode[promo]<<movePromShift | movePromFlag)
}

// From returns the source square.
func (m Move) From() Square {
	return Square((m >> moveFromShift) & moveFromMask)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> moveToShift) & moveToMask)
}

// IsPromotion reports whether m carries a promotion.
func (m Move) IsPromotion() bool {
	return m&movePromFlag != 0
}

// PromotionType returns the promotion piece type; only meaningful when
// IsPromotion is true.
func (m Move) PromotionType() PieceType {
	return promoPieces[(m>>movePromShift)&movePromMask]
}

// String renders m in UCI coordinate notation: "e2e4", "a7a8q", or "0000"
// for the null move.
func (m Move) String() string {
	if m == MoveNone {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += m.PromotionType().String()
	}
	return s
}

// MoveFromUCI parses a UCI move string such as "e2e4" or "a7a8q". ok is
// false for anything malformed; "0000" parses to MoveNone, ok=true.
func MoveFromUCI(s string) (mv Move, ok bool) {
	if s == "0000" {
		return MoveNone, true
	}
	if len(s) != 4 && len(s) != 5 {
		return MoveNone, false
	}
	from, ok1 := SquareFromString(s[0:2])
	to, ok2 := SquareFromString(s[2:4])
	if !ok1 || !ok2 {
		return MoveNone, false
	}
	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return MoveNone, false
		}
		return NewPromotionMove(from, to, promo), true
	}
	return NewMove(from, to), true
}
