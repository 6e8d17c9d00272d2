package types

// PieceType is the piece kind without color: Pawn..King, indexed 0..5 so
// it can address piece-keyed arrays directly (attack tables, PSQT,
// history heuristic, MVV/LVA indices).
type PieceType int8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	PtLength
	PtNone = PtLength
)

var pieceTypeChar = "pnbrqk"

// String returns the lowercase letter for the piece type ("p" for Pawn),
// or "" for a value outside Pawn..King.
func (pt PieceType) String() string {
	if pt < Pawn || pt >= PtLength {
		return ""
	}
	return string(pieceTypeChar[pt])
}

// pieceTypeValue is the material value used both by evaluation and by the
// MVV-LVA ordering table in package moveorder.
var pieceTypeValue = [PtLength]int{
	Pawn:   100,
	Knight: 320,
	Bishop: 330,
	Rook:   500,
	Queen:  900,
	King:   20000,
}

// Value returns the material value of one piece of this type.
func (pt PieceType) Value() int {
	return pieceTypeValue[pt]
}

// phaseWeight is the per-piece contribution to the tapered-evaluation
// phase counter: pawns contribute nothing, minor pieces 1, rooks 2,
// queens 4. TotalPhase is the starting position's total.
var phaseWeight = [PtLength]int{
	Pawn:   0,
	Knight: 1,
	Bishop: 1,
	Rook:   2,
	Queen:  4,
	King:   0,
}

// PhaseWeight returns this piece type's contribution to the game-phase
// counter.
func (pt PieceType) PhaseWeight() int {
	return phaseWeight[pt]
}

// TotalPhase is the phase value of the starting position: 4 knights + 4
// bishops (1 each) + 4 rooks (2 each) + 2 queens (4 each) = 24.
const TotalPhase = 4*1 + 4*1 + 4*2 + 2*4

// Piece is a colored piece: color in bit 3, PieceType in bits 0-2. Zero
// value is PieceNone.
type Piece int8

const PieceNone Piece = 0

// MakePiece packs a color and piece type into a Piece. PieceType is offset
// by one on the wire so White Pawn (color 0, type 0) never collides with
// the PieceNone zero value.
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(int(c)<<3 | (int(pt) + 1))
}

// ColorOf returns the color of a colored piece. Undefined for PieceNone.
func (p Piece) ColorOf() Color {
	return Color(p >> 3)
}

// TypeOf returns the piece type of a colored piece. Undefined for
// PieceNone.
func (p Piece) TypeOf() PieceType {
	return PieceType(p&7) - 1
}

// IsValid reports whether p denotes an actual piece (not PieceNone).
func (p Piece) IsValid() bool {
	return p != PieceNone && p&7 != 0
}

// pieceChar is indexed directly by the Piece value (color<<3 | type+1):
// slots 0, 7 and 8 are unused packing gaps.
var pieceChar = "-PNBRQK--pnbrqk-"

// String returns the FEN piece letter: uppercase for White, lowercase for
// Black, "-" for PieceNone.
func (p Piece) String() string {
	if !p.IsValid() {
		return "-"
	}
	return string(pieceChar[p])
}

// PieceFromChar parses a FEN piece letter into a colored Piece.
func PieceFromChar(c byte) (Piece, bool) {
	for i := 1; i < len(pieceChar); i++ {
		if pieceChar[i] == c && pieceChar[i] != '-' {
			return Piece(i), true
		}
	}
	return PieceNone, false
}
