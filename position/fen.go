package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corvidchess/corvid/types"
	"github.com/corvidchess/corvid/zobrist"
)

// FromFEN parses a Forsyth-Edwards string into a Position, computing the
// Zobrist hash and checkers cache from scratch.
func FromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("position: FEN %q: need at least 4 fields, got %d", fen, len(fields))
	}

	p := &Position{epSquare: types.SqNone}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("position: FEN %q: board field must have 8 ranks, got %d", fen, len(ranks))
	}
	for i, rankStr := range ranks {
		r := types.Rank8 - types.Rank(i)
		f := types.FileA
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				f += types.File(ch - '0')
				continue
			}
			if f >= types.FileLength {
				return nil, fmt.Errorf("position: FEN %q: rank %d overflows", fen, i)
			}
			piece, ok := types.PieceFromChar(byte(ch))
			if !ok {
				return nil, fmt.Errorf("position: FEN %q: bad piece char %q", fen, ch)
			}
			sq := types.SquareOf(f, r)
			p.placePiece(piece.TypeOf(), piece.ColorOf(), sq)
			f++
		}
		if f != types.FileLength {
			return nil, fmt.Errorf("position: FEN %q: rank %d has wrong length", fen, i)
		}
	}

	switch fields[1] {
	case "w":
		p.sideToMove = types.White
	case "b":
		p.sideToMove = types.Black
		p.hash ^= zobrist.SideToMove()
	default:
		return nil, fmt.Errorf("position: FEN %q: bad side to move %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.castling |= types.CastleWhiteKS
			case 'Q':
				p.castling |= types.CastleWhiteQS
			case 'k':
				p.castling |= types.CastleBlackKS
			case 'q':
				p.castling |= types.CastleBlackQS
			default:
				return nil, fmt.Errorf("position: FEN %q: bad castling char %q", fen, ch)
			}
		}
	}
	p.hash ^= zobrist.Castling(p.castling)

	if fields[3] != "-" {
		sq, ok := types.SquareFromString(fields[3])
		if !ok {
			return nil, fmt.Errorf("position: FEN %q: bad en-passant square %q", fen, fields[3])
		}
		p.epSquare = sq
		p.hash ^= zobrist.EpFile(sq.FileOf())
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("position: FEN %q: bad half-move clock: %w", fen, err)
		}
		p.halfmoveClock = n
	}
	p.fullmoveNumber = 1
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("position: FEN %q: bad full-move number: %w", fen, err)
		}
		p.fullmoveNumber = n
	}

	p.checkers = p.computeCheckers()
	return p, nil
}

// FEN renders the position as a Forsyth-Edwards string.
func (p *Position) FEN() string {
	var sb strings.Builder
	for r := types.Rank8; r >= types.Rank1; r-- {
		empty := 0
		for f := types.FileA; f < types.FileLength; f++ {
			piece := p.PieceOn(types.SquareOf(f, r))
			if piece == types.PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != types.Rank1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.sideToMove.String())

	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.epSquare.String())

	fmt.Fprintf(&sb, " %d %d", p.halfmoveClock, p.fullmoveNumber)
	return sb.String()
}
