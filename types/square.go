// Package types defines the small value types shared by every other
// package in Corvid: squares, files, ranks, colors, piece types, colored
// pieces, directions, bitboards and the packed Move value.
package types

import "fmt"

// Square is a board square in [0,64), numbered rank*8+file (LERF mapping:
// SqA1 = 0, SqB1 = 1, ..., SqH8 = 63).
type Square int8

// Square constants for the 64 board squares, plus SqNone as a sentinel.
const (
	SqA1 Square = iota
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA8
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqLength
	SqNone = SqLength
)

// File is a board file in [0,8), FileA = 0.
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	FileLength
)

// Rank is a board rank in [0,8), Rank1 = 0 (White's back rank).
type Rank int8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	RankLength
)

// SquareOf builds the square at the given file and rank.
func SquareOf(f File, r Rank) Square {
	return Square(int(r)*8 + int(f))
}

// FileOf returns the file of the square.
func (sq Square) FileOf() File {
	return File(sq & 7)
}

// RankOf returns the rank of the square.
func (sq Square) RankOf() Rank {
	return Rank(sq >> 3)
}

// IsValid reports whether sq is a real board square.
func (sq Square) IsValid() bool {
	return sq >= SqA1 && sq < SqLength
}

// To returns the square one step from sq in the given direction, which may
// be an invalid square if sq is on the relevant edge — callers that care
// must check IsValid or use the distance-limited attack tables instead.
func (sq Square) To(d Direction) Square {
	return sq + Square(d)
}

var fileChar = "abcdefgh"
var rankChar = "12345678"

// String returns the algebraic form of the square, e.g. "e4".
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", fileChar[sq.FileOf()], rankChar[sq.RankOf()])
}

// SquareFromString parses an algebraic square such as "e4". ok is false if
// s is not a well-formed square.
func SquareFromString(s string) (sq Square, ok bool) {
	if len(s) != 2 {
		return SqNone, false
	}
	f := s[0]
	r := s[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return SqNone, false
	}
	return SquareOf(File(f-'a'), Rank(r-'1')), true
}

// String returns the algebraic file letter.
func (f File) String() string {
	return string(fileChar[f])
}

// String returns the algebraic rank digit.
func (r Rank) String() string {
	return string(rankChar[r])
}
