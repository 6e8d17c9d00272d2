package attacks

import "github.com/corvidchess/corvid/types"

// magicSeed fixes the magic-number search's random source so that table
// initialization is fully deterministic across runs and platforms.
const magicSeed uint64 = 0x9E3779B97F4A7C15

// xorshift64 is a minimal, fast, deterministic PRNG. Not cryptographic —
// it only needs to produce sparse 64-bit candidates for the magic search.
type xorshift64 struct{ state uint64 }

func newXorshift64(seed uint64) *xorshift64 {
	if seed == 0 {
		seed = 1
	}
	return &xorshift64{state: seed}
}

func (x *xorshift64) next() uint64 {
	x.state ^= x.state << 13
	x.state ^= x.state >> 7
	x.state ^= x.state << 17
	return x.state
}

// sparseRandom draws a candidate magic number biased toward having few
// set bits, which empirically finds valid magics faster: the logical AND
// of three independent xorshift64 draws.
func (x *xorshift64) sparseRandom() uint64 {
	return x.next() & x.next() & x.next()
}

// initMagics fills magics and the shared flat attack table for one piece
// (rook or bishop), iterating every square and searching for a valid
// magic multiplier: enumerate every blocker subset via Carry-Rippler,
// draw sparse random candidates, reject any whose top byte has fewer
// than six set bits, and accept the first candidate under which every
// occupancy-to-index collision agrees on the attack set.
func initMagics(dirs [4]types.Direction, magics *[types.SqLength]magic, table *[]types.Bitboard) {
	*table = (*table)[:0]
	rng := newXorshift64(magicSeed)
	offset := 0

	for sq := types.SqA1; sq < types.SqLength; sq++ {
		mask := relevantMask(sq, dirs)
		bits := mask.PopCount()
		size := 1 << bits
		shift := uint(64 - bits)

		occupancies := subsets(mask)
		reference := make([]types.Bitboard, len(occupancies))
		for i, occ := range occupancies {
			reference[i] = slidingAttack(sq, dirs, occ)
		}

		number, slice := findMagic(mask, occupancies, reference, shift, size, rng)

		magics[sq] = magic{mask: mask, number: number, shift: shift, offset: offset, table: table}
		*table = append(*table, slice...)
		offset += size
	}
}

// findMagic loops the candidate search forever — a valid magic is
// reliably found within microseconds, so no bound is needed.
func findMagic(mask types.Bitboard, occupancies, reference []types.Bitboard, shift uint, size int, rng *xorshift64) (uint64, []types.Bitboard) {
	used := make([]bool, size)
	slice := make([]types.Bitboard, size)

	for {
		candidate := rng.sparseRandom()
		if types.Bitboard(uint64(mask)*candidate>>56).PopCount() < 6 {
			continue
		}

		for i := range used {
			used[i] = false
		}
		ok := true
		for i, occ := range occupancies {
			idx := (uint64(occ) * candidate) >> shift
			if used[idx] {
				if slice[idx] != reference[i] {
					ok = false
					break
				}
				continue
			}
			used[idx] = true
			slice[idx] = reference[i]
		}
		if ok {
			result := make([]types.Bitboard, size)
			copy(result, slice)
			return candidate, result
		}
	}
}
