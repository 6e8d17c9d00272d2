package movegen

import "github.com/corvidchess/corvid/position"

// Perft counts the leaf nodes of the full game tree to depth plies — the
// standard move-generator correctness check: any bug in pseudo-legal
// generation, the legality filter, or make/unmake shows up as a wrong
// leaf count at some depth.
func Perft(p *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range GeneratePseudoLegal(p) {
		if !IsLegal(p, m) {
			continue
		}
		nodes += Perft(p.MakeMove(m), depth-1)
	}
	return nodes
}

// PerftDivide returns, for each legal move at the root, the leaf count of
// the subtree rooted at that move — used to bisect a perft mismatch
// against a reference engine move by move.
func PerftDivide(p *position.Position, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth == 0 {
		return out
	}
	for _, m := range GeneratePseudoLegal(p) {
		if !IsLegal(p, m) {
			continue
		}
		out[m.String()] = Perft(p.MakeMove(m), depth-1)
	}
	return out
}
