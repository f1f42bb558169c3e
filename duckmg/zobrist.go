package duckmg

import "math/rand"

// Zobrist keys per token and square.
var zobristToken [tokenCount][64]uint64

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed so keys are stable across runs
	rnd := rand.New(rand.NewSource(0xD0C4))

	for t := 0; t < tokenCount; t++ {
		for sq := 0; sq < 64; sq++ {
			zobristToken[t][sq] = rnd.Uint64()
		}
	}
}

// Hash computes the Zobrist key of the position. Every set bit of every mask
// contributes, so arbitrary patterns written through the fields hash too.
func (g *GameState) Hash() uint64 {
	var key uint64
	for _, t := range Tokens {
		mask := g.Bitboard(t)
		for mask != 0 {
			sq := popLSB(&mask)
			key ^= zobristToken[t][sq]
		}
	}
	return key
}
