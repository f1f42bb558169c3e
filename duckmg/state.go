package duckmg

import (
	"fmt"
	"math/bits"
)

// GameState holds the occupancy bitboards of a duck chess position.
//
// The fields are plain storage: nothing keeps the masks disjoint or limits
// the kings and the duck to a single bit. Writers that need those properties
// can check them with Validate.
//
// A GameState is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access themselves.
type GameState struct {
	WRooks uint64
	WKing  uint64
	BKing  uint64
	Duck   uint64
}

// NewGameState returns an empty board.
func NewGameState() *GameState { return &GameState{} }

// InitTestBoard overlays the fixed test position: white rook a1, white king
// e1, black king e8, duck d4. Bits already present are kept.
func (g *GameState) InitTestBoard() {
	SetBit(&g.WRooks, A1)
	SetBit(&g.WKing, E1)
	SetBit(&g.BKing, E8)
	SetBit(&g.Duck, D4)
}

// MoveDuck teleports the duck to sq, replacing whatever the duck mask held.
// An off-board square is rejected and leaves the state unchanged.
func (g *GameState) MoveDuck(sq Square) error {
	if !sq.Valid() {
		return fmt.Errorf("move duck to %d: %w", int(sq), ErrInvalidSquare)
	}
	g.Duck = 0
	SetBit(&g.Duck, sq)
	return nil
}

// Bitboard returns the mask stored for t.
func (g *GameState) Bitboard(t Token) uint64 {
	if p := g.mask(t); p != nil {
		return *p
	}
	return 0
}

// SetBitboard overwrites the mask stored for t. Unknown tokens are ignored.
func (g *GameState) SetBitboard(t Token, v uint64) {
	if p := g.mask(t); p != nil {
		*p = v
	}
}

func (g *GameState) mask(t Token) *uint64 {
	switch t {
	case WhiteRook:
		return &g.WRooks
	case WhiteKing:
		return &g.WKing
	case BlackKing:
		return &g.BKing
	case Duck:
		return &g.Duck
	default:
		return nil
	}
}

// Occupancy returns every square claimed by any token.
func (g *GameState) Occupancy() uint64 { return g.WRooks | g.WKing | g.BKing | g.Duck }

// IsEmpty reports whether no token occupies sq. Off-board squares are never empty.
func (g *GameState) IsEmpty(sq Square) bool {
	return sq.Valid() && !GetBit(g.Occupancy(), sq)
}

// TokenAt returns the token on sq. With overlapping masks the duck wins,
// then the kings, then the rooks.
func (g *GameState) TokenAt(sq Square) (Token, bool) {
	if !sq.Valid() {
		return 0, false
	}
	for _, t := range [...]Token{Duck, WhiteKing, BlackKing, WhiteRook} {
		if GetBit(g.Bitboard(t), sq) {
			return t, true
		}
	}
	return 0, false
}

// Validate checks the invariants a position built from real moves would have:
// kings and duck hold at most one bit and no square is claimed twice.
// The first violation found is returned.
func (g *GameState) Validate() error {
	for _, t := range Tokens {
		if t.Single() && PopCount(g.Bitboard(t)) > 1 {
			return fmt.Errorf("%s: %w", t, ErrNotSingleton)
		}
	}
	var seen uint64
	for _, t := range Tokens {
		m := g.Bitboard(t)
		if clash := seen & m; clash != 0 {
			sq := Square(bits.TrailingZeros64(clash))
			return fmt.Errorf("%s on %s: %w", t, sq, ErrOverlap)
		}
		seen |= m
	}
	return nil
}

// ==========================
// Bitboard helpers
// ==========================

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// SetBit sets sq in *mask.
func SetBit(mask *uint64, sq Square) { *mask |= bb(sq) }

// GetBit reports whether sq is set in mask.
func GetBit(mask uint64, sq Square) bool { return mask&bb(sq) != 0 }

// PopBit clears sq in *mask.
func PopBit(mask *uint64, sq Square) { *mask &^= bb(sq) }

// PopCount returns the number of set bits.
func PopCount(mask uint64) int { return bits.OnesCount64(mask) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) Square {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(idx)
}

// SquaresOf lists the set squares of mask in ascending order.
func SquaresOf(mask uint64) []Square {
	out := make([]Square, 0, PopCount(mask))
	for mask != 0 {
		out = append(out, popLSB(&mask))
	}
	return out
}
