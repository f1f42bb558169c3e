package duckmg

import "strings"

// FENTestBoard is what ToFEN returns after InitTestBoard on an empty state.
const FENTestBoard = "4k3/8/8/8/3*4/8/8/R3K3 w - - 0 1"

// ToFEN renders the position as duck-chess FEN. The container has no notion
// of side to move, castling or clocks, so those fields are always "w - - 0 1".
func (g *GameState) ToFEN() string {
	return g.placement(true) + " w - - 0 1"
}

// placement writes the board field of a FEN, optionally leaving the duck out.
func (g *GameState) placement(withDuck bool) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			t, ok := g.TokenAt(sq)
			if ok && t == Duck && !withDuck {
				// a chess piece may share the duck's square
				t, ok = g.chessTokenAt(sq)
			}
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(t.Symbol())
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func (g *GameState) chessTokenAt(sq Square) (Token, bool) {
	for _, t := range [...]Token{WhiteKing, BlackKing, WhiteRook} {
		if GetBit(g.Bitboard(t), sq) {
			return t, true
		}
	}
	return 0, false
}

// String draws the board with rank 8 on top and '.' for empty squares.
func (g *GameState) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			if t, ok := g.TokenAt(NewSquare(file, rank)); ok {
				sb.WriteByte(t.Symbol())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}
