package duckmg

import (
	"fmt"
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// ChessBoard converts the position to a dragontoothmg board with White to
// move. The duck has no dragontoothmg counterpart and is left out. Chess
// masks sharing a square cannot be represented and yield ErrOverlap.
func (g *GameState) ChessBoard() (dragontoothmg.Board, error) {
	if clash := (g.WRooks & g.WKing) | (g.WRooks & g.BKing) | (g.WKing & g.BKing); clash != 0 {
		sq := Square(bits.TrailingZeros64(clash))
		return dragontoothmg.Board{}, fmt.Errorf("chess board on %s: %w", sq, ErrOverlap)
	}
	fen := g.placement(false) + " w - - 0 1"
	return dragontoothmg.ParseFen(fen), nil
}
