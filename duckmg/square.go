package duckmg

// Square represents a board position (0-63), rank-major: 0 = a1, 7 = h1, 63 = h8.
type Square int

// NoSquare marks the absence of a square.
const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare builds a square from a zero-based file and rank. Out-of-range
// coordinates give NoSquare.
func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

// Valid reports whether sq addresses one of the 64 board squares.
func (sq Square) Valid() bool { return sq >= A1 && sq <= H8 }

// File returns the zero-based file, 0 = a.
func (sq Square) File() int { return int(sq) % 8 }

// Rank returns the zero-based rank, 0 = rank 1.
func (sq Square) Rank() int { return int(sq) / 8 }

// String returns the algebraic name ("e4"), or "-" for squares off the board.
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}
