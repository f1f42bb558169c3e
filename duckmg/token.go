package duckmg

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Token identifies one of the four occupancy masks held by a GameState.
type Token uint8

const (
	WhiteRook Token = iota
	WhiteKing
	BlackKing
	Duck

	tokenCount = 4
)

// Tokens lists every token in storage order.
var Tokens = [tokenCount]Token{WhiteRook, WhiteKing, BlackKing, Duck}

// Host-facing field names, kept stable for existing scripts.
var tokenNames = [tokenCount]string{
	WhiteRook: "w_rooks",
	WhiteKing: "w_king",
	BlackKing: "b_king",
	Duck:      "duck",
}

var tokenByName = map[string]Token{
	"w_rooks": WhiteRook,
	"w_king":  WhiteKing,
	"b_king":  BlackKing,
	"duck":    Duck,
}

// String returns the host field name of the token.
func (t Token) String() string {
	if int(t) >= tokenCount {
		return fmt.Sprintf("Token(%d)", uint8(t))
	}
	return tokenNames[t]
}

// Symbol returns the FEN character for the token. The duck uses '*'.
func (t Token) Symbol() byte {
	switch t {
	case WhiteRook:
		return 'R'
	case WhiteKing:
		return 'K'
	case BlackKing:
		return 'k'
	case Duck:
		return '*'
	default:
		return '?'
	}
}

// Single reports whether the token is conceptually a lone piece.
func (t Token) Single() bool { return t != WhiteRook }

// TokenByName resolves a host field name such as "duck".
func TokenByName(name string) (Token, error) {
	t, ok := tokenByName[name]
	if !ok {
		return 0, fmt.Errorf("%q (fields: %s): %w", name, strings.Join(TokenNames(), ", "), ErrUnknownToken)
	}
	return t, nil
}

// TokenNames returns the host field names in lexical order.
func TokenNames() []string {
	names := maps.Keys(tokenByName)
	slices.Sort(names)
	return names
}
