// Package luahost exposes duckmg.GameState to Lua scripts.
//
// Scripts see a global GameState constructor. Instances carry the methods
// init_test_board and move_duck and the read/write fields w_rooks, w_king,
// b_king and duck:
//
//	local g = GameState()
//	g:init_test_board()
//	g:move_duck(35)
//	print(g:hex("duck"))   --> 0x0000000800000000
//	g.w_rooks = "0x8100000000000081"
//
// Lua numbers are doubles, so field reads are exact only up to 2^53 and for
// single-bit masks. Writes accept strings to inject any 64-bit pattern, and
// hex returns the exact value.
package luahost

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Shopify/go-lua"

	"duck-engine/duckmg"
)

const gameStateTypeName = "GameState"

// NewState returns an interpreter with the standard libraries, the GameState
// binding, and a print function writing to w.
func NewState(w io.Writer) *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	Register(state)
	registerPrint(state, w)
	return state
}

// Register installs the GameState type and its global constructor.
func Register(state *lua.State) {
	registerGameStateType(state)
	registerGameStateConstructor(state)
}

func registerGameStateType(state *lua.State) {
	lua.NewMetaTable(state, gameStateTypeName)
	lua.SetFunctions(state, gameStateMetaMethods, 0)
	state.Pop(1)
}

// The constructor table is also callable, so GameState() and GameState.new()
// both work.
func registerGameStateConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, gameStateConstructor, 0)
	state.NewTable()
	state.PushGoFunction(gameStateCall)
	state.SetField(-2, "__call")
	state.SetMetaTable(-2)
	state.SetGlobal(gameStateTypeName)
}

func registerPrint(state *lua.State, w io.Writer) {
	state.PushGoFunction(func(state *lua.State) int {
		n := state.Top()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			s, ok := lua.ToStringMeta(state, i)
			state.Pop(1)
			if !ok {
				lua.Errorf(state, "'tostring' must return a string to 'print'")
				return 0
			}
			parts = append(parts, s)
		}
		fmt.Fprintln(w, strings.Join(parts, "\t"))
		return 0
	})
	state.SetGlobal("print")
}

var gameStateConstructor = []lua.RegistryFunction{
	{Name: "new", Function: gameStateNew},
}

var gameStateMetaMethods = []lua.RegistryFunction{
	{Name: "__index", Function: gameStateIndex},
	{Name: "__newindex", Function: gameStateNewIndex},
	{Name: "__tostring", Function: gameStateToString},
}

var gameStateMethods = map[string]lua.Function{
	"init_test_board": gameStateInitTestBoard,
	"move_duck":       gameStateMoveDuck,
	"hex":             gameStateHex,
	"fen":             gameStateFEN,
	"hash":            gameStateHash,
	"squares":         gameStateSquares,
	"validate":        gameStateValidate,
	"chess_fen":       gameStateChessFEN,
}

func gameStateNew(state *lua.State) int {
	PushGameState(state, duckmg.NewGameState())
	return 1
}

// gameStateCall backs GameState(); argument 1 is the constructor table.
func gameStateCall(state *lua.State) int {
	return gameStateNew(state)
}

// PushGameState pushes g as a GameState userdata.
func PushGameState(state *lua.State, g *duckmg.GameState) {
	state.PushUserData(g)
	lua.SetMetaTableNamed(state, gameStateTypeName)
}

// ToGameState returns the GameState at index, if the value there is one.
func ToGameState(state *lua.State, index int) (*duckmg.GameState, bool) {
	if state.TypeOf(index) != lua.TypeUserData {
		return nil, false
	}
	g, ok := state.ToUserData(index).(*duckmg.GameState)
	return g, ok && g != nil
}

// CheckGameState returns the GameState argument at index or raises a Lua error.
func CheckGameState(state *lua.State, index int) *duckmg.GameState {
	ud := lua.CheckUserData(state, index, gameStateTypeName)
	if g, ok := ud.(*duckmg.GameState); ok && g != nil {
		return g
	}
	lua.ArgumentError(state, index, "GameState expected")
	return nil
}

func gameStateIndex(state *lua.State) int {
	g := CheckGameState(state, 1)
	if state.TypeOf(2) != lua.TypeString {
		state.PushNil()
		return 1
	}
	key, _ := state.ToString(2)
	if fn, ok := gameStateMethods[key]; ok {
		state.PushGoFunction(fn)
		return 1
	}
	t, err := duckmg.TokenByName(key)
	if err != nil {
		state.PushNil()
		return 1
	}
	state.PushNumber(float64(g.Bitboard(t)))
	return 1
}

func gameStateNewIndex(state *lua.State) int {
	g := CheckGameState(state, 1)
	key := lua.CheckString(state, 2)
	t, err := duckmg.TokenByName(key)
	if err != nil {
		// go-lua's Errorf understands only %s %c %d %f %p
		lua.Errorf(state, "%s", fmt.Sprintf("GameState has no field %s", err))
		return 0
	}
	g.SetBitboard(t, checkBitboard(state, 3))
	return 0
}

func gameStateToString(state *lua.State) int {
	g := CheckGameState(state, 1)
	state.PushString(fmt.Sprintf("GameState(w_rooks=0x%016x, w_king=0x%016x, b_king=0x%016x, duck=0x%016x)",
		g.WRooks, g.WKing, g.BKing, g.Duck))
	return 1
}

func gameStateInitTestBoard(state *lua.State) int {
	CheckGameState(state, 1).InitTestBoard()
	return 0
}

func gameStateMoveDuck(state *lua.State) int {
	g := CheckGameState(state, 1)
	sq := checkSquare(state, 2)
	if err := g.MoveDuck(sq); err != nil {
		lua.ArgumentError(state, 2, err.Error())
	}
	return 0
}

func gameStateHex(state *lua.State) int {
	g := CheckGameState(state, 1)
	t := checkToken(state, 2)
	state.PushString(fmt.Sprintf("0x%016x", g.Bitboard(t)))
	return 1
}

func gameStateFEN(state *lua.State) int {
	state.PushString(CheckGameState(state, 1).ToFEN())
	return 1
}

func gameStateHash(state *lua.State) int {
	state.PushString(fmt.Sprintf("%016x", CheckGameState(state, 1).Hash()))
	return 1
}

func gameStateSquares(state *lua.State) int {
	g := CheckGameState(state, 1)
	squares := duckmg.SquaresOf(g.Bitboard(checkToken(state, 2)))
	state.CreateTable(len(squares), 0)
	for i, sq := range squares {
		state.PushString(sq.String())
		state.RawSetInt(-2, i+1)
	}
	return 1
}

func gameStateValidate(state *lua.State) int {
	if err := CheckGameState(state, 1).Validate(); err != nil {
		state.PushString(err.Error())
		return 1
	}
	state.PushNil()
	return 1
}

// gameStateChessFEN renders the chess pieces through dragontoothmg, duck omitted.
func gameStateChessFEN(state *lua.State) int {
	board, err := CheckGameState(state, 1).ChessBoard()
	if err != nil {
		lua.Errorf(state, "%s", err.Error())
		return 0
	}
	state.PushString(board.ToFen())
	return 1
}

// checkSquare reads an integral square index. Fractions are rejected rather
// than truncated; range is left to MoveDuck.
func checkSquare(state *lua.State, index int) duckmg.Square {
	f := lua.CheckNumber(state, index)
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		lua.ArgumentError(state, index, fmt.Sprintf("square %v is not an integer", f))
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		lua.ArgumentError(state, index, fmt.Sprintf("square %v: %v", f, duckmg.ErrInvalidSquare))
	}
	return duckmg.Square(int(f))
}

func checkToken(state *lua.State, index int) duckmg.Token {
	t, err := duckmg.TokenByName(lua.CheckString(state, index))
	if err != nil {
		lua.ArgumentError(state, index, err.Error())
	}
	return t
}

// checkBitboard reads a 64-bit mask from a number or from a string in any Go
// integer syntax ("0x8000000000000000", "0b101", "1_000").
func checkBitboard(state *lua.State, index int) uint64 {
	switch state.TypeOf(index) {
	case lua.TypeNumber:
		f, _ := state.ToNumber(index)
		v, err := bitboardFromNumber(f)
		if err != nil {
			lua.ArgumentError(state, index, err.Error())
		}
		return v
	case lua.TypeString:
		s, _ := state.ToString(index)
		v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
		if err != nil {
			lua.ArgumentError(state, index, fmt.Sprintf("invalid bitboard %q", s))
		}
		return v
	default:
		lua.ArgumentError(state, index, "bitboard must be a number or a string")
		return 0
	}
}

const twoTo64 = float64(1 << 64)

func bitboardFromNumber(f float64) (uint64, error) {
	if f != math.Trunc(f) || f < 0 || f >= twoTo64 {
		return 0, fmt.Errorf("bitboard %v is not an integer in [0, 2^64)", f)
	}
	return uint64(f), nil
}
