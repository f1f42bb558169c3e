package luahost

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"duck-engine/duckmg"
)

func runLua(t *testing.T, src string) (*duckmg.GameState, string) {
	t.Helper()
	var out bytes.Buffer
	state := NewState(&out)
	g, err := RunString(state, src, "=test")
	if err != nil {
		t.Fatalf("lua error: %v\n%s", err, src)
	}
	return g, out.String()
}

func TestConstructorZeroed(t *testing.T) {
	g, _ := runLua(t, `
		local a = GameState()
		local b = GameState.new()
		assert(a.w_rooks == 0 and a.w_king == 0 and a.b_king == 0 and a.duck == 0)
		assert(b.duck == 0)
		return a
	`)
	if g == nil || *g != (duckmg.GameState{}) {
		t.Fatalf("expected zeroed GameState, got %+v", g)
	}
}

func TestEndToEndThroughLua(t *testing.T) {
	g, out := runLua(t, `
		local g = GameState()
		g:init_test_board()
		g:move_duck(35)
		assert(g.w_rooks == 1)
		assert(g.w_king == 16)
		assert(g.b_king == 0x1000000000000000)
		assert(g.duck == 0x0000000800000000)
		print(g:hex("duck"))
		return g
	`)
	want := duckmg.GameState{WRooks: 1, WKing: 16, BKing: 0x1000000000000000, Duck: 0x0000000800000000}
	if g == nil || *g != want {
		t.Fatalf("got %+v, want %+v", g, want)
	}
	if strings.TrimSpace(out) != "0x0000000800000000" {
		t.Fatalf("print output %q", out)
	}
}

func TestMoveDuckBoundariesThroughLua(t *testing.T) {
	_, out := runLua(t, `
		local g = GameState()
		g:move_duck(63)
		print(g:hex("duck"))
		g:move_duck(0)
		print(g:hex("duck"))
	`)
	if out != "0x8000000000000000\n0x0000000000000001\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestMoveDuckOutOfRangeRaises(t *testing.T) {
	for _, sq := range []string{"-1", "64", "35.5", "35.9", "1e300"} {
		var out bytes.Buffer
		state := NewState(&out)
		_, err := RunString(state, `
			g = GameState()
			g:init_test_board()
			g:move_duck(`+sq+`)
		`, "=test")
		if err == nil || !(strings.Contains(err.Error(), "invalid square") || strings.Contains(err.Error(), "not an integer")) {
			t.Fatalf("move_duck(%s): got %v, want invalid square error", sq, err)
		}
		g, _ := RunString(state, "return g", "=test")
		if g == nil || g.Duck != 1<<27 {
			t.Fatalf("move_duck(%s) changed the duck: %+v", sq, g)
		}
	}
}

func TestFieldWrites(t *testing.T) {
	g, _ := runLua(t, `
		local g = GameState()
		g.w_rooks = 129
		g.w_king = "0x8000000000000001"
		g.b_king = "0b1010"
		g.duck = 2^63
		assert(g:hex("w_king") == "0x8000000000000001")
		return g
	`)
	want := duckmg.GameState{WRooks: 129, WKing: 0x8000000000000001, BKing: 10, Duck: 1 << 63}
	if g == nil || *g != want {
		t.Fatalf("got %+v, want %+v", g, want)
	}
}

func TestFieldWriteIndependence(t *testing.T) {
	g, _ := runLua(t, `
		local g = GameState()
		g:init_test_board()
		g.w_rooks = 0
		g.w_king = 0
		g.b_king = 0
		assert(g.duck == 2^27)
		g:move_duck(5)
		return g
	`)
	if g == nil || *g != (duckmg.GameState{Duck: 1 << 5}) {
		t.Fatalf("got %+v", g)
	}
}

func TestFieldWriteRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"negative", `GameState().duck = -1`, "not an integer"},
		{"fraction", `GameState().duck = 1.5`, "not an integer"},
		{"too big", `GameState().duck = 2^64`, "not an integer"},
		{"bad string", `GameState().duck = "zz"`, "invalid bitboard"},
		{"table", `GameState().duck = {}`, "number or a string"},
		{"unknown field", `GameState().b_rooks = 1`, `no field "b_rooks" (fields: b_king, duck, w_king, w_rooks)`},
		{"method name", `GameState().move_duck = 1`, "no field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := RunString(NewState(&out), tt.src, "=test")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestHelpers(t *testing.T) {
	_, out := runLua(t, `
		local g = GameState()
		g:init_test_board()
		print(g:fen())
		local sq = g:squares("w_king")
		print(#sq, sq[1])
		print(g:validate())
		g.duck = 3
		print(g:validate() ~= nil)
		print(g.nothing)
		print(#g:hash())
	`)
	want := duckmg.FENTestBoard + "\n1\te1\nnil\ntrue\nnil\n16\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestIndexNonStringKeys(t *testing.T) {
	_, out := runLua(t, `
		local g = GameState()
		print(g[true], g[{}], g[1])
	`)
	if out != "nil\tnil\tnil\n" {
		t.Fatalf("got %q", out)
	}
}

func TestUnknownTokenListsFields(t *testing.T) {
	var out bytes.Buffer
	_, err := RunString(NewState(&out), `GameState():hex("b_rooks")`, "=test")
	if err == nil || !strings.Contains(err.Error(), "fields: b_king, duck, w_king, w_rooks") {
		t.Fatalf("got %v", err)
	}
}

func TestChessFEN(t *testing.T) {
	_, out := runLua(t, `
		local g = GameState()
		g:init_test_board()
		print(g:chess_fen())
	`)
	if !strings.HasPrefix(out, "4k3/8/8/8/8/8/8/R3K3 w") {
		t.Fatalf("chess_fen = %q", out)
	}

	var buf bytes.Buffer
	_, err := RunString(NewState(&buf), `
		local g = GameState()
		g.w_rooks = 16
		g.w_king = 16
		return g:chess_fen()
	`, "=test")
	if err == nil || !strings.Contains(err.Error(), "overlapping bitboards") {
		t.Fatalf("expected overlap error, got %v", err)
	}
}

func TestToString(t *testing.T) {
	_, out := runLua(t, `
		local g = GameState()
		g:move_duck(0)
		print(tostring(g))
	`)
	want := "GameState(w_rooks=0x0000000000000000, w_king=0x0000000000000000, b_king=0x0000000000000000, duck=0x0000000000000001)\n"
	if out != want {
		t.Fatalf("got %q", out)
	}
}

func TestMethodNeedsGameState(t *testing.T) {
	var out bytes.Buffer
	_, err := RunString(NewState(&out), `local g = GameState(); g.move_duck({}, 3)`, "=test")
	if err == nil {
		t.Fatalf("expected error calling a method on a non-GameState")
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.lua")
	src := "local g = GameState()\ng:init_test_board()\nreturn g\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	state := NewState(&out)
	g, err := RunFile(state, path)
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if g == nil || g.ToFEN() != duckmg.FENTestBoard {
		t.Fatalf("unexpected state %+v", g)
	}
	if state.Top() != 0 {
		t.Fatalf("stack not restored, top=%d", state.Top())
	}

	if _, err := RunFile(state, filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Fatalf("expected load error for a missing file")
	}
}

func TestRunStringWithoutGameState(t *testing.T) {
	var out bytes.Buffer
	g, err := RunString(NewState(&out), `return 42`, "=test")
	if err != nil || g != nil {
		t.Fatalf("got %v, %v", g, err)
	}
}

func TestBitboardFromNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want uint64
		ok   bool
	}{
		{0, 0, true},
		{16, 16, true},
		{1 << 63, 1 << 63, true},
		{-1, 0, false},
		{0.5, 0, false},
		{twoTo64, 0, false},
	}
	for _, tt := range tests {
		got, err := bitboardFromNumber(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("bitboardFromNumber(%v) = %#x, %v", tt.in, got, err)
		}
	}
}
