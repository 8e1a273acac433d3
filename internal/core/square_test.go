package core

import "testing"

func TestLabelRoundTrip(t *testing.T) {
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			sq := Sq(rank, file)
			got, err := ParseLabel(sq.Label())
			if err != nil {
				t.Fatalf("ParseLabel(%q) error: %v", sq.Label(), err)
			}
			if got != sq {
				t.Errorf("ParseLabel(%q) = %v, want %v", sq.Label(), got, sq)
			}
		}
	}
}

func TestLabelReversedFiles(t *testing.T) {
	tests := []struct {
		sq   Square
		want string
	}{
		{Sq(0, 7), "A1"},
		{Sq(7, 0), "H8"},
		{Sq(0, 0), "H1"},
		{Sq(7, 7), "A8"},
		{Sq(6, 0), "H7"},
		{Sq(4, 3), "E5"},
	}
	for _, tt := range tests {
		if got := tt.sq.Label(); got != tt.want {
			t.Errorf("%+v.Label() = %q, want %q", tt.sq, got, tt.want)
		}
	}
}

func TestParseLabelErrors(t *testing.T) {
	for _, in := range []string{"", "A", "A9", "I1", "A0", "A10", "11"} {
		if _, err := ParseLabel(in); err == nil {
			t.Errorf("ParseLabel(%q) expected error", in)
		}
	}
	if sq, err := ParseLabel("e2"); err != nil || sq != Sq(1, 3) {
		t.Errorf("ParseLabel(\"e2\") = %v, %v; want {1 3}", sq, err)
	}
}

func TestAlgebraicRoundTrip(t *testing.T) {
	if got := Sq(7, 4).Algebraic(); got != "e1" {
		t.Errorf("Sq(7,4).Algebraic() = %q, want e1", got)
	}
	if got := Sq(0, 0).Algebraic(); got != "a8" {
		t.Errorf("Sq(0,0).Algebraic() = %q, want a8", got)
	}
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			sq := Sq(rank, file)
			got, err := ParseAlgebraic(sq.Algebraic())
			if err != nil || got != sq {
				t.Errorf("ParseAlgebraic(%q) = %v, %v; want %v", sq.Algebraic(), got, err, sq)
			}
		}
	}
}

func TestOnBoard(t *testing.T) {
	if Sq(-1, 0).OnBoard() || Sq(0, 8).OnBoard() || Sq(8, 8).OnBoard() {
		t.Error("off-board square reported on board")
	}
	if !Sq(0, 0).OnBoard() || !Sq(7, 7).OnBoard() {
		t.Error("corner square reported off board")
	}
	if got := Sq(9, 9).Label(); got != "--" {
		t.Errorf("off-board Label() = %q, want --", got)
	}
}

func TestSymbolRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		for _, side := range []Side{SideWhite, SideBlack} {
			gk, gs, ok := ParseSymbol(k.Symbol(side))
			if !ok || gk != k || gs != side {
				t.Errorf("ParseSymbol(%c) = %v %v %v, want %v %v", k.Symbol(side), gk, gs, ok, k, side)
			}
		}
	}
	if _, _, ok := ParseSymbol('x'); ok {
		t.Error("ParseSymbol('x') should fail")
	}
}
