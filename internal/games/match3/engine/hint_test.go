package engine

import "testing"

func TestFindPossibleMoves(t *testing.T) {
	g := gridOf(t, 8, "ABA", "CAD", "EFG")
	before := g.Clone()

	moves := FindPossibleMoves(g)
	if len(moves) == 0 {
		t.Fatal("expected at least one move")
	}
	want := Move{A: At(0, 1), B: At(1, 1)}
	if moves[0] != want {
		t.Errorf("first move = %v, want %v", moves[0], want)
	}
	if !g.Equal(before) {
		t.Error("FindPossibleMoves mutated the grid")
	}

	first, ok := FirstPossibleMove(g)
	if !ok || first != want {
		t.Errorf("FirstPossibleMove = %v, %v; want %v, true", first, ok, want)
	}
}

func TestFindPossibleMovesNone(t *testing.T) {
	g := gridOf(t, 9, "ABC", "DEF", "GHI")

	if moves := FindPossibleMoves(g); len(moves) != 0 {
		t.Errorf("expected no moves, got %v", moves)
	}
	if _, ok := FirstPossibleMove(g); ok {
		t.Error("FirstPossibleMove should report false")
	}
}

func TestFindPossibleMovesAreProductive(t *testing.T) {
	g := gridOf(t, 4, "ABCA", "BACB", "CABC", "ABAB")

	for _, m := range FindPossibleMoves(g) {
		if !IsAdjacent(m.A, m.B) {
			t.Errorf("move %v is not adjacent", m)
		}
		probeGrid := g.Clone()
		if err := probeGrid.Swap(m.A, m.B); err != nil {
			t.Fatalf("Swap: %v", err)
		}
		if FindMatches(probeGrid).Empty() {
			t.Errorf("move %v produces no match", m)
		}
	}
}
