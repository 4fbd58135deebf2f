package model

import "testing"

func TestVisibleSquaresStartingPosition(t *testing.T) {
	b := NewBoard()
	visible := VisibleSquares(White, b)
	if visible.Len() != 32 {
		t.Fatalf("white sees %d squares, want 32", visible.Len())
	}
	for _, c := range visible.Coords() {
		if c.Y < 4 {
			t.Errorf("white should not see %s", c)
		}
	}

	black := VisibleSquares(Black, b)
	if black.Has(sq(t, "e4")) || !black.Has(sq(t, "e5")) || !black.Has(sq(t, "c6")) {
		t.Fatalf("unexpected black visibility %v", black.Coords())
	}
}

func TestVisibleSquaresIncludeOwnPieces(t *testing.T) {
	// a rook boxed in by its own pieces still sees its own square
	b := boardWith(
		pc(t, Rook, White, "a1"),
		pc(t, Knight, White, "b1"),
		pc(t, Pawn, White, "a2"),
		pc(t, Pawn, White, "b2"),
		pc(t, Queen, Black, "a7"),
	)
	visible := VisibleSquares(White, b)
	for _, p := range b.Pieces(White) {
		if !visible.Has(p.Position) {
			t.Errorf("own piece square %s not visible", p.Position)
		}
	}
	if visible.Has(sq(t, "a7")) {
		t.Fatalf("black queen behind the a2 pawn should be hidden")
	}
	if !visible.Has(sq(t, "a3")) || !visible.Has(sq(t, "c3")) || !visible.Has(sq(t, "d2")) {
		t.Fatalf("missing reachable squares in %v", visible.Coords())
	}
}

func TestVisibleSquaresFollowCaptures(t *testing.T) {
	b := boardWith(pc(t, Bishop, White, "c1"), pc(t, Knight, Black, "f4"), pc(t, Rook, Black, "h6"))
	visible := VisibleSquares(White, b)
	if !visible.Has(sq(t, "f4")) {
		t.Fatalf("capturable knight on f4 should be visible")
	}
	if visible.Has(sq(t, "h6")) || visible.Has(sq(t, "g5")) {
		t.Fatalf("squares behind f4 should be hidden")
	}
}
