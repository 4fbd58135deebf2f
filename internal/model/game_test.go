package model

import (
	"errors"
	"testing"
)

func selectAll(t *testing.T, g *Game, codes ...string) {
	t.Helper()
	for _, code := range codes {
		if err := g.Select(sq(t, code)); err != nil {
			t.Fatalf("Select(%s): %v", code, err)
		}
	}
}

func TestGameOpeningSequence(t *testing.T) {
	g := NewGame()
	if g.ToMove() != White || g.Phase() != Playing {
		t.Fatalf("new game: toMove=%s phase=%s", g.ToMove(), g.Phase())
	}

	selectAll(t, g, "e2")
	piece, moves, ok := g.Selected()
	if !ok || piece.Position != sq(t, "e2") || len(moves) != 2 {
		t.Fatalf("selection = %+v %v %v", piece, codes(moves), ok)
	}

	selectAll(t, g, "e4")
	if g.ToMove() != Black {
		t.Fatalf("turn did not pass to black")
	}
	if _, _, ok := g.Selected(); ok {
		t.Fatalf("selection survived the move")
	}
	if !g.Visible().Has(sq(t, "d5")) || g.Visible().Has(sq(t, "e4")) {
		t.Fatalf("visibility not recomputed for black: %v", g.Visible().Coords())
	}

	selectAll(t, g, "d7", "d5", "e4", "d5")
	plies := g.Plies()
	want := []string{"e4", "d5", "exd5"}
	if len(plies) != len(want) {
		t.Fatalf("plies = %+v", plies)
	}
	for i, w := range want {
		if plies[i].Notation != w {
			t.Errorf("ply %d notated %q, want %q", i, plies[i].Notation, w)
		}
	}
	if plies[2].Captured == nil || plies[2].Captured.Type != Pawn {
		t.Fatalf("capture not recorded: %+v", plies[2])
	}
}

func TestGameSelection(t *testing.T) {
	g := NewGame()

	selectAll(t, g, "e7")
	if _, _, ok := g.Selected(); ok {
		t.Fatalf("white selected a black piece")
	}

	selectAll(t, g, "g1", "e5")
	if _, _, ok := g.Selected(); ok {
		t.Fatalf("selecting an unreachable empty square should clear the selection")
	}

	selectAll(t, g, "g1", "b1")
	piece, _, ok := g.Selected()
	if !ok || piece.Position != sq(t, "b1") {
		t.Fatalf("reselection failed: %+v", piece)
	}
	if g.ToMove() != White {
		t.Fatalf("turn changed without a move")
	}

	if err := g.Select(Coord{X: 9, Y: -1}); err != nil {
		t.Fatalf("off-board select: %v", err)
	}
	if _, _, ok := g.Selected(); ok {
		t.Fatalf("off-board select kept the selection")
	}
}

func TestGamePromotion(t *testing.T) {
	b := boardWith(
		moved(pc(t, Pawn, White, "a7")),
		pc(t, King, White, "h1"),
		pc(t, King, Black, "h8"),
	)
	g := newGameFrom(b, White)

	selectAll(t, g, "a7", "a8")
	if !g.AwaitingPromotion() {
		t.Fatalf("expected a pending promotion")
	}
	if sqr, ok := g.PendingPromotion(); !ok || sqr != sq(t, "a8") {
		t.Fatalf("pending promotion square = %v", sqr)
	}
	if g.ToMove() != White {
		t.Fatalf("turn passed before the promotion choice")
	}
	if err := g.Select(sq(t, "h1")); !errors.Is(err, ErrPromotionPending) {
		t.Fatalf("Select during promotion = %v", err)
	}
	if err := g.ChoosePromotion(Pawn); !errors.Is(err, ErrInvalidPromotion) {
		t.Fatalf("ChoosePromotion(pawn) = %v", err)
	}
	if err := g.ChoosePromotion(King); !errors.Is(err, ErrInvalidPromotion) {
		t.Fatalf("ChoosePromotion(king) = %v", err)
	}

	if err := g.ChoosePromotion(Queen); err != nil {
		t.Fatalf("ChoosePromotion(queen): %v", err)
	}
	board := g.Board()
	p, ok := board.GetPiece(sq(t, "a8"))
	if !ok || p.Type != Queen || p.Color != White {
		t.Fatalf("a8 holds %+v, want white queen", p)
	}
	if g.ToMove() != Black || g.AwaitingPromotion() {
		t.Fatalf("after promotion: toMove=%s awaiting=%v", g.ToMove(), g.AwaitingPromotion())
	}
	plies := g.Plies()
	if len(plies) != 1 || plies[0].Notation != "a8=Q" {
		t.Fatalf("plies = %+v", plies)
	}
	if err := g.ChoosePromotion(Queen); !errors.Is(err, ErrNoPendingPromotion) {
		t.Fatalf("second ChoosePromotion = %v", err)
	}
}

func TestGameKingCaptureEndsGame(t *testing.T) {
	b := boardWith(
		pc(t, Queen, White, "d1"),
		pc(t, King, White, "e1"),
		pc(t, King, Black, "d8"),
	)
	g := newGameFrom(b, White)

	selectAll(t, g, "d1", "d8")
	if g.Phase() != WhiteWin || !g.IsOver() {
		t.Fatalf("phase = %s, want whiteWin", g.Phase())
	}
	if winner, ok := g.Winner(); !ok || winner != White {
		t.Fatalf("Winner() = %s, %v", winner, ok)
	}
	if err := g.Select(sq(t, "e1")); !errors.Is(err, ErrGameOver) {
		t.Fatalf("Select after the game ended = %v", err)
	}
	if err := g.ChoosePromotion(Queen); !errors.Is(err, ErrGameOver) {
		t.Fatalf("ChoosePromotion after the game ended = %v", err)
	}
	if plies := g.Plies(); len(plies) != 1 || plies[0].Notation != "Qxd8#" {
		t.Fatalf("plies = %+v", plies)
	}
}

func TestGamePawnCapturesKingOnLastRow(t *testing.T) {
	b := boardWith(
		moved(pc(t, Pawn, White, "b7")),
		pc(t, King, White, "h1"),
		pc(t, King, Black, "a8"),
	)
	g := newGameFrom(b, White)

	selectAll(t, g, "b7", "a8")
	if g.Phase() != WhiteWin {
		t.Fatalf("phase = %s, want whiteWin", g.Phase())
	}
	if g.AwaitingPromotion() {
		t.Fatalf("a won game should not wait for a promotion choice")
	}
}

func TestGameView(t *testing.T) {
	g := NewGame()

	white := g.View(White)
	if len(white.Pieces) != 16 {
		t.Fatalf("white sees %d pieces, want 16", len(white.Pieces))
	}
	for _, p := range white.Pieces {
		if p.Color != White {
			t.Fatalf("white sees hidden %+v", p)
		}
	}
	if !white.IsVisible(sq(t, "e4")) || white.IsVisible(sq(t, "e5")) {
		t.Fatalf("unexpected white visibility")
	}

	selectAll(t, g, "e2", "e4", "d7", "d5")
	white = g.View(White)
	if _, ok := white.PieceAt(sq(t, "d5")); !ok {
		t.Fatalf("capturable pawn on d5 should be visible to white")
	}
	if len(white.MoveHistory) != 1 || white.MoveHistory[0].Notation != "e4" {
		t.Fatalf("white history = %+v", white.MoveHistory)
	}

	selectAll(t, g, "g1")
	white = g.View(White)
	if white.SelectedSquare == nil || *white.SelectedSquare != sq(t, "g1") || len(white.LegalMoves) != 3 {
		t.Fatalf("selection view = %+v %v", white.SelectedSquare, white.LegalMoves)
	}
	black := g.View(Black)
	if black.SelectedSquare != nil || len(black.LegalMoves) != 0 {
		t.Fatalf("black sees white's selection")
	}
	if _, ok := black.PieceAt(sq(t, "g1")); ok {
		t.Fatalf("black sees the hidden knight on g1")
	}
}

func TestGameViewRevealsAfterWin(t *testing.T) {
	b := boardWith(
		pc(t, Queen, White, "d1"),
		pc(t, King, White, "e1"),
		pc(t, King, Black, "d8"),
		pc(t, Rook, Black, "h8"),
	)
	g := newGameFrom(b, White)
	selectAll(t, g, "d1", "d8")

	view := g.View(Black)
	if len(view.Visible) != 64 || len(view.Pieces) != 3 {
		t.Fatalf("finished view: %d squares, %d pieces", len(view.Visible), len(view.Pieces))
	}
	if len(view.MoveHistory) != 1 {
		t.Fatalf("finished view history = %+v", view.MoveHistory)
	}
	if len(view.CapturedPieces.White) != 1 || view.CapturedPieces.White[0].Type != King {
		t.Fatalf("captured = %+v", view.CapturedPieces)
	}
}
