package model

// GameView is what one side may see of a game. While the game is in progress
// pieces outside the viewer's visible squares are omitted and only the
// viewer's own plies are listed; once it is over everything is revealed.
type GameView struct {
	Viewer          PieceColor     `json:"viewer"`
	ToMove          PieceColor     `json:"toMove"`
	Phase           GamePhase      `json:"phase"`
	Pieces          []Piece        `json:"pieces"`
	Visible         []Coord        `json:"visible"`
	SelectedSquare  *Coord         `json:"selectedSquare"`
	LegalMoves      []Coord        `json:"legalMoves"`
	PromotionSquare *Coord         `json:"promotionSquare"`
	LastMove        *SimpleMove    `json:"lastMove"`
	CapturedPieces  CapturedPieces `json:"capturedPieces"`
	MoveHistory     []Ply          `json:"moveHistory"`
}

// IsVisible reports whether c is shown to the viewer.
func (v GameView) IsVisible(c Coord) bool {
	for _, vc := range v.Visible {
		if vc == c {
			return true
		}
	}
	return false
}

func (v GameView) PieceAt(c Coord) (Piece, bool) {
	for _, p := range v.Pieces {
		if p.Position == c {
			return p, true
		}
	}
	return Piece{}, false
}

func (g *Game) View(viewer PieceColor) GameView {
	view := GameView{
		Viewer:         viewer,
		ToMove:         g.toMove,
		Phase:          g.phase,
		LegalMoves:     make([]Coord, 0),
		MoveHistory:    make([]Ply, 0),
		CapturedPieces: CapturedPieces{
			White: append(make([]Piece, 0, len(g.captured.White)), g.captured.White...),
			Black: append(make([]Piece, 0, len(g.captured.Black)), g.captured.Black...),
		},
	}

	visible := g.visible
	switch {
	case g.IsOver():
		visible = ^SquareSet(0)
	case viewer != g.toMove || g.pending != nil:
		visible = VisibleSquares(viewer, g.board)
	}
	view.Visible = visible.Coords()

	view.Pieces = make([]Piece, 0, 32)
	for _, c := range view.Visible {
		if p, ok := g.board.GetPiece(c); ok {
			view.Pieces = append(view.Pieces, p)
		}
	}

	for _, ply := range g.plies {
		if g.IsOver() || ply.Color == viewer {
			view.MoveHistory = append(view.MoveHistory, ply)
		}
	}
	if g.lastMove != nil && visible.Has(g.lastMove.From) && visible.Has(g.lastMove.To) {
		lm := *g.lastMove
		view.LastMove = &lm
	}

	if viewer != g.toMove || g.IsOver() {
		return view
	}
	if g.selected != nil {
		sel := g.selected.Position
		view.SelectedSquare = &sel
		for _, m := range g.moves {
			view.LegalMoves = append(view.LegalMoves, m.To)
		}
	}
	if sq, ok := g.PendingPromotion(); ok {
		view.PromotionSquare = &sq
	}
	return view
}
