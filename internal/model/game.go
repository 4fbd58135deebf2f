package model

type GamePhase string

const (
	Playing  GamePhase = "playing"
	WhiteWin GamePhase = "whiteWin"
	BlackWin GamePhase = "blackWin"
)

func winPhase(winner PieceColor) GamePhase {
	if winner == White {
		return WhiteWin
	}
	return BlackWin
}

// CapturedPieces lists pieces taken by each color.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// Game is the turn controller: select a piece, select one of its
// destinations, optionally choose a promotion, then the turn passes and the
// new side's visibility is computed. It is not safe for concurrent use.
type Game struct {
	board    *Board
	toMove   PieceColor
	phase    GamePhase
	visible  SquareSet
	selected *Piece
	moves    []Move

	// a pawn move waiting for its promotion choice, with the board it was
	// played from
	pending       *Move
	pendingBefore *Board

	plies    []Ply
	captured CapturedPieces
	lastMove *SimpleMove
}

func NewGame() *Game {
	return newGameFrom(NewBoard(), White)
}

func newGameFrom(board *Board, toMove PieceColor) *Game {
	g := &Game{
		board:  board,
		toMove: toMove,
		phase:  Playing,
		plies:  make([]Ply, 0),
		captured: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
	}
	g.visible = VisibleSquares(g.toMove, g.board)
	return g
}

func (g *Game) Phase() GamePhase { return g.phase }
func (g *Game) ToMove() PieceColor { return g.toMove }
func (g *Game) Visible() SquareSet { return g.visible }
func (g *Game) IsOver() bool { return g.phase != Playing }
func (g *Game) Board() *Board { return g.board.Snapshot() }
func (g *Game) AwaitingPromotion() bool { return g.pending != nil }

// Winner reports the winning color once the game is over.
func (g *Game) Winner() (PieceColor, bool) {
	switch g.phase {
	case WhiteWin:
		return White, true
	case BlackWin:
		return Black, true
	}
	return "", false
}

// Selected returns the currently selected piece and its possible moves.
func (g *Game) Selected() (Piece, []Move, bool) {
	if g.selected == nil {
		return Piece{}, nil, false
	}
	return *g.selected, append([]Move(nil), g.moves...), true
}

// PendingPromotion returns the square of the pawn awaiting a promotion choice.
func (g *Game) PendingPromotion() (Coord, bool) {
	if g.pending == nil {
		return Coord{}, false
	}
	return g.pending.To, true
}

func (g *Game) Plies() []Ply {
	return append([]Ply(nil), g.plies...)
}

// Select handles a click on c. If c is a destination of the selected piece
// the move is played; otherwise c becomes the new selection, or the selection
// is cleared when c holds no piece of the side to move.
func (g *Game) Select(c Coord) error {
	if g.IsOver() {
		return ErrGameOver
	}
	if g.pending != nil {
		return ErrPromotionPending
	}
	if g.selected != nil {
		for _, move := range g.moves {
			if move.To == c {
				g.play(move)
				return nil
			}
		}
	}
	g.selectPiece(c)
	return nil
}

func (g *Game) selectPiece(c Coord) {
	piece, ok := g.board.GetPiece(c)
	if !ok || piece.Color != g.toMove {
		g.clearSelection()
		return
	}
	g.selected = &piece
	g.moves = PossibleMoves(piece, g.board)
}

func (g *Game) clearSelection() {
	g.selected = nil
	g.moves = nil
}

func (g *Game) play(move Move) {
	before := g.board.Snapshot()
	winner, won := g.board.ApplyMove(move)
	g.clearSelection()
	g.lastMove = &SimpleMove{From: move.From, To: move.To}
	if move.CaptureTarget != nil {
		g.addCaptured(move.Mover.Color, *move.CaptureTarget)
	}

	if !won && move.PendingPromotion {
		g.pending = &move
		g.pendingBefore = before
		return
	}
	g.record(move, before)
	g.endTurn(winner, won)
}

// ChoosePromotion resolves the pending promotion and passes the turn.
func (g *Game) ChoosePromotion(t PieceType) error {
	if g.IsOver() {
		return ErrGameOver
	}
	if g.pending == nil {
		return ErrNoPendingPromotion
	}
	if !t.IsPromotionTarget() {
		return ErrInvalidPromotion
	}

	pawn := g.pending.Mover.movedTo(g.pending.To)
	winner, won := g.board.ApplyMove(Move{From: pawn.Position, To: pawn.Position, Mover: pawn, Promotion: t})

	final := *g.pending
	final.PendingPromotion = false
	final.Promotion = t
	g.record(final, g.pendingBefore)
	g.pending = nil
	g.pendingBefore = nil
	g.endTurn(winner, won)
	return nil
}

func (g *Game) endTurn(winner PieceColor, won bool) {
	if won {
		g.phase = winPhase(winner)
		return
	}
	g.toMove = g.toMove.Opposite()
	g.visible = VisibleSquares(g.toMove, g.board)
}

func (g *Game) record(move Move, before *Board) {
	g.plies = append(g.plies, Ply{
		Color:    move.Mover.Color,
		From:     move.From,
		To:       move.To,
		Captured: move.CaptureTarget,
		Notation: Notate(move, before),
	})
}

func (g *Game) addCaptured(by PieceColor, p Piece) {
	if by == White {
		g.captured.White = append(g.captured.White, p)
	} else {
		g.captured.Black = append(g.captured.Black, p)
	}
}
