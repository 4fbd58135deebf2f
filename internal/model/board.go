package model

// Board owns the position: one optional piece per square plus the
// append-only move history.
type Board struct {
	squares [boardSize][boardSize]Piece
	history []Move
}

var backRank = [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position. Black occupies rows 0-1,
// white rows 6-7.
func NewBoard() *Board {
	b := newEmptyBoard()
	for x, t := range backRank {
		b.put(Piece{Type: t, Color: Black, Position: Coord{X: x, Y: 0}})
		b.put(Piece{Type: t, Color: White, Position: Coord{X: x, Y: 7}})
	}
	for x := 0; x < boardSize; x++ {
		b.put(Piece{Type: Pawn, Color: Black, Position: Coord{X: x, Y: 1}})
		b.put(Piece{Type: Pawn, Color: White, Position: Coord{X: x, Y: 6}})
	}
	return b
}

func newEmptyBoard() *Board {
	return &Board{history: make([]Move, 0)}
}

// GetPiece returns the piece on c. Off-board squares read as empty.
func (b *Board) GetPiece(c Coord) (Piece, bool) {
	if !c.IsValid() {
		return Piece{}, false
	}
	p := b.squares[c.Y][c.X]
	return p, !p.isEmpty()
}

// Pieces lists the pieces of one color in board order.
func (b *Board) Pieces(color PieceColor) []Piece {
	pieces := make([]Piece, 0, 16)
	for y := 0; y < boardSize; y++ {
		for x := 0; x < boardSize; x++ {
			if p := b.squares[y][x]; !p.isEmpty() && p.Color == color {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// History returns a copy of the moves applied so far.
func (b *Board) History() []Move {
	return append([]Move(nil), b.history...)
}

func (b *Board) lastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1], true
}

// Snapshot returns an independent copy of the board.
func (b *Board) Snapshot() *Board {
	s := &Board{squares: b.squares}
	s.history = b.History()
	return s
}

func (b *Board) put(p Piece) {
	b.squares[p.Position.Y][p.Position.X] = p
}

func (b *Board) remove(c Coord) {
	if c.IsValid() {
		b.squares[c.Y][c.X] = Piece{}
	}
}

// ApplyMove plays m without re-validating it; m must come from PossibleMoves
// for the side to move, or be a promotion choice built by the Game. It
// reports the mover's color as winner when m captured a king.
func (b *Board) ApplyMove(m Move) (PieceColor, bool) {
	b.history = append(b.history, m)

	b.remove(m.From)
	b.remove(m.To)
	if m.CaptureTarget != nil && m.CaptureTarget.Position != m.To {
		b.remove(m.CaptureTarget.Position)
	}

	switch {
	case m.Promotion != "":
		b.put(Piece{Type: m.Promotion, Color: m.Mover.Color, Position: m.To, HasMoved: true})
	case m.CastlingRook != nil:
		b.put(m.Mover.movedTo(m.To))
		rook := *m.CastlingRook
		b.remove(rook.Position)
		side := 1
		if m.To.X < m.From.X {
			side = -1
		}
		b.put(rook.movedTo(Coord{X: m.From.X + side, Y: m.From.Y}))
	default:
		// a pending promotion leaves the pawn on the last row until chosen
		b.put(m.Mover.movedTo(m.To))
	}

	if m.CaptureTarget != nil && m.CaptureTarget.Type == King {
		return m.Mover.Color, true
	}
	return "", false
}
