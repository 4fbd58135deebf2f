package model

import "fmt"

var (
	rookDirs   = []Coord{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Coord{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	queenDirs  = append(append([]Coord{}, rookDirs...), bishopDirs...)
	knightDirs = []Coord{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = queenDirs
)

// PossibleMoves enumerates the pseudo-legal moves of piece on board. Moves
// that leave the mover's own king attacked are included: capturing the king
// is how the game is won.
func PossibleMoves(piece Piece, board *Board) []Move {
	switch piece.Type {
	case Pawn:
		return pawnMoves(piece, board)
	case Knight:
		return stepMoves(piece, board, knightDirs)
	case Bishop:
		return slidingMoves(piece, board, bishopDirs)
	case Rook:
		return slidingMoves(piece, board, rookDirs)
	case Queen:
		return slidingMoves(piece, board, queenDirs)
	case King:
		return append(stepMoves(piece, board, kingDirs), castleMoves(piece, board)...)
	}
	panic(fmt.Errorf("%w: %q", ErrInvalidPieceType, piece.Type))
}

// target builds a move to c, or reports false when c is off the board or
// holds a piece of the mover's color.
func target(piece Piece, board *Board, c Coord) (Move, bool) {
	if !c.IsValid() {
		return Move{}, false
	}
	move := Move{From: piece.Position, To: c, Mover: piece}
	if occupant, ok := board.GetPiece(c); ok {
		if occupant.Color == piece.Color {
			return Move{}, false
		}
		move.CaptureTarget = &occupant
	}
	return move, true
}

func slidingMoves(piece Piece, board *Board, dirs []Coord) []Move {
	mustNotBePawn(piece)
	moves := []Move{}
	for _, dir := range dirs {
		for c := piece.Position.Add(dir); c.IsValid(); c = c.Add(dir) {
			if move, ok := target(piece, board, c); ok {
				moves = append(moves, move)
			}
			if _, occupied := board.GetPiece(c); occupied {
				break
			}
		}
	}
	return moves
}

func stepMoves(piece Piece, board *Board, dirs []Coord) []Move {
	mustNotBePawn(piece)
	moves := []Move{}
	for _, dir := range dirs {
		if move, ok := target(piece, board, piece.Position.Add(dir)); ok {
			moves = append(moves, move)
		}
	}
	return moves
}

func mustNotBePawn(piece Piece) {
	if piece.Type == Pawn {
		panic(fmt.Errorf("%w: pawn passed to a non-pawn generator", ErrInvalidPieceType))
	}
}

// castleMoves offers a two-square king move towards every unmoved rook on the
// king's row with an empty corridor. Attacked squares are not considered.
func castleMoves(king Piece, board *Board) []Move {
	if king.Type != King {
		panic(fmt.Errorf("%w: castling requires a king, got %q", ErrInvalidPieceType, king.Type))
	}
	moves := []Move{}
	if king.HasMoved {
		return moves
	}
	y := king.Position.Y
	for _, rookX := range []int{0, boardSize - 1} {
		rook, ok := board.GetPiece(Coord{X: rookX, Y: y})
		if !ok || rook.Type != Rook || rook.Color != king.Color || rook.HasMoved {
			continue
		}
		side := 1
		if rookX < king.Position.X {
			side = -1
		}
		to := Coord{X: king.Position.X + 2*side, Y: y}
		if !to.IsValid() || !corridorEmpty(board, y, king.Position.X, rookX) {
			continue
		}
		moves = append(moves, Move{From: king.Position, To: to, Mover: king, CastlingRook: &rook})
	}
	return moves
}

func corridorEmpty(board *Board, y, a, b int) bool {
	if a > b {
		a, b = b, a
	}
	for x := a + 1; x < b; x++ {
		if _, ok := board.GetPiece(Coord{X: x, Y: y}); ok {
			return false
		}
	}
	return true
}

func pawnMoves(pawn Piece, board *Board) []Move {
	if pawn.Type != Pawn {
		panic(fmt.Errorf("%w: pawn generator called for %q", ErrInvalidPieceType, pawn.Type))
	}
	moves := []Move{}
	dir := pawn.Color.forward()
	lastRow := pawn.Color.lastRow()

	one := pawn.Position.Add(Coord{X: 0, Y: dir})
	if _, occupied := board.GetPiece(one); one.IsValid() && !occupied {
		moves = append(moves, Move{From: pawn.Position, To: one, Mover: pawn, PendingPromotion: one.Y == lastRow})
		two := one.Add(Coord{X: 0, Y: dir})
		if _, occupied := board.GetPiece(two); pawn.Position.Y == pawn.Color.pawnHomeRow() && two.IsValid() && !occupied {
			moves = append(moves, Move{From: pawn.Position, To: two, Mover: pawn})
		}
	}

	for _, dx := range []int{-1, 1} {
		c := pawn.Position.Add(Coord{X: dx, Y: dir})
		occupant, ok := board.GetPiece(c)
		if !ok || occupant.Color == pawn.Color {
			continue
		}
		moves = append(moves, Move{From: pawn.Position, To: c, Mover: pawn, CaptureTarget: &occupant, PendingPromotion: c.Y == lastRow})
	}

	if move, ok := enPassant(pawn, board); ok {
		moves = append(moves, move)
	}
	return moves
}

// enPassant looks only at the most recent move: an enemy pawn that just
// advanced two rows and now stands beside pawn.
func enPassant(pawn Piece, board *Board) (Move, bool) {
	last, ok := board.lastMove()
	if !ok || last.Mover.Type != Pawn || last.Mover.Color == pawn.Color {
		return Move{}, false
	}
	distance := last.To.Y - last.From.Y
	if distance != 2 && distance != -2 {
		return Move{}, false
	}
	if abs(last.To.X-pawn.Position.X) != 1 || last.To.Y != pawn.Position.Y {
		return Move{}, false
	}
	victim, ok := board.GetPiece(last.To)
	if !ok || victim.Type != Pawn || victim.Color == pawn.Color {
		return Move{}, false
	}
	to := Coord{X: last.To.X, Y: last.To.Y - distance/2}
	return Move{From: pawn.Position, To: to, Mover: pawn, CaptureTarget: &victim}, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
