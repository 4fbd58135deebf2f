package model

// VisibleSquares is the fog-of-war view of color: every square it occupies
// plus every destination of its pseudo-legal moves. It is recomputed from
// scratch since any single move can change every piece's reach.
func VisibleSquares(color PieceColor, board *Board) SquareSet {
	var visible SquareSet
	for _, piece := range board.Pieces(color) {
		visible.Add(piece.Position)
		for _, move := range PossibleMoves(piece, board) {
			visible.Add(move.To)
		}
	}
	return visible
}
