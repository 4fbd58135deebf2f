package model

import "strings"

// Notate renders m in algebraic notation. before must be the board as it
// stood when m was generated.
func Notate(m Move, before *Board) string {
	if m.IsCastle() {
		if m.CastlingRook.Position.X == 0 {
			return "O-O-O"
		}
		return "O-O"
	}
	if m.Mover.Type == Pawn {
		return notatePawn(m, before)
	}

	var sb strings.Builder
	sb.WriteString(m.Mover.Type.Notation())
	sb.WriteString(disambiguation(m, before))
	if m.IsCapture() {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.Code())
	if m.IsCapture() && m.CaptureTarget.Type == King {
		sb.WriteByte('#')
	}
	return sb.String()
}

func notatePawn(m Move, before *Board) string {
	var sb strings.Builder
	if m.IsCapture() {
		if sharesFileWithPawn(m.Mover, before) {
			sb.WriteString(m.From.Code())
		} else {
			sb.WriteString(m.From.File())
		}
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.Code())
	if m.Promotion != "" {
		sb.WriteByte('=')
		sb.WriteString(m.Promotion.Notation())
	}
	return sb.String()
}

func sharesFileWithPawn(pawn Piece, board *Board) bool {
	for y := 0; y < boardSize; y++ {
		if y == pawn.Position.Y {
			continue
		}
		p, ok := board.GetPiece(Coord{X: pawn.Position.X, Y: y})
		if ok && p.Type == Pawn && p.Color == pawn.Color {
			return true
		}
	}
	return false
}

// disambiguation names the origin file, rank, or square when another piece of
// the same type and color could also reach m.To.
func disambiguation(m Move, before *Board) string {
	rivals := []Piece{}
	for _, p := range before.Pieces(m.Mover.Color) {
		if p.Type != m.Mover.Type || p.Position == m.From {
			continue
		}
		for _, rm := range PossibleMoves(p, before) {
			if rm.To == m.To {
				rivals = append(rivals, p)
				break
			}
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, p := range rivals {
		if p.Position.X == m.From.X {
			sameFile = true
		}
		if p.Position.Y == m.From.Y {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return m.From.File()
	case !sameRank:
		return m.From.Rank()
	}
	return m.From.Code()
}
