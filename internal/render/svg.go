// Package render draws a side's fog-of-war view of a game as SVG.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/benbeisheim/fogchess-backend/internal/model"
)

const (
	lightSquare = "fill:#f5f5dc"
	darkSquare  = "fill:#6e3118"
	fogSquare   = "fill:#2b2b2b"
	selected    = "fill:none;stroke:#2f80ed;stroke-width:4"
	lastMove    = "fill:#e2c044;fill-opacity:0.35"
	promotion   = "fill:none;stroke:#e2c044;stroke-width:4"
	target      = "fill:#2f80ed;fill-opacity:0.5"
	labelStyle  = "font-family:sans-serif;font-size:%dpx;fill:#888"
)

var glyphs = map[model.PieceColor]map[model.PieceType]string{
	model.White: {
		model.King: "♔", model.Queen: "♕", model.Rook: "♖",
		model.Bishop: "♗", model.Knight: "♘", model.Pawn: "♙",
	},
	model.Black: {
		model.King: "♚", model.Queen: "♛", model.Rook: "♜",
		model.Bishop: "♝", model.Knight: "♞", model.Pawn: "♟",
	},
}

// Glyph returns the unicode chess symbol for p.
func Glyph(p model.Piece) string {
	return glyphs[p.Color][p.Type]
}

// BoardSVG writes view as an SVG board with square pixels per square. The
// viewer's pieces are drawn at the bottom.
func BoardSVG(w io.Writer, view model.GameView, square int) {
	margin := square / 2
	size := square*8 + margin
	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Title(fmt.Sprintf("%s view, %s to move", view.Viewer, view.ToMove))

	origin := func(c model.Coord) (int, int) {
		col, row := c.X, c.Y
		if view.Viewer == model.Black {
			col, row = 7-c.X, 7-c.Y
		}
		return margin + col*square, row * square
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := model.Coord{X: x, Y: y}
			px, py := origin(c)
			style := lightSquare
			if (x+y)%2 == 1 {
				style = darkSquare
			}
			if !view.IsVisible(c) {
				style = fogSquare
			}
			canvas.Rect(px, py, square, square, style)
		}
	}

	if lm := view.LastMove; lm != nil {
		for _, c := range []model.Coord{lm.From, lm.To} {
			px, py := origin(c)
			canvas.Rect(px, py, square, square, lastMove)
		}
	}
	if sel := view.SelectedSquare; sel != nil {
		px, py := origin(*sel)
		canvas.Rect(px+2, py+2, square-4, square-4, selected)
	}
	if promo := view.PromotionSquare; promo != nil {
		px, py := origin(*promo)
		canvas.Rect(px+2, py+2, square-4, square-4, promotion)
	}

	fontSize := square * 3 / 4
	canvas.Gstyle(fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central", fontSize))
	for _, p := range view.Pieces {
		px, py := origin(p.Position)
		canvas.Text(px+square/2, py+square/2, Glyph(p))
	}
	canvas.Gend()

	for _, c := range view.LegalMoves {
		px, py := origin(c)
		canvas.Circle(px+square/2, py+square/2, square/6, target)
	}

	label := fmt.Sprintf(labelStyle, margin*2/3)
	for i := 0; i < 8; i++ {
		c := model.Coord{X: i, Y: i}
		px, py := origin(c)
		canvas.Text(px+square/2, size-margin/4, c.File(), label+";text-anchor:middle")
		canvas.Text(margin/2, py+square/2, c.Rank(), label+";text-anchor:middle;dominant-baseline:central")
	}
	canvas.End()
}
