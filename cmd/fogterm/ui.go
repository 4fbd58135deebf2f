package main

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/benbeisheim/fogchess-backend/internal/render"
	"github.com/gdamore/tcell/v2"
)

const (
	boardLeft   = 3
	boardTop    = 1
	squareWidth = 3
)

var (
	lightStyle  = tcell.StyleDefault.Background(tcell.NewRGBColor(0xf5, 0xf5, 0xdc)).Foreground(tcell.ColorBlack)
	darkStyle   = tcell.StyleDefault.Background(tcell.NewRGBColor(0x6e, 0x31, 0x18)).Foreground(tcell.ColorWhite)
	fogStyle    = tcell.StyleDefault.Background(tcell.NewRGBColor(0x2b, 0x2b, 0x2b)).Foreground(tcell.ColorGray)
	cursorStyle = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	selectStyle = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite)
	targetStyle = tcell.StyleDefault.Background(tcell.ColorTeal).Foreground(tcell.ColorWhite)
	textStyle   = tcell.StyleDefault
)

var promotionKeys = map[rune]model.PieceType{
	'q': model.Queen,
	'r': model.Rook,
	'b': model.Bishop,
	'n': model.Knight,
}

type ui struct {
	game    *model.Game
	cursor  model.Coord
	covered bool
	message string
	pressed bool
}

func newUI(g *model.Game) *ui {
	return &ui{game: g, cursor: model.Coord{X: 4, Y: 6}, covered: true}
}

// flipped reports whether black is at the bottom of the screen.
func (u *ui) flipped() bool {
	return u.game.ToMove() == model.Black
}

func (u *ui) screenPos(c model.Coord) (int, int) {
	col, row := c.X, c.Y
	if u.flipped() {
		col, row = 7-c.X, 7-c.Y
	}
	return boardLeft + col*squareWidth, boardTop + row
}

func (u *ui) coordAt(x, y int) (model.Coord, bool) {
	if x < boardLeft || y < boardTop {
		return model.Coord{}, false
	}
	c := model.Coord{X: (x - boardLeft) / squareWidth, Y: y - boardTop}
	if !c.IsValid() {
		return model.Coord{}, false
	}
	if u.flipped() {
		c = model.Coord{X: 7 - c.X, Y: 7 - c.Y}
	}
	return c, true
}

func (u *ui) click(c model.Coord) {
	if u.covered {
		u.covered = false
		return
	}
	toMove := u.game.ToMove()
	if err := u.game.Select(c); err != nil {
		u.message = err.Error()
		return
	}
	u.message = ""
	u.cursor = c
	if u.game.ToMove() != toMove {
		u.covered = true
	}
}

func (u *ui) promote(t model.PieceType) {
	if err := u.game.ChoosePromotion(t); err != nil {
		u.message = err.Error()
		return
	}
	u.message = ""
	if !u.game.IsOver() {
		u.covered = true
	}
}

// handleKey returns false when the player quits.
func (u *ui) handleKey(ev *tcell.EventKey) bool {
	up, down := -1, 1
	if u.flipped() {
		up, down = 1, -1
	}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		u.moveCursor(0, up)
	case tcell.KeyDown:
		u.moveCursor(0, down)
	case tcell.KeyLeft:
		u.moveCursor(up, 0)
	case tcell.KeyRight:
		u.moveCursor(-up, 0)
	case tcell.KeyEnter:
		u.click(u.cursor)
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			u.click(u.cursor)
		} else if t, ok := promotionKeys[ev.Rune()]; ok && u.game.AwaitingPromotion() {
			u.promote(t)
		}
	}
	return true
}

func (u *ui) moveCursor(dx, dy int) {
	next := u.cursor.Add(model.Coord{X: dx, Y: dy})
	if next.IsValid() {
		u.cursor = next
	}
}

func (u *ui) handleMouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	if down && !u.pressed {
		if c, ok := u.coordAt(ev.Position()); ok {
			u.click(c)
		} else if u.covered {
			u.covered = false
		}
	}
	u.pressed = down
}

func (u *ui) draw(s tcell.Screen) {
	s.Clear()
	if u.covered && !u.game.IsOver() {
		drawText(s, boardLeft, boardTop+3, textStyle,
			fmt.Sprintf("%s to move. Pass the keyboard, then press space.", u.game.ToMove()))
		s.Show()
		return
	}

	view := u.game.View(u.game.ToMove())
	targets := map[model.Coord]bool{}
	for _, c := range view.LegalMoves {
		targets[c] = true
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := model.Coord{X: x, Y: y}
			style := lightStyle
			if (x+y)%2 == 1 {
				style = darkStyle
			}
			switch {
			case c == u.cursor:
				style = cursorStyle
			case view.SelectedSquare != nil && *view.SelectedSquare == c:
				style = selectStyle
			case targets[c]:
				style = targetStyle
			case !view.IsVisible(c):
				style = fogStyle
			}
			cell := "   "
			if p, ok := view.PieceAt(c); ok {
				cell = " " + render.Glyph(p) + " "
			} else if !view.IsVisible(c) {
				cell = " ? "
			}
			px, py := u.screenPos(c)
			drawText(s, px, py, style, cell)
		}
	}
	for i := 0; i < 8; i++ {
		c := model.Coord{X: i, Y: i}
		px, py := u.screenPos(c)
		drawText(s, boardLeft-2, py, textStyle, c.Rank())
		drawText(s, px+1, boardTop+8, textStyle, c.File())
	}

	drawText(s, boardLeft, boardTop+10, textStyle, u.status(view))
	if u.message != "" {
		drawText(s, boardLeft, boardTop+11, textStyle, u.message)
	}
	drawText(s, boardLeft, boardTop+12, textStyle, historyLine(view))
	s.Show()
}

func (u *ui) status(view model.GameView) string {
	switch view.Phase {
	case model.WhiteWin:
		return "White captured the king. Esc to quit."
	case model.BlackWin:
		return "Black captured the king. Esc to quit."
	}
	if view.PromotionSquare != nil {
		return fmt.Sprintf("Promote on %s: q, r, b or n", view.PromotionSquare.Code())
	}
	return fmt.Sprintf("%s to move. Arrows + space or mouse to play, Esc to quit.", view.ToMove)
}

func historyLine(view model.GameView) string {
	notes := make([]string, 0, len(view.MoveHistory))
	for _, ply := range view.MoveHistory {
		notes = append(notes, ply.Notation)
	}
	return strings.Join(notes, " ")
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
