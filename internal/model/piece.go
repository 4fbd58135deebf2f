package model

type PieceColor string

const (
	White PieceColor = "white"
	Black PieceColor = "black"
)

func (c PieceColor) Opposite() PieceColor {
	if c == White {
		return Black
	}
	return White
}

func (c PieceColor) IsValid() bool {
	return c == White || c == Black
}

// forward is the row direction this color's pawns advance in.
func (c PieceColor) forward() int {
	if c == White {
		return -1
	}
	return 1
}

func (c PieceColor) pawnHomeRow() int {
	if c == White {
		return 6
	}
	return 1
}

func (c PieceColor) lastRow() int {
	if c == White {
		return 0
	}
	return boardSize - 1
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Notation returns the letter used for the piece in algebraic notation.
// Pawns have none.
func (p PieceType) Notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Value is the conventional material value. It plays no part in move legality.
func (p PieceType) Value() int {
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 1000
	}
	return 0
}

func (p PieceType) IsValid() bool {
	switch p {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return true
	}
	return false
}

// IsPromotionTarget reports whether a pawn may be promoted to p.
func (p PieceType) IsPromotionTarget() bool {
	switch p {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// Piece is an immutable value. Relocating a piece replaces the board entry
// with a new value built by movedTo.
type Piece struct {
	Type     PieceType  `json:"type"`
	Color    PieceColor `json:"color"`
	Position Coord      `json:"position"`
	HasMoved bool       `json:"hasMoved"`
}

func (p Piece) movedTo(c Coord) Piece {
	p.Position = c
	p.HasMoved = true
	return p
}

func (p Piece) isEmpty() bool {
	return p.Type == ""
}
