package model

// Move is a self-describing pseudo-legal move. Mover, CaptureTarget and
// CastlingRook hold the pre-move piece values.
type Move struct {
	From          Coord  `json:"from"`
	To            Coord  `json:"to"`
	Mover         Piece  `json:"mover"`
	CaptureTarget *Piece `json:"captureTarget,omitempty"`
	CastlingRook  *Piece `json:"castlingRook,omitempty"`
	// PendingPromotion marks a pawn move onto the last row whose promotion
	// type has not been chosen yet.
	PendingPromotion bool `json:"pendingPromotion,omitempty"`
	// Promotion is the chosen piece type, empty unless promoting.
	Promotion PieceType `json:"promotion,omitempty"`
}

func (m Move) IsCapture() bool {
	return m.CaptureTarget != nil
}

func (m Move) IsCastle() bool {
	return m.CastlingRook != nil
}

func (m Move) IsEnPassant() bool {
	return m.CaptureTarget != nil && m.CaptureTarget.Position != m.To
}

// Ply is one finished turn as recorded by a Game.
type Ply struct {
	Color    PieceColor `json:"color"`
	From     Coord      `json:"from"`
	To       Coord      `json:"to"`
	Captured *Piece     `json:"capturedPiece,omitempty"`
	Notation string     `json:"notation"`
}

type SimpleMove struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
}
