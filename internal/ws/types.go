package ws

import (
	"encoding/json"

	"github.com/benbeisheim/fogchess-backend/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeSelect    MessageType = "select"
	MessageTypePromote   MessageType = "promote"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SelectPayload is a click on a square, e.g. {"square":"e2"}.
type SelectPayload struct {
	Square string `json:"square"`
}

// PromotePayload picks the piece a pending pawn becomes.
type PromotePayload struct {
	Piece model.PieceType `json:"piece"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage wraps payload in a typed envelope.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: data}, nil
}
