package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/fogchess-backend/internal/middleware"
	"github.com/benbeisheim/fogchess-backend/internal/service"
	"github.com/benbeisheim/fogchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("failed to register connection for player %s in game %s: %v", playerID, gameID, err)
		c.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
		)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error for player %s: %v", playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.gameService.SendError(gameID, playerID, fmt.Errorf("parse error: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.gameService.SendError(gameID, playerID, err)
		}
	}
}

// handleMessage applies a client message. The resulting state reaches every
// connection, this one included, through the session broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		var sel ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &sel); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleSelect(gameID, playerID, sel.Square)
		return err

	case ws.MessageTypePromote:
		var promo ws.PromotePayload
		if err := json.Unmarshal(msg.Payload, &promo); err != nil {
			return err
		}
		_, err := wsc.gameService.HandlePromote(gameID, playerID, promo.Piece)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
