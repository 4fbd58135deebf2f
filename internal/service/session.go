package service

import (
	"sync"
	"time"

	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/benbeisheim/fogchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Observer receives state pushes. *websocket.Conn satisfies it.
type Observer interface {
	WriteJSON(v interface{}) error
}

// The connections watching a specific game
type GameConnections struct {
	connections map[string]Observer // playerID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Observer),
	}
}

// Session is one hot-seat game: its owner drives both colors from one
// screen, and the view served is always that of the side to move.
type Session struct {
	ID        string
	OwnerID   string
	StartedAt time.Time

	mu          sync.Mutex
	game        *model.Game
	archived    bool
	connections *GameConnections
}

func NewSession(id, ownerID string) *Session {
	return &Session{
		ID:          id,
		OwnerID:     ownerID,
		StartedAt:   time.Now(),
		game:        model.NewGame(),
		connections: NewGameConnections(),
	}
}

// View returns the fog-filtered view for the side to move.
func (s *Session) View() model.GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.View(s.game.ToMove())
}

// ViewFor returns the view of one particular color.
func (s *Session) ViewFor(color model.PieceColor) model.GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.View(color)
}

// apply runs f against the game under the session lock. When f finishes the
// game for the first time, finished is called with it. The resulting view is
// broadcast before the lock is released, so observers see views in order.
func (s *Session) apply(playerID string, f func(g *model.Game) error, finished func(g *model.Game)) (model.GameView, error) {
	if playerID != s.OwnerID {
		return model.GameView{}, ErrNotOwner
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := f(s.game); err != nil {
		return model.GameView{}, err
	}
	view := s.game.View(s.game.ToMove())
	if s.game.IsOver() && !s.archived {
		s.archived = true
		finished(s.game)
	}
	s.broadcastState(view)
	return view, nil
}

// broadcastCurrent pushes the current view under the session lock.
func (s *Session) broadcastCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcastState(s.game.View(s.game.ToMove()))
}

func (s *Session) addConnection(playerID string, conn Observer) error {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if _, exists := s.connections.connections[playerID]; exists {
		return ErrConnectionExists
	}
	s.connections.connections[playerID] = conn
	log.Infof("registered connection for player %s in game %s", playerID, s.ID)
	return nil
}

func (s *Session) removeConnection(playerID string) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if _, exists := s.connections.connections[playerID]; exists {
		delete(s.connections.connections, playerID)
		log.Infof("unregistered connection for player %s in game %s", playerID, s.ID)
	}
}

// broadcastState pushes view to every connection. Writes happen under the
// connections lock so a socket never sees concurrent writers.
func (s *Session) broadcastState(view model.GameView) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, view)
	if err != nil {
		log.Errorf("failed to marshal state for game %s: %v", s.ID, err)
		return
	}

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	for playerID, conn := range s.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("failed to send state to player %s: %v", playerID, err)
			delete(s.connections.connections, playerID)
			continue
		}
		log.Debugf("sent state to player %s", playerID)
	}
}

// sendTo writes msg to a single connection.
func (s *Session) sendTo(playerID string, msg ws.Message) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	conn, exists := s.connections.connections[playerID]
	if !exists {
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Warnf("failed to send to player %s: %v", playerID, err)
		delete(s.connections.connections, playerID)
	}
}
