package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/benbeisheim/fogchess-backend/internal/storage"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Archive stores finished games. *storage.Storage implements it.
type Archive interface {
	SaveGame(rec storage.GameRecord) error
	LoadGame(id string) (*storage.GameRecord, error)
	ListGames(limit int) ([]storage.GameRecord, error)
	LoadStats() (*storage.Stats, error)
}

type GameManager struct {
	games   map[string]*Session
	archive Archive
	mu      sync.RWMutex
}

func NewGameManager(archive Archive) *GameManager {
	return &GameManager{
		games:   make(map[string]*Session),
		archive: archive,
	}
}

func (gm *GameManager) CreateGame(ownerID string) (string, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gameID := uuid.New().String()
	if _, exists := gm.games[gameID]; exists {
		return "", fmt.Errorf("game %s already exists", gameID)
	}
	gm.games[gameID] = NewSession(gameID, ownerID)
	log.Infof("created game %s for player %s", gameID, ownerID)
	return gameID, nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return session, nil
}

func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.games, gameID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameView, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return session.View(), nil
}

// Select forwards a square click to the game and pushes the new state.
func (gm *GameManager) Select(gameID, playerID string, c model.Coord) (model.GameView, error) {
	return gm.update(gameID, playerID, func(g *model.Game) error {
		return g.Select(c)
	})
}

// Promote resolves the pending promotion and pushes the new state.
func (gm *GameManager) Promote(gameID, playerID string, t model.PieceType) (model.GameView, error) {
	return gm.update(gameID, playerID, func(g *model.Game) error {
		return g.ChoosePromotion(t)
	})
}

func (gm *GameManager) update(gameID, playerID string, f func(g *model.Game) error) (model.GameView, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return session.apply(playerID, f, func(g *model.Game) {
		gm.archiveGame(session, g)
	})
}

// archiveGame writes a finished game to the archive. Failures are logged;
// the live session stays authoritative.
func (gm *GameManager) archiveGame(session *Session, g *model.Game) {
	if gm.archive == nil {
		return
	}
	winner, _ := g.Winner()
	plies := g.Plies()
	moves := make([]string, 0, len(plies))
	for _, ply := range plies {
		moves = append(moves, ply.Notation)
	}

	rec := storage.GameRecord{
		ID:         session.ID,
		Winner:     winner,
		Moves:      moves,
		StartedAt:  session.StartedAt,
		FinishedAt: time.Now(),
	}
	if err := gm.archive.SaveGame(rec); err != nil {
		log.Errorf("failed to archive game %s: %v", session.ID, err)
		return
	}
	log.Infof("archived game %s, %s won in %d plies", session.ID, winner, len(moves))
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn Observer) error {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	if err := session.addConnection(playerID, conn); err != nil {
		return err
	}
	session.broadcastCurrent()
	return nil
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	session.removeConnection(playerID)
}
