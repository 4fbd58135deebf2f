package service

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/benbeisheim/fogchess-backend/internal/storage"
	"github.com/benbeisheim/fogchess-backend/internal/ws"
)

// ErrArchiveDisabled is returned by archive lookups when no archive is configured.
var ErrArchiveDisabled = errors.New("archive disabled")

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(playerID string) (string, error) {
	gameID, err := gs.gameManager.CreateGame(playerID)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameView, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) GetGame(gameID string) (*Session, error) {
	return gs.gameManager.GetGame(gameID)
}

// HandleSelect parses an algebraic square and forwards it to the game.
func (gs *GameService) HandleSelect(gameID, playerID, square string) (model.GameView, error) {
	c, err := model.ParseCoord(square)
	if err != nil {
		return model.GameView{}, err
	}
	return gs.gameManager.Select(gameID, playerID, c)
}

func (gs *GameService) HandlePromote(gameID, playerID string, piece model.PieceType) (model.GameView, error) {
	return gs.gameManager.Promote(gameID, playerID, piece)
}

func (gs *GameService) GetArchivedGame(gameID string) (*storage.GameRecord, error) {
	if gs.gameManager.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return gs.gameManager.archive.LoadGame(gameID)
}

func (gs *GameService) ListArchivedGames(limit int) ([]storage.GameRecord, error) {
	if gs.gameManager.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return gs.gameManager.archive.ListGames(limit)
}

func (gs *GameService) GetStats() (*storage.Stats, error) {
	if gs.gameManager.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return gs.gameManager.archive.LoadStats()
}

// SendError reports err to one player's connection only.
func (gs *GameService) SendError(gameID, playerID string, err error) {
	session, gerr := gs.gameManager.GetGame(gameID)
	if gerr != nil {
		return
	}
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		return
	}
	session.sendTo(playerID, msg)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn Observer) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}
