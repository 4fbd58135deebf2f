package controller

import (
	"errors"
	"strconv"

	"github.com/benbeisheim/fogchess-backend/internal/middleware"
	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/benbeisheim/fogchess-backend/internal/render"
	"github.com/benbeisheim/fogchess-backend/internal/service"
	"github.com/benbeisheim/fogchess-backend/internal/storage"
	"github.com/benbeisheim/fogchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const defaultSquareSize = 64

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// statusFor maps service and rule errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, storage.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotOwner):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrInvalidSquare), errors.Is(err, model.ErrInvalidPromotion):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrGameOver), errors.Is(err, model.ErrPromotionPending),
		errors.Is(err, model.ErrNoPendingPromotion):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrArchiveDisabled):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame(middleware.PlayerID(c))
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) Select(c *fiber.Ctx) error {
	var req ws.SelectPayload
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	view, err := gc.gameService.HandleSelect(c.Params("gameId"), middleware.PlayerID(c), req.Square)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	var req ws.PromotePayload
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	view, err := gc.gameService.HandlePromote(c.Params("gameId"), middleware.PlayerID(c), req.Piece)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(view)
}

// BoardSVG renders the side to move's view. ?size= sets the square size.
func (gc *GameController) BoardSVG(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	size := c.QueryInt("size", defaultSquareSize)
	if size < 16 || size > 256 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "size must be between 16 and 256"})
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	render.BoardSVG(c.Response().BodyWriter(), view, size)
	return nil
}

func (gc *GameController) GetArchivedGame(c *fiber.Ctx) error {
	rec, err := gc.gameService.GetArchivedGame(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(rec)
}

func (gc *GameController) ListArchivedGames(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid limit"})
	}
	records, err := gc.gameService.ListArchivedGames(limit)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(records)
}

func (gc *GameController) GetStats(c *fiber.Ctx) error {
	stats, err := gc.gameService.GetStats()
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"games":         stats.Games,
		"white_wins":    stats.WhiteWins,
		"black_wins":    stats.BlackWins,
		"average_plies": stats.AveragePlies(),
	})
}

// Register mounts the REST routes on router.
func (gc *GameController) Register(router fiber.Router) {
	gameRoutes := router.Group("/game")
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Post("/:gameId/select", gc.Select)
	gameRoutes.Post("/:gameId/promote", gc.Promote)
	gameRoutes.Get("/:gameId/board.svg", gc.BoardSVG)

	archiveRoutes := router.Group("/archive")
	archiveRoutes.Get("/", gc.ListArchivedGames)
	archiveRoutes.Get("/stats", gc.GetStats)
	archiveRoutes.Get("/:gameId", gc.GetArchivedGame)
}
