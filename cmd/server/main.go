package main

import (
	"fmt"

	"github.com/benbeisheim/fogchess-backend/internal/config"
	"github.com/benbeisheim/fogchess-backend/internal/controller"
	"github.com/benbeisheim/fogchess-backend/internal/middleware"
	"github.com/benbeisheim/fogchess-backend/internal/service"
	"github.com/benbeisheim/fogchess-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run serves until the listener fails, closing the archive on the way out.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	archive, err := storage.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := archive.Close(); err != nil {
			log.Errorf("close archive: %v", err)
		}
	}()
	if cfg.DataDir == "" {
		log.Info("game archive is in memory")
	} else {
		log.Infof("game archive at %s", cfg.DataDir)
	}

	app := fiber.New(fiber.Config{AppName: "fogchess"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager(archive)
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         cfg.Origins(),
	}))

	// Set up REST routes
	gameController.Register(app.Group("/api", middleware.EnsurePlayerID()))

	if err := app.Listen(cfg.Addr); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
