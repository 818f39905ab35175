package handlers

import (
	"civic/internal/app"
	"civic/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	log    logger.Logger
	router fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	setupWebSocketRoute(router, app)

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewOfficialsHandler(*app, api).Register()
	NewCompassHandler(*app, api).Register()
	NewLookupsHandler(*app, api).Register()

	return nil
}

// setupWebSocketRoute mounts the live phase stream: the client sends a
// location query and receives every FetchState transition as a JSON
// frame.
func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	stream := NewPhaseStream(app.ResolverService)
	router.Get("/ws", websocket.New(stream.Handle))
}
