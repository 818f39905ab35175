package handlers

import (
	"civic/internal/app"
	compassController "civic/internal/controllers/compass"
	"civic/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type CompassHandler struct {
	Handler
	controller compassController.CompassController
}

func NewCompassHandler(app app.App, router fiber.Router) *CompassHandler {
	log := logger.New("handlers").File("compass_handler")
	return &CompassHandler{
		controller: *app.CompassController,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *CompassHandler) Register() {
	compass := h.router.Group("/compass")
	compass.Get("/politicians/:id", h.getChart)
}

func (h *CompassHandler) getChart(c *fiber.Ctx) error {
	log := h.log.Function("getChart")

	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "politician ID is required"})
	}

	chart, err := h.controller.ChartFor(c.Context(), id)
	if err != nil {
		log.Er("failed to build compass chart", err, "id", id)
		return c.Status(fiber.StatusBadGateway).
			JSON(fiber.Map{"message": "failed to build compass chart", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success", "chart": chart})
}
