package handlers

import (
	"civic/internal/app"
	officialsController "civic/internal/controllers/officials"
	"civic/internal/logger"
	. "civic/internal/models"
	"civic/internal/services"

	"github.com/gofiber/fiber/v2"
)

type OfficialsHandler struct {
	Handler
	controller officialsController.OfficialsController
}

func NewOfficialsHandler(app app.App, router fiber.Router) *OfficialsHandler {
	log := logger.New("handlers").File("officials_handler")
	return &OfficialsHandler{
		controller: *app.OfficialsController,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *OfficialsHandler) Register() {
	officials := h.router.Group("/officials")
	officials.Get("/", h.lookup)
	officials.Get("/:id", h.getOfficial)
}

func (h *OfficialsHandler) lookup(c *fiber.Ctx) error {
	log := h.log.Function("lookup")

	query := c.Query("q")
	if services.ParseQuery(query).Kind == QueryInvalid {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "a ZIP code or address query is required"})
	}

	includeCandidates := c.QueryBool("candidates")

	result, err := h.controller.Lookup(c.Context(), query, includeCandidates)
	if err != nil {
		log.Er("failed to look up officials", err, "query", query)
		return c.Status(fiber.StatusBadGateway).
			JSON(fiber.Map{"message": "failed to look up officials", "error": err.Error()})
	}

	if result.Phase == PhaseError {
		status := fiber.StatusBadGateway
		if result.Error == services.WarmingTimeoutMessage {
			status = fiber.StatusGatewayTimeout
		}
		return c.Status(status).
			JSON(fiber.Map{"message": "error", "error": result.Error})
	}

	return c.JSON(fiber.Map{"message": "success", "result": result})
}

func (h *OfficialsHandler) getOfficial(c *fiber.Ctx) error {
	log := h.log.Function("getOfficial")

	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "official ID is required"})
	}

	official, err := h.controller.GetOfficial(c.Context(), id)
	if err != nil {
		log.Er("failed to get official", err, "id", id)
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "official not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "official": official})
}
