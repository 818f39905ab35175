package handlers

import (
	"civic/internal/app"
	"civic/internal/logger"
	"civic/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

type LookupsHandler struct {
	Handler
	repo repositories.LookupRepository
}

func NewLookupsHandler(app app.App, router fiber.Router) *LookupsHandler {
	log := logger.New("handlers").File("lookups_handler")
	return &LookupsHandler{
		repo: app.LookupRepo,
		Handler: Handler{
			log:    log,
			router: router,
		},
	}
}

func (h *LookupsHandler) Register() {
	lookups := h.router.Group("/lookups")
	lookups.Get("/recent", h.getRecent)
}

func (h *LookupsHandler) getRecent(c *fiber.Ctx) error {
	log := h.log.Function("getRecent")

	lookups, err := h.repo.GetRecent(c.Context())
	if err != nil {
		log.Er("failed to get recent lookups", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get recent lookups"})
	}

	return c.JSON(fiber.Map{"message": "success", "lookups": lookups})
}
