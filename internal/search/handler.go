package search

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/resellerhub/storefront-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/search", h.quickSearch)
}

func (h *Handler) quickSearch(c *fiber.Ctx) error {
	term := c.Query("q")

	results, err := h.service.Quick(c.UserContext(), term)
	if errors.Is(err, ErrQueryTooShort) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "search query must be at least 2 characters",
		})
	}
	if err != nil {
		log.Printf("search: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "search temporarily unavailable",
		})
	}

	viewer := auth.ViewerFromCtx(c)
	for i := range results {
		results[i].Sanitize(viewer)
	}

	return c.JSON(fiber.Map{
		"query":   term,
		"results": results,
	})
}
