package facet

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes must run before the product detail route so
// "filters" is not captured as an EAN parameter.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products/filters", h.getFilters)
}

func (h *Handler) getFilters(c *fiber.Ctx) error {
	facets, err := h.service.GetFacets(c.UserContext())
	if err != nil {
		log.Printf("facets: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "filter catalog temporarily unavailable",
		})
	}
	return c.JSON(facets)
}
