package featured

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/resellerhub/storefront-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes must run before the product detail route so
// "featured" is not captured as an EAN parameter.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products/featured", h.getFeatured)
}

func (h *Handler) getFeatured(c *fiber.Ctx) error {
	limit := 0
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil {
			limit = v
		}
	}

	items, err := h.service.List(c.UserContext(), limit)
	if err != nil {
		log.Printf("featured: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "featured products temporarily unavailable",
		})
	}

	viewer := auth.ViewerFromCtx(c)
	for i := range items {
		items[i].Sanitize(viewer)
	}
	return c.JSON(items)
}
