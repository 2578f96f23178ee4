package product

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

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
	app.Get("/api/products", h.getProducts)
	// registered after the static /api/products/* routes in main to avoid
	// the :ean param swallowing them
	app.Get("/api/products/:ean", h.getProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	f, warnings := parseFilterRequest(c)

	page, err := h.service.List(c.UserContext(), f)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "product catalog temporarily unavailable",
		})
	}

	viewer := auth.ViewerFromCtx(c)
	for i := range page.Products {
		page.Products[i].Sanitize(viewer)
	}
	page.Warnings = warnings
	return c.JSON(page)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	ean := c.Params("ean")
	p, err := h.service.GetByEAN(c.UserContext(), ean)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "product catalog temporarily unavailable",
		})
	}
	viewer := auth.ViewerFromCtx(c)
	p.Sanitize(viewer)
	return c.JSON(p)
}

// parseFilterRequest maps query parameters onto a FilterRequest. A malformed
// dimension is skipped with a warning, never a rejected request.
func parseFilterRequest(c *fiber.Ctx) (FilterRequest, []string) {
	var f FilterRequest
	var warnings []string

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		if utf8.RuneCountInString(q) < MinSearchLength {
			warnings = append(warnings, fmt.Sprintf("search query needs at least %d characters, ignored", MinSearchLength))
		} else {
			f.Search = q
		}
	}

	for _, raw := range splitCSV(c.Query("categories")) {
		id, err := strconv.Atoi(raw)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid category id %q, ignored", raw))
			continue
		}
		f.CategoryIDs = append(f.CategoryIDs, id)
	}

	f.Brands = splitCSV(c.Query("brands"))

	if raw := c.Query("priceMin"); raw != "" {
		if v, err := parsePrice(raw); err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid priceMin %q, ignored", raw))
		} else {
			f.PriceMin = &v
		}
	}
	if raw := c.Query("priceMax"); raw != "" {
		if v, err := parsePrice(raw); err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid priceMax %q, ignored", raw))
		} else {
			f.PriceMax = &v
		}
	}

	f.Featured = strings.EqualFold(c.Query("featured"), "true")

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		f.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		f.Limit = v
	}
	f.SortBy = c.Query("sortBy")
	f.Order = c.Query("order")

	return f, warnings
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parsePrice accepts both dot and comma decimal separators, the way prices
// arrive from European storefront clients.
func parsePrice(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
}
