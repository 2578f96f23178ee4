package search

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/resellerhub/storefront-backend/internal/product"
)

func newTestApp(products []product.Product) *fiber.App {
	app := fiber.New()
	NewHandler(NewService(&InMemoryRepository{Products: products})).RegisterPublicRoutes(app)
	return app
}

func TestQuickSearchShortTermIsClientError(t *testing.T) {
	app := newTestApp(testProducts())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/search?q=d", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(body.Error, "at least 2 characters") {
		t.Errorf("error = %q", body.Error)
	}
}

func TestQuickSearchReturnsRankedResults(t *testing.T) {
	app := newTestApp(testProducts())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/search?q=drill", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Query   string            `json:"query"`
		Results []product.Product `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Query != "drill" {
		t.Errorf("query = %q", body.Query)
	}
	if len(body.Results) != 3 || body.Results[0].Name != "Cordless Drill" {
		t.Errorf("results = %+v", body.Results)
	}
}

func TestQuickSearchHidesPriceWithoutToken(t *testing.T) {
	price := 129.99
	app := newTestApp([]product.Product{
		{EAN: "4006381333931", Name: "Cordless Drill", Price: &price},
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/search?q=drill", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	var body struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Results) != 1 {
		t.Fatalf("results = %d", len(body.Results))
	}
	if _, ok := body.Results[0]["price"]; ok {
		t.Error("price should be omitted for anonymous viewers")
	}
	if body.Results[0]["priceStatus"] != "unauthenticated" {
		t.Errorf("priceStatus = %v", body.Results[0]["priceStatus"])
	}
}

func TestQuickSearchEmptyResultIsSuccess(t *testing.T) {
	app := newTestApp(testProducts())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/search?q=zzzz", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Results []product.Product `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Results) != 0 {
		t.Errorf("results = %+v", body.Results)
	}
}
