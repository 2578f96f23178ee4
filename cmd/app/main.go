package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/resellerhub/storefront-backend/internal/account"
	"github.com/resellerhub/storefront-backend/internal/category"
	"github.com/resellerhub/storefront-backend/internal/config"
	"github.com/resellerhub/storefront-backend/internal/facet"
	"github.com/resellerhub/storefront-backend/internal/featured"
	"github.com/resellerhub/storefront-backend/internal/product"
	"github.com/resellerhub/storefront-backend/internal/search"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	app.Use(requestLogger)
	setupCORS(app)

	// Every catalog route is public; the token only unlocks price and
	// stock fields. A missing or invalid token downgrades the request to
	// an anonymous view instead of rejecting it.
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Next()
		},
	}))

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	accountService := account.NewService(account.NewPostgresRepository(db))
	account.NewHandler(accountService, cfg.JWTSecret).RegisterPublicRoutes(app)

	categoryService := category.NewService(category.NewPostgresRepository(db))
	categoryHandler := category.NewHandler(categoryService)
	categoryHandler.RegisterPublicRoutes(app)

	// facet, featured and search routes go first so their static paths are
	// not swallowed by the product detail's :ean parameter
	facetService := facet.NewService(facet.NewPostgresRepository(db), categoryService)
	facet.NewHandler(facetService).RegisterPublicRoutes(app)

	featuredService := featured.NewService(featured.NewPostgresRepository(db))
	featured.NewHandler(featuredService).RegisterPublicRoutes(app)

	searchService := search.NewService(search.NewPostgresRepository(db))
	search.NewHandler(searchService).RegisterPublicRoutes(app)

	productService := product.NewService(product.NewPostgresRepository(db), categoryService)
	product.NewHandler(productService).RegisterPublicRoutes(app)

	log.Printf("listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s %d %v", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}
