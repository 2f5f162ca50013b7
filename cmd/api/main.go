package main

import (
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/treadmart/tire-shop-backend/internal/address"
	"github.com/treadmart/tire-shop-backend/internal/cart"
	"github.com/treadmart/tire-shop-backend/internal/catalog"
	"github.com/treadmart/tire-shop-backend/internal/config"
	"github.com/treadmart/tire-shop-backend/internal/contact"
	"github.com/treadmart/tire-shop-backend/internal/order"
	"github.com/treadmart/tire-shop-backend/internal/session"
	"github.com/treadmart/tire-shop-backend/internal/storage"
	"github.com/treadmart/tire-shop-backend/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLog)

	store := storage.Open(cfg.StoragePath)

	catalogService := catalog.NewService(buildCatalogRepo(cfg))
	catalogHandler := catalog.NewHandler(catalogService)

	sessionService := session.NewService(store, session.NewInMemoryDirectory(session.SampleAccounts()))
	sessionHandler := session.NewHandler(sessionService, []byte(cfg.JWTSecret))

	cartEngine := cart.NewEngine(store)
	cartHandler := cart.NewHandler(cartEngine, catalogService)

	orderService := order.NewService(order.NewInMemoryRepository(order.SampleOrders()))
	orderHandler := order.NewHandler(orderService, cartEngine)

	wishlistHandler := wishlist.NewHandler(wishlist.NewRepository(), catalogService)
	addressHandler := address.NewHandler(address.NewInMemoryRepository())
	contactHandler := contact.NewHandler()

	// storefront pages
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"featured":   catalogService.Featured(4),
			"categories": catalogService.Categories(),
			"brands":     catalogService.Brands(),
		})
	})
	app.Get("/about", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "TreadMart",
			"tagline": "Tires for every road, delivered to your door",
			"since":   2015,
		})
	})

	catalogHandler.RegisterPublicRoutes(app)
	sessionHandler.RegisterPublicRoutes(app)
	contactHandler.RegisterPublicRoutes(app)

	// everything below requires a token; anonymous requests are bounced to /login
	app.Use(jwtware.New(jwtware.Config{
		SigningKey:   []byte(cfg.JWTSecret),
		ErrorHandler: session.RedirectAnonymous,
		Filter:       isPublicPath,
	}))

	sessionHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)

	admin := app.Group("/admin", session.RequireAdmin)
	admin.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"orderCounts": orderService.CountsByStatus(),
			"revenue":     orderService.Revenue(),
			"products":    len(catalogService.List()),
			"users":       len(sessionService.Users()),
		})
	})
	catalogHandler.RegisterAdminRoutes(admin)
	sessionHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// buildCatalogRepo picks the product store: Postgres when DATABASE_URL is set,
// otherwise the in-memory catalog seeded from the YAML file.
func buildCatalogRepo(cfg config.Config) catalog.Repository {
	if cfg.DatabaseURL != "" {
		return catalog.NewPostgresRepository(mustOpenDB(cfg.DatabaseURL))
	}
	products, err := catalog.LoadSeed(cfg.SeedPath)
	if err != nil {
		log.Printf("seed file %s unavailable (%v), using built-in catalog", cfg.SeedPath, err)
		products = catalog.DefaultProducts()
	}
	return catalog.NewInMemoryRepository(products)
}

func mustOpenDB(url string) *sql.DB {
	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

// isPublicPath exempts the storefront's browse surface from the JWT check.
func isPublicPath(c *fiber.Ctx) bool {
	p := c.Path()
	switch p {
	case "/", "/shop", "/about", "/contact", "/login", "/register":
		return true
	}
	return strings.HasPrefix(p, "/product/")
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s -> %d (%s)", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}
