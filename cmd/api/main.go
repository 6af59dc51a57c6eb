package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-pos-kasir/internal/handler"
	"go-pos-kasir/internal/middleware"
	"go-pos-kasir/internal/model"
	"go-pos-kasir/internal/repository"
	"go-pos-kasir/internal/service"
	"go-pos-kasir/internal/ws"
	"go-pos-kasir/pkg/config"
	"go-pos-kasir/pkg/database"
	"go-pos-kasir/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env + Config (.env optional, system env wins)
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: os.Getenv("LOG_LEVEL")})

	// 2. Setup Database
	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := db.AutoMigrate(&model.Category{}, &model.Product{}, &model.Sale{}, &model.AuditLog{}, &model.User{}); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	// 3. Seed default owner user
	seedOwner(db, log)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	auditRepo := repository.NewAuditLogRepo(db)
	userRepo := repository.NewUserRepo(db)
	txm := repository.NewTxManager(db)

	saleService := service.NewSaleService(productRepo, saleRepo, auditRepo, txm, wsHub, log)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, txm, wsHub)
	reportService := service.NewReportService(saleRepo, auditRepo, log)
	authService := service.NewAuthService(userRepo, cfg.JWT)

	saleHandler := handler.NewSaleHandler(saleService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: handler.NewErrorHandler(cfg.App.IsDevelopment(), log),
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes
	requireAuth := middleware.RequireAuth(cfg.JWT.Secret)
	requireOwner := middleware.RequireRole(string(model.RoleOwner))

	// ============ PUBLIC ROUTES ============
	app.Post("/auth/login", authHandler.Login)
	app.Post("/auth/register", authHandler.Register)

	app.Get("/categories", catalogHandler.GetCategories)
	app.Get("/products", catalogHandler.GetProducts)
	app.Get("/products/search", catalogHandler.SearchProducts)
	app.Get("/products/category/:categoryId", catalogHandler.GetProductsByCategory)
	app.Get("/products/:id/stock", catalogHandler.GetStock)

	// ============ PROTECTED ROUTES ============
	app.Post("/transaction", requireAuth, saleHandler.CreateTransaction)
	app.Get("/reports/sales", requireAuth, reportHandler.GetSalesReport)
	app.Put("/products/:id/stock", requireAuth, catalogHandler.AdjustStock)

	// Catalog management (OWNER only)
	app.Post("/categories", requireAuth, requireOwner, catalogHandler.CreateCategory)
	app.Post("/products", requireAuth, requireOwner, catalogHandler.CreateProduct)

	// Audit trail (OWNER only)
	app.Get("/audit-logs", requireAuth, requireOwner, func(c *fiber.Ctx) error {
		entries, err := auditRepo.FindAll()
		if err != nil {
			return err
		}
		return c.JSON(entries)
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Str("env", cfg.App.Env).Msg("server started")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// seedOwner creates the default OWNER user if it doesn't exist
func seedOwner(db *gorm.DB, log *logger.Logger) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("owner@example.com"); err == nil {
		return
	}

	owner := &model.User{
		Email: "owner@example.com",
		Name:  "Store Owner",
		Role:  model.RoleOwner,
	}
	if err := owner.SetPassword("owner123"); err != nil {
		log.Warn().Err(err).Msg("failed to hash owner password")
		return
	}

	if err := userRepo.Create(owner); err != nil {
		log.Warn().Err(err).Msg("failed to create owner user")
		return
	}
	log.Info().Msg("owner user created: owner@example.com / owner123 (change this password)")
}
