package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"fleetman/internal/config"
	"fleetman/internal/http/handlers"
	applog "fleetman/internal/log"
	"fleetman/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg)

	// Status page
	app.Get("/", deps.DashboardHandler.Home)

	// API
	api := app.Group("/api")
	api.Get("/dashboard/stats", deps.DashboardHandler.Stats)

	// Vehicles & validation (validate-all before the :id routes)
	api.Post("/vehicles/validate-all", deps.ValidationHandler.ValidateAll)
	api.Get("/vehicles", deps.VehicleHandler.List)
	api.Post("/vehicles", deps.VehicleHandler.Create)
	api.Get("/vehicles/:id/validate", deps.ValidationHandler.Validate)
	api.Post("/vehicles/:id/validate", deps.ValidationHandler.Validate)
	api.Get("/vehicles/:id", deps.VehicleHandler.Get)
	api.Put("/vehicles/:id", deps.VehicleHandler.Update)
	api.Patch("/vehicles/:id", deps.VehicleHandler.Update)
	api.Delete("/vehicles/:id", deps.VehicleHandler.Delete)

	// Parts
	api.Get("/parts", deps.PartHandler.List)
	api.Post("/parts", deps.PartHandler.Create)
	api.Put("/parts/:id", deps.PartHandler.Update)
	api.Patch("/parts/:id", deps.PartHandler.Update)
	api.Delete("/parts/:id", deps.PartHandler.Delete)

	// Maintenance
	api.Get("/maintenance", deps.MaintenanceHandler.List)
	api.Get("/maintenance/vehicle/:vehicleId", deps.MaintenanceHandler.ListByVehicle)
	api.Post("/maintenance", deps.MaintenanceHandler.Create)
	api.Patch("/maintenance/:id", deps.MaintenanceHandler.Update)
	api.Delete("/maintenance/:id", deps.MaintenanceHandler.Delete)

	// Alerts
	api.Get("/alerts", deps.AlertHandler.List)
	api.Post("/alerts", deps.AlertHandler.Create)
	api.Put("/alerts/:id/read", deps.AlertHandler.MarkRead)
	api.Delete("/alerts/:id", deps.AlertHandler.Delete)

	// Chat assistant
	api.Post("/chat/query", deps.ChatHandler.Query)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
