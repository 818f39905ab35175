package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"civic/cmd/migration/initialize"
	"civic/cmd/migration/seed"
	"civic/internal/app"
	"civic/internal/handlers"
	"civic/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main")

	app, err := app.New()
	if err != nil {
		log.Er("failed to create app", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := initialize.InitializeTables(app.Database.SQL, app.Config, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := seed.Seed(app.Database.SQL, app.Config, log); err != nil {
			log.Er("failed to seed database", err)
			os.Exit(1)
		}
		return
	}

	server := fiber.New(fiber.Config{
		AppName:      "civic",
		ErrorHandler: errorHandler(log),
	})

	server.Use(recover.New())
	server.Use(cors.New())

	if err := handlers.Router(server, app); err != nil {
		log.Er("failed to mount routes", err)
		os.Exit(1)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down server")
		if err := server.Shutdown(); err != nil {
			log.Er("failed to shut down server", err)
		}
	}()

	log.Info("Starting server", "port", app.Config.ServerPort)
	if err := server.Listen(":" + app.Config.ServerPort); err != nil {
		log.Er("server stopped", err)
		os.Exit(1)
	}
}

func errorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}
		log.Er("request failed", err, "path", c.Path(), "status", code)
		return c.Status(code).JSON(fiber.Map{"message": err.Error()})
	}
}
