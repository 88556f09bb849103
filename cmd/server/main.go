package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/maeve/habitflow-api/internal/config"
	"github.com/maeve/habitflow-api/internal/database"
	"github.com/maeve/habitflow-api/internal/routes"
)

func main() {
	// .env is optional; real deployments set env vars directly
	godotenv.Load()

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "habitflow-api",
	})

	app.Use(logger.New())
	app.Use(cors.New())

	routes.Setup(app)

	log.Fatal(app.Listen(":" + cfg.Port))
}
