package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/maeve/habitflow-api/internal/handlers"
	"github.com/maeve/habitflow-api/internal/middleware"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)
	auth.Post("/google", handlers.GoogleLogin)

	// Share-readable routes: authenticated owners and anonymous visitors
	// of a shared tracker both land here; ?target= selects the partition.
	shared := api.Group("/", middleware.OptionalAuth())
	shared.Get("/users/:id", handlers.GetUserProfile)
	shared.Get("/habits", handlers.GetHabits)
	shared.Get("/goals", handlers.GetGoals)
	shared.Get("/analysis", handlers.GetAnalysis)
	shared.Get("/heatmap", handlers.GetHeatmap)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)
	protected.Put("/me", handlers.UpdateProfile)

	protected.Post("/habits", handlers.CreateHabit)
	protected.Post("/habits/:id/toggle", handlers.ToggleHabit)
	protected.Delete("/habits/:id", handlers.DeleteHabit)

	protected.Post("/goals", handlers.CreateGoal)
	protected.Post("/goals/reap", handlers.ReapGoals)
	protected.Delete("/goals/:id", handlers.DeleteGoal)

	// WebSocket for real-time tracker updates
	app.Use("/ws", handlers.WebSocketUpgrade())
	app.Get("/ws/tracker/:id", websocket.New(handlers.HandleWebSocket))
}
