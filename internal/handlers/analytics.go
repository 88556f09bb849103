package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maeve/habitflow-api/internal/database"
	"github.com/maeve/habitflow-api/internal/metrics"
	"github.com/maeve/habitflow-api/internal/models"
)

// GetAnalysis returns the analysis dashboard data for the scoped partition:
// a per-habit discipline summary plus the rolling done/missed matrix with
// aggregate daily counts. The window size defaults to 7 days; the tracker
// grid requests 5.
func GetAnalysis(c *fiber.Ctx) error {
	scope, ok := resolveScope(c)
	if !ok {
		return nil
	}
	if !requireRead(c, scope) {
		return nil
	}

	window, _ := strconv.Atoi(c.Query("window", "7"))
	if window < 1 {
		window = 7
	}
	if window > 90 {
		window = 90
	}

	var habits []models.Habit
	if err := database.DB.Where("user_id = ?", scope.TargetID).
		Order("created_at ASC").
		Find(&habits).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch habits",
		})
	}

	today := time.Now()
	summaries := make([]metrics.HabitSummary, len(habits))
	for i, habit := range habits {
		summaries[i] = metrics.Summarize(habit, today)
	}

	return c.JSON(fiber.Map{
		"summaries": summaries,
		"window":    metrics.BuildWindow(habits, today, window),
		"role":      scope.Role,
	})
}

// GetHeatmap returns per-day completion counts from the partition owner's
// join date through today, bucketed into the five heatmap shades.
func GetHeatmap(c *fiber.Ctx) error {
	scope, ok := resolveScope(c)
	if !ok {
		return nil
	}
	if !requireRead(c, scope) {
		return nil
	}

	var owner models.User
	if err := database.DB.First(&owner, scope.TargetID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var habits []models.Habit
	if err := database.DB.Where("user_id = ?", scope.TargetID).
		Find(&habits).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch habits",
		})
	}

	today := time.Now()
	return c.JSON(fiber.Map{
		"days":   metrics.BuildHeatmap(habits, owner.CreatedAt, today),
		"joined": owner.CreatedAt,
		"role":   scope.Role,
	})
}
