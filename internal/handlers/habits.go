package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/maeve/habitflow-api/internal/access"
	"github.com/maeve/habitflow-api/internal/database"
	"github.com/maeve/habitflow-api/internal/metrics"
	"github.com/maeve/habitflow-api/internal/middleware"
	"github.com/maeve/habitflow-api/internal/models"
)

// GetHabits returns the habits of the scoped partition: the viewer's own,
// or a shared user's when ?target= is set.
func GetHabits(c *fiber.Ctx) error {
	scope, ok := resolveScope(c)
	if !ok {
		return nil
	}
	if !requireRead(c, scope) {
		return nil
	}

	var habits []models.Habit
	if err := database.DB.Where("user_id = ?", scope.TargetID).
		Order("created_at ASC").
		Find(&habits).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch habits",
		})
	}

	return c.JSON(fiber.Map{
		"habits": habits,
		"role":   scope.Role,
	})
}

func CreateHabit(c *fiber.Ctx) error {
	scope, ok := resolveScope(c)
	if !ok {
		return nil
	}
	if !requireMutate(c, scope) {
		return nil
	}

	var req models.CreateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	habit := models.Habit{
		UserID:   scope.TargetID,
		Name:     req.Name,
		Progress: models.ProgressMap{},
	}

	if err := database.DB.Create(&habit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create habit",
		})
	}

	WS.Broadcast(habit.UserID, scope.ViewerID, WSEvent{
		Type:    EventHabitCreated,
		OwnerID: habit.UserID.String(),
		UserID:  scope.ViewerID.String(),
		Data:    habit,
	})

	return c.Status(fiber.StatusCreated).JSON(habit)
}

// ToggleHabit flips the completion flag for a single day. Only today may
// be toggled; the engine rejects everything else before any write happens.
func ToggleHabit(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	habitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid habit ID",
		})
	}

	scope, ok := resolveScope(c)
	if !ok {
		return nil
	}
	if !requireMutate(c, scope) {
		return nil
	}

	var habit models.Habit
	if err := database.DB.First(&habit, habitID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Habit not found",
		})
	}

	if habit.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": access.ErrAccessDenied.Error(),
		})
	}

	var req models.ToggleHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	today := time.Now()
	day := today
	if req.Date != "" {
		day, err = time.Parse(metrics.DayKeyLayout, req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid date, expected YYYY-MM-DD",
			})
		}
	}

	if err := metrics.ToggleCompletion(&habit, day, today); err != nil {
		if errors.Is(err, metrics.ErrInvalidDay) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to toggle habit",
		})
	}

	if err := database.DB.Save(&habit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save habit",
		})
	}

	WS.Broadcast(habit.UserID, userID, WSEvent{
		Type:    EventHabitUpdated,
		OwnerID: habit.UserID.String(),
		UserID:  userID.String(),
		Data:    habit,
	})

	return c.JSON(habit)
}

func DeleteHabit(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	habitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid habit ID",
		})
	}

	scope, ok := resolveScope(c)
	if !ok {
		return nil
	}
	if !requireMutate(c, scope) {
		return nil
	}

	var habit models.Habit
	if err := database.DB.First(&habit, habitID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Habit not found",
		})
	}

	if habit.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": access.ErrAccessDenied.Error(),
		})
	}

	if err := database.DB.Delete(&habit).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete habit",
		})
	}

	WS.Broadcast(habit.UserID, userID, WSEvent{
		Type:    EventHabitDeleted,
		OwnerID: habit.UserID.String(),
		UserID:  userID.String(),
		Data:    fiber.Map{"id": habit.ID},
	})

	return c.SendStatus(fiber.StatusNoContent)
}
