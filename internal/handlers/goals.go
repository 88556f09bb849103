package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/maeve/habitflow-api/internal/access"
	"github.com/maeve/habitflow-api/internal/database"
	"github.com/maeve/habitflow-api/internal/metrics"
	"github.com/maeve/habitflow-api/internal/middleware"
	"github.com/maeve/habitflow-api/internal/models"
)

// GoalWithStatus pairs a goal with its countdown as of the request.
type GoalWithStatus struct {
	models.Goal
	Status metrics.GoalProgress `json:"status"`
}

// GetGoals returns the scoped partition's goals ordered most urgent first.
func GetGoals(c *fiber.Ctx) error {
	scope, ok := resolveScope(c)
	if !ok {
		return nil
	}
	if !requireRead(c, scope) {
		return nil
	}

	var goals []models.Goal
	if err := database.DB.Where("user_id = ?", scope.TargetID).
		Order("created_at ASC").
		Find(&goals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch goals",
		})
	}

	today := time.Now()
	ordered := metrics.OrderGoalsByUrgency(goals, today)
	result := make([]GoalWithStatus, len(ordered))
	for i, goal := range ordered {
		result[i] = GoalWithStatus{Goal: goal, Status: metrics.GoalStatus(goal, today)}
	}

	return c.JSON(fiber.Map{
		"goals": result,
		"role":  scope.Role,
	})
}

func CreateGoal(c *fiber.Ctx) error {
	scope, ok := resolveScope(c)
	if !ok {
		return nil
	}
	if !requireMutate(c, scope) {
		return nil
	}

	var req models.CreateGoalRequest
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

	if err := metrics.ValidateGoalDuration(req.TargetDays); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	goal := models.Goal{
		UserID:     scope.TargetID,
		Name:       req.Name,
		TargetDays: req.TargetDays,
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create goal",
		})
	}

	WS.Broadcast(goal.UserID, scope.ViewerID, WSEvent{
		Type:    EventGoalCreated,
		OwnerID: goal.UserID.String(),
		UserID:  scope.ViewerID.String(),
		Data:    goal,
	})

	return c.Status(fiber.StatusCreated).JSON(goal)
}

func DeleteGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	scope, ok := resolveScope(c)
	if !ok {
		return nil
	}
	if !requireMutate(c, scope) {
		return nil
	}

	var goal models.Goal
	if err := database.DB.First(&goal, goalID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}

	if goal.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": access.ErrAccessDenied.Error(),
		})
	}

	if err := database.DB.Delete(&goal).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete goal",
		})
	}

	WS.Broadcast(goal.UserID, userID, WSEvent{
		Type:    EventGoalDeleted,
		OwnerID: goal.UserID.String(),
		UserID:  userID.String(),
		Data:    fiber.Map{"id": goal.ID},
	})

	return c.SendStatus(fiber.StatusNoContent)
}

// ReapGoals deletes the caller's expired goals. Expiry is detected by the
// engine but the deletion happens only here, so reads stay free of side
// effects and the operation is idempotent: reaping twice deletes nothing
// the second time. Store failures are surfaced per goal, never swallowed —
// a goal whose delete failed would otherwise sit visibly active after its
// time ran out.
func ReapGoals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var goals []models.Goal
	if err := database.DB.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch goals",
		})
	}

	expired := metrics.ExpiredGoals(goals, time.Now())

	reaped := make([]uuid.UUID, 0, len(expired))
	failed := make([]uuid.UUID, 0)
	for _, goal := range expired {
		if err := database.DB.Delete(&goal).Error; err != nil {
			failed = append(failed, goal.ID)
			continue
		}
		reaped = append(reaped, goal.ID)
	}

	if len(reaped) > 0 {
		WS.Broadcast(userID, userID, WSEvent{
			Type:    EventGoalsReaped,
			OwnerID: userID.String(),
			UserID:  userID.String(),
			Data:    fiber.Map{"goalIds": reaped},
		})
	}

	if len(failed) > 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":  "Failed to delete some expired goals",
			"reaped": reaped,
			"failed": failed,
		})
	}

	return c.JSON(fiber.Map{"reaped": reaped})
}
