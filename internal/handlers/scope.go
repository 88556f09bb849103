package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/maeve/habitflow-api/internal/access"
	"github.com/maeve/habitflow-api/internal/middleware"
)

// resolveScope builds the access scope for the current request from the
// authenticated viewer (if any) and the optional ?target= share parameter.
// The returned bool is false when the target parameter is present but not a
// valid UUID, in which case a 400 has already been written.
func resolveScope(c *fiber.Ctx) (access.Scope, bool) {
	viewerID := middleware.GetUserID(c)

	targetID := uuid.Nil
	if target := c.Query("target"); target != "" {
		id, err := uuid.Parse(target)
		if err != nil {
			c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid target ID",
			})
			return access.Scope{}, false
		}
		targetID = id
	}

	return access.Resolve(viewerID, targetID), true
}

// requireRead rejects the request with 401 when the scope may not read any
// partition (no viewer and no share target).
func requireRead(c *fiber.Ctx, scope access.Scope) bool {
	if !scope.CanRead() {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
		return false
	}
	return true
}

// requireMutate rejects the request with 403 when the scope is read-only.
// Mutations never touch a partition the viewer does not own.
func requireMutate(c *fiber.Ctx, scope access.Scope) bool {
	if !scope.CanMutate() {
		c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": access.ErrAccessDenied.Error(),
		})
		return false
	}
	return true
}
