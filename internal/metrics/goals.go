package metrics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/maeve/habitflow-api/internal/models"
)

// GoalProgress is the countdown state of one goal as of today.
//
// DaysRemaining is not clamped: a goal that outlived its duration reports a
// zero or negative remainder and Expired true. Expiry is terminal; expired
// goals are removed by the reap operation, never resumed.
type GoalProgress struct {
	GoalID          uuid.UUID `json:"goalId"`
	Name            string    `json:"name"`
	TargetDays      int       `json:"targetDays"`
	DaysElapsed     int       `json:"daysElapsed"`
	DaysRemaining   int       `json:"daysRemaining"`
	ProgressPercent float64   `json:"progressPercent"`
	Expired         bool      `json:"expired"`
	Emergency       bool      `json:"emergency"`
}

// GoalStatus computes the countdown for one goal. Emergency flags goals
// with fewer than three days left; it is a presentation hint, not a state.
func GoalStatus(goal models.Goal, today time.Time) GoalProgress {
	daysElapsed := daysBetween(goal.CreatedAt, today)
	if daysElapsed < 0 {
		daysElapsed = 0
	}
	daysRemaining := goal.TargetDays - daysElapsed

	progressPercent := float64(daysElapsed) / float64(goal.TargetDays) * 100
	if progressPercent > 100 {
		progressPercent = 100
	}

	return GoalProgress{
		GoalID:          goal.ID,
		Name:            goal.Name,
		TargetDays:      goal.TargetDays,
		DaysElapsed:     daysElapsed,
		DaysRemaining:   daysRemaining,
		ProgressPercent: progressPercent,
		Expired:         daysRemaining <= 0,
		Emergency:       daysRemaining > 0 && daysRemaining < 3,
	}
}

// OrderGoalsByUrgency returns the goals sorted ascending by days remaining,
// most urgent first. The sort is stable so ties keep insertion order. The
// input slice is not modified.
func OrderGoalsByUrgency(goals []models.Goal, today time.Time) []models.Goal {
	ordered := make([]models.Goal, len(goals))
	copy(ordered, goals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return GoalStatus(ordered[i], today).DaysRemaining < GoalStatus(ordered[j], today).DaysRemaining
	})
	return ordered
}

// ExpiredGoals returns the goals whose duration has fully elapsed. The
// caller deletes them explicitly (see the reap endpoint); computing the
// list is kept separate from the deletion so a read never mutates.
func ExpiredGoals(goals []models.Goal, today time.Time) []models.Goal {
	var expired []models.Goal
	for _, goal := range goals {
		if GoalStatus(goal, today).Expired {
			expired = append(expired, goal)
		}
	}
	return expired
}
