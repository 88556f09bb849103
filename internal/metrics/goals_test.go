package metrics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maeve/habitflow-api/internal/models"
)

func TestGoalStatus_Active(t *testing.T) {
	goal := models.Goal{
		Name:       "Run a 5k",
		TargetDays: 10,
		CreatedAt:  date(2024, time.January, 1),
	}
	status := GoalStatus(goal, date(2024, time.January, 5))

	if status.DaysElapsed != 4 {
		t.Errorf("DaysElapsed = %d, want 4", status.DaysElapsed)
	}
	if status.DaysRemaining != 6 {
		t.Errorf("DaysRemaining = %d, want 6", status.DaysRemaining)
	}
	if status.ProgressPercent != 40 {
		t.Errorf("ProgressPercent = %v, want 40", status.ProgressPercent)
	}
	if status.Expired {
		t.Error("goal should not be expired")
	}
	if status.Emergency {
		t.Error("goal should not be flagged emergency")
	}
}

func TestGoalStatus_ExpiresAtTargetDays(t *testing.T) {
	goal := models.Goal{
		TargetDays: 10,
		CreatedAt:  date(2024, time.January, 1),
	}

	status := GoalStatus(goal, date(2024, time.January, 11))
	if status.DaysElapsed != 10 {
		t.Errorf("DaysElapsed = %d, want 10", status.DaysElapsed)
	}
	if status.DaysRemaining != 0 {
		t.Errorf("DaysRemaining = %d, want 0", status.DaysRemaining)
	}
	if !status.Expired {
		t.Error("goal should be expired at daysElapsed == targetDays")
	}

	// Day before the deadline it is still active
	if GoalStatus(goal, date(2024, time.January, 10)).Expired {
		t.Error("goal expired one day early")
	}
}

func TestGoalStatus_EmergencyWindow(t *testing.T) {
	goal := models.Goal{
		TargetDays: 10,
		CreatedAt:  date(2024, time.January, 1),
	}
	cases := []struct {
		today     time.Time
		emergency bool
	}{
		{date(2024, time.January, 7), false}, // 4 days remaining
		{date(2024, time.January, 8), false}, // 3 days remaining
		{date(2024, time.January, 9), true},  // 2 days remaining
		{date(2024, time.January, 10), true}, // 1 day remaining
		{date(2024, time.January, 11), false}, // expired, not emergency
	}
	for _, tc := range cases {
		if got := GoalStatus(goal, tc.today).Emergency; got != tc.emergency {
			t.Errorf("Emergency on %s = %v, want %v", tc.today.Format(DayKeyLayout), got, tc.emergency)
		}
	}
}

func TestGoalStatus_ClampsNegativeElapsed(t *testing.T) {
	// Clock skew can put createdAt in the future; elapsed never goes negative.
	goal := models.Goal{
		TargetDays: 5,
		CreatedAt:  date(2024, time.January, 10),
	}
	status := GoalStatus(goal, date(2024, time.January, 8))

	if status.DaysElapsed != 0 {
		t.Errorf("DaysElapsed = %d, want 0", status.DaysElapsed)
	}
	if status.DaysRemaining != 5 {
		t.Errorf("DaysRemaining = %d, want 5", status.DaysRemaining)
	}
	if status.ProgressPercent != 0 {
		t.Errorf("ProgressPercent = %v, want 0", status.ProgressPercent)
	}
}

func TestGoalStatus_ProgressClampedPastDeadline(t *testing.T) {
	goal := models.Goal{
		TargetDays: 5,
		CreatedAt:  date(2024, time.January, 1),
	}
	status := GoalStatus(goal, date(2024, time.January, 20))

	if status.ProgressPercent != 100 {
		t.Errorf("ProgressPercent = %v, want clamped 100", status.ProgressPercent)
	}
	if status.DaysRemaining >= 0 && !status.Expired {
		t.Errorf("expected expired with remaining %d", status.DaysRemaining)
	}
}

func TestOrderGoalsByUrgency(t *testing.T) {
	today := date(2024, time.January, 10)
	goals := []models.Goal{
		{ID: uuid.New(), Name: "slow", TargetDays: 30, CreatedAt: date(2024, time.January, 1)},
		{ID: uuid.New(), Name: "urgent", TargetDays: 10, CreatedAt: date(2024, time.January, 1)},
		{ID: uuid.New(), Name: "mid", TargetDays: 20, CreatedAt: date(2024, time.January, 1)},
	}

	ordered := OrderGoalsByUrgency(goals, today)

	if ordered[0].Name != "urgent" || ordered[1].Name != "mid" || ordered[2].Name != "slow" {
		t.Errorf("unexpected order: %s, %s, %s", ordered[0].Name, ordered[1].Name, ordered[2].Name)
	}

	prev := GoalStatus(ordered[0], today).DaysRemaining
	for _, goal := range ordered[1:] {
		rem := GoalStatus(goal, today).DaysRemaining
		if rem < prev {
			t.Fatalf("days remaining decreased: %d after %d", rem, prev)
		}
		prev = rem
	}

	// Input slice untouched
	if goals[0].Name != "slow" {
		t.Error("OrderGoalsByUrgency mutated its input")
	}
}

func TestOrderGoalsByUrgency_StableTies(t *testing.T) {
	today := date(2024, time.January, 10)
	first := models.Goal{ID: uuid.New(), Name: "first", TargetDays: 15, CreatedAt: date(2024, time.January, 1)}
	second := models.Goal{ID: uuid.New(), Name: "second", TargetDays: 15, CreatedAt: date(2024, time.January, 1)}

	ordered := OrderGoalsByUrgency([]models.Goal{first, second}, today)
	if ordered[0].Name != "first" || ordered[1].Name != "second" {
		t.Errorf("tie broke insertion order: %s before %s", ordered[0].Name, ordered[1].Name)
	}
}

func TestExpiredGoals(t *testing.T) {
	today := date(2024, time.January, 11)
	expired := models.Goal{ID: uuid.New(), Name: "done", TargetDays: 10, CreatedAt: date(2024, time.January, 1)}
	active := models.Goal{ID: uuid.New(), Name: "going", TargetDays: 30, CreatedAt: date(2024, time.January, 1)}

	got := ExpiredGoals([]models.Goal{expired, active}, today)

	if len(got) != 1 {
		t.Fatalf("expected 1 expired goal, got %d", len(got))
	}
	if got[0].ID != expired.ID {
		t.Errorf("wrong goal reported expired: %s", got[0].Name)
	}

	if rest := ExpiredGoals([]models.Goal{active}, today); len(rest) != 0 {
		t.Errorf("active goal reported expired: %v", rest)
	}
}
