package metrics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maeve/habitflow-api/internal/models"
)

func TestBuildWindow_EmptyHabits(t *testing.T) {
	days := BuildWindow(nil, date(2024, time.March, 7), 7)

	if len(days) != 7 {
		t.Fatalf("window length = %d, want 7", len(days))
	}
	if days[0].Date != "2024-03-01" {
		t.Errorf("first day = %s, want 2024-03-01", days[0].Date)
	}
	if days[6].Date != "2024-03-07" {
		t.Errorf("last day = %s, want 2024-03-07", days[6].Date)
	}
	for _, day := range days {
		if day.Completed != 0 {
			t.Errorf("aggregate count for %s = %d, want 0", day.Date, day.Completed)
		}
		if len(day.Cells) != 0 {
			t.Errorf("cells for %s = %d, want 0", day.Date, len(day.Cells))
		}
	}
}

func TestBuildWindow_CellsAndAggregates(t *testing.T) {
	reading := models.Habit{
		ID:   uuid.New(),
		Name: "Reading",
		Progress: models.ProgressMap{
			"2024-03-06": true,
			"2024-03-07": true,
		},
	}
	running := models.Habit{
		ID:   uuid.New(),
		Name: "Running",
		Progress: models.ProgressMap{
			"2024-03-07": true,
		},
	}

	days := BuildWindow([]models.Habit{reading, running}, date(2024, time.March, 7), 5)

	if len(days) != 5 {
		t.Fatalf("window length = %d, want 5", len(days))
	}

	last := days[4]
	if last.Date != "2024-03-07" {
		t.Fatalf("last day = %s, want 2024-03-07", last.Date)
	}
	if last.Completed != 2 {
		t.Errorf("aggregate on 03-07 = %d, want 2", last.Completed)
	}
	if !last.Cells[0].Done || !last.Cells[1].Done {
		t.Errorf("expected both habits done on 03-07: %+v", last.Cells)
	}

	prev := days[3]
	if prev.Completed != 1 {
		t.Errorf("aggregate on 03-06 = %d, want 1", prev.Completed)
	}
	if !prev.Cells[0].Done || prev.Cells[1].Done {
		t.Errorf("expected only Reading done on 03-06: %+v", prev.Cells)
	}

	for _, day := range days[:3] {
		if day.Completed != 0 {
			t.Errorf("aggregate on %s = %d, want 0", day.Date, day.Completed)
		}
	}
}

func TestBuildWindow_MinimumSize(t *testing.T) {
	days := BuildWindow(nil, date(2024, time.March, 7), 0)
	if len(days) != 1 {
		t.Fatalf("window length = %d, want 1 for non-positive size", len(days))
	}
	if days[0].Date != "2024-03-07" {
		t.Errorf("day = %s, want today", days[0].Date)
	}
}

func TestBuildHeatmap_CountsAndLevels(t *testing.T) {
	habits := make([]models.Habit, 6)
	for i := range habits {
		habits[i] = models.Habit{
			ID:       uuid.New(),
			Progress: models.ProgressMap{},
		}
	}
	// 2024-04-02: one habit done. 2024-04-03: all six done.
	habits[0].Progress["2024-04-02"] = true
	for i := range habits {
		habits[i].Progress["2024-04-03"] = true
	}

	days := BuildHeatmap(habits, date(2024, time.April, 1), date(2024, time.April, 3))

	if len(days) != 3 {
		t.Fatalf("heatmap length = %d, want 3", len(days))
	}
	if days[0].Count != 0 || days[0].Level != 0 {
		t.Errorf("04-01: count %d level %d, want 0/0", days[0].Count, days[0].Level)
	}
	if days[1].Count != 1 || days[1].Level != 1 {
		t.Errorf("04-02: count %d level %d, want 1/1", days[1].Count, days[1].Level)
	}
	if days[2].Count != 6 || days[2].Level != 4 {
		t.Errorf("04-03: count %d level %d, want 6 capped at level 4", days[2].Count, days[2].Level)
	}
}

func TestBuildHeatmap_StartAfterToday(t *testing.T) {
	days := BuildHeatmap(nil, date(2024, time.April, 10), date(2024, time.April, 3))
	if len(days) != 1 {
		t.Fatalf("heatmap length = %d, want 1 when start is after today", len(days))
	}
	if days[0].Date != "2024-04-03" {
		t.Errorf("day = %s, want today", days[0].Date)
	}
}
