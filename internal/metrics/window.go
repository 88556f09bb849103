package metrics

import (
	"time"

	"github.com/google/uuid"
	"github.com/maeve/habitflow-api/internal/models"
)

// WindowCell is one habit's done/missed state for a single day.
type WindowCell struct {
	HabitID   uuid.UUID `json:"habitId"`
	HabitName string    `json:"habitName"`
	Done      bool      `json:"done"`
}

// WindowDay is one column of the rolling completion matrix: every habit's
// state for that day plus the aggregate completion count.
type WindowDay struct {
	Date      string       `json:"date"`
	Cells     []WindowCell `json:"cells"`
	Completed int          `json:"completed"`
}

// BuildWindow enumerates the inclusive range of windowSize calendar days
// ending at today and emits a cell per habit per day. The analysis view
// uses a 7-day window, the tracker grid a 5-day one; the size is always
// caller-supplied.
func BuildWindow(habits []models.Habit, today time.Time, windowSize int) []WindowDay {
	if windowSize < 1 {
		windowSize = 1
	}

	days := make([]WindowDay, 0, windowSize)
	start := dateOf(today).AddDate(0, 0, -(windowSize - 1))
	for i := 0; i < windowSize; i++ {
		key := DayKey(start.AddDate(0, 0, i))
		day := WindowDay{Date: key, Cells: make([]WindowCell, 0, len(habits))}
		for _, habit := range habits {
			done := habit.Progress.Done(key)
			day.Cells = append(day.Cells, WindowCell{
				HabitID:   habit.ID,
				HabitName: habit.Name,
				Done:      done,
			})
			if done {
				day.Completed++
			}
		}
		days = append(days, day)
	}
	return days
}

// HeatmapDay is one cell of the discipline-history heatmap. Level buckets
// the completion count into the five display shades (0 through 4+).
type HeatmapDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// BuildHeatmap counts completions across all habits for every day from the
// given start date (normally the account creation date) through today.
func BuildHeatmap(habits []models.Habit, from, today time.Time) []HeatmapDay {
	start := dateOf(from)
	end := dateOf(today)
	if start.After(end) {
		start = end
	}

	total := daysBetween(start, end) + 1
	days := make([]HeatmapDay, 0, total)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := DayKey(d)
		count := 0
		for _, habit := range habits {
			if habit.Progress.Done(key) {
				count++
			}
		}
		level := count
		if level > 4 {
			level = 4
		}
		days = append(days, HeatmapDay{Date: key, Count: count, Level: level})
	}
	return days
}
