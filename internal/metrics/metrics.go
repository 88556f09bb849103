// Package metrics computes derived habit and goal statistics over
// already-loaded records. Every function takes the reference day as a
// parameter instead of reading the wall clock, so results are deterministic
// and the package never touches the database.
package metrics

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/maeve/habitflow-api/internal/models"
)

// DayKeyLayout is the calendar-day key format used in progress maps.
const DayKeyLayout = "2006-01-02"

// ErrInvalidDay is returned when a completion toggle targets a day other
// than today. No retroactive or future edits.
var ErrInvalidDay = errors.New("completion can only be toggled for today")

// ErrInvalidGoalDuration is returned when a goal is created with a
// non-positive duration.
var ErrInvalidGoalDuration = errors.New("target days must be positive")

type Discipline string

const (
	DisciplineElite      Discipline = "Elite"
	DisciplineConsistent Discipline = "Consistent"
	DisciplineGood       Discipline = "Good"
	DisciplineTrying     Discipline = "Trying"
	DisciplineSlacking   Discipline = "Slacking"
)

// HabitSummary is the per-habit discipline breakdown shown on the analysis
// dashboard.
type HabitSummary struct {
	HabitID        uuid.UUID  `json:"habitId"`
	Name           string     `json:"name"`
	EffectiveStart time.Time  `json:"effectiveStart"`
	TotalDays      int        `json:"totalDays"`
	Completions    int        `json:"completions"`
	Percent        int        `json:"percent"`
	Missed         int        `json:"missed"`
	Discipline     Discipline `json:"discipline"`
}

// DayKey formats t as a progress-map key.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// dateOf strips the time-of-day component, normalizing to UTC so day
// arithmetic is immune to DST.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of calendar days from a to b (negative
// when b precedes a).
func daysBetween(a, b time.Time) int {
	return int(dateOf(b).Sub(dateOf(a)).Hours() / 24)
}

// sameDay reports whether a and b fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	return dateOf(a).Equal(dateOf(b))
}

// Classify maps a completion percentage to a discipline tier. Breakpoints
// are evaluated highest first; the five tiers partition [0,100].
func Classify(percent int) Discipline {
	switch {
	case percent >= 90:
		return DisciplineElite
	case percent >= 70:
		return DisciplineConsistent
	case percent >= 50:
		return DisciplineGood
	case percent >= 30:
		return DisciplineTrying
	default:
		return DisciplineSlacking
	}
}

// Summarize computes the discipline summary for one habit as of today.
//
// The effective start is the earlier of the creation date and the first
// logged completion, so a habit with history predating its record still
// counts those days. Percent is clamped to 100: a progress map mutated
// outside the today-only policy can hold more completions than elapsed
// days, and the clamp keeps the display sane rather than rejecting the
// record.
func Summarize(habit models.Habit, today time.Time) HabitSummary {
	effectiveStart := dateOf(habit.CreatedAt)
	completions := 0
	for key, done := range habit.Progress {
		if !done {
			continue
		}
		completions++
		day, err := time.Parse(DayKeyLayout, key)
		if err != nil {
			continue
		}
		if day.Before(effectiveStart) {
			effectiveStart = day
		}
	}

	totalDays := daysBetween(effectiveStart, today) + 1
	if totalDays < 1 {
		totalDays = 1
	}

	percent := int(math.Round(float64(completions) / float64(totalDays) * 100))
	if percent > 100 {
		percent = 100
	}

	missed := totalDays - completions
	if missed < 0 {
		missed = 0
	}

	return HabitSummary{
		HabitID:        habit.ID,
		Name:           habit.Name,
		EffectiveStart: effectiveStart,
		TotalDays:      totalDays,
		Completions:    completions,
		Percent:        percent,
		Missed:         missed,
		Discipline:     Classify(percent),
	}
}

// ToggleCompletion flips the completion flag for day in the habit's
// progress map. Only today may be toggled; any other day fails with
// ErrInvalidDay before anything is modified. Cleared days are removed from
// the map so it stays sparse.
func ToggleCompletion(habit *models.Habit, day, today time.Time) error {
	if !sameDay(day, today) {
		return ErrInvalidDay
	}
	if habit.Progress == nil {
		habit.Progress = models.ProgressMap{}
	}
	key := DayKey(day)
	if habit.Progress[key] {
		delete(habit.Progress, key)
	} else {
		habit.Progress[key] = true
	}
	return nil
}

// ValidateGoalDuration rejects non-positive goal durations before they
// reach the store.
func ValidateGoalDuration(targetDays int) error {
	if targetDays <= 0 {
		return ErrInvalidGoalDuration
	}
	return nil
}
