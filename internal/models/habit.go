package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressMap is a sparse mapping from calendar-day key ("2006-01-02") to
// completion flag. An absent key means not completed. Stored as a JSON
// column so it works on both SQLite and PostgreSQL.
type ProgressMap map[string]bool

func (p ProgressMap) Value() (driver.Value, error) {
	if p == nil {
		p = ProgressMap{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (p *ProgressMap) Scan(value interface{}) error {
	if value == nil {
		*p = ProgressMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for ProgressMap")
	}
	if len(data) == 0 {
		*p = ProgressMap{}
		return nil
	}
	return json.Unmarshal(data, p)
}

// Done reports whether the given day key is logged as completed.
func (p ProgressMap) Done(dayKey string) bool {
	return p[dayKey]
}

type Habit struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Name      string         `json:"name" gorm:"not null"`
	Progress  ProgressMap    `json:"progress" gorm:"type:text"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.Progress == nil {
		h.Progress = ProgressMap{}
	}
	return nil
}

// Habit DTOs
type CreateHabitRequest struct {
	Name string `json:"name" validate:"required"`
}

type ToggleHabitRequest struct {
	Date string `json:"date"` // "2006-01-02"; defaults to today when empty
}
