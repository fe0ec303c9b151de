package models

import (
	"time"

	"gorm.io/gorm"
)

// Base replaces gorm.Model so records serialise with snake_case keys.
// Rows are soft-deleted, which keeps ids from ever being handed out again.
type Base struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Base) GetID() uint {
	return b.ID
}

// truncate cuts s to n runes, appending "..." when something was cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// head cuts s to n runes without a marker.
func head(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
