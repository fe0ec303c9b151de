package database

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/nehemiah-317/ictlogbook/internal/models"
)

// AuditLogger writes the record change trail.
type AuditLogger struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewAuditLogger(db *gorm.DB, log *slog.Logger) *AuditLogger {
	return &AuditLogger{db: db, log: log}
}

// Record stores one audit entry. Failures are logged, never returned.
func (a *AuditLogger) Record(ctx context.Context, userID uint, entity string, entityID uint, action, details string) {
	entry := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := a.db.WithContext(ctx).Create(&entry).Error; err != nil {
		a.log.Error("failed to write audit log", "error", err, "entity", entity, "entity_id", entityID, "action", action)
	}
}

// List returns the newest entries first.
func (a *AuditLogger) List(ctx context.Context, entity string, limit int) ([]models.AuditLog, error) {
	q := a.db.WithContext(ctx).Preload("User").Order("created_at DESC").Order("id DESC")
	if entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
