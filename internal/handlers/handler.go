package handlers

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/nehemiah-317/ictlogbook/internal/dashboard"
	"github.com/nehemiah-317/ictlogbook/internal/database"
	"github.com/nehemiah-317/ictlogbook/internal/records"
)

// Handler serves the pages that are not tied to a single record module.
type Handler struct {
	db        *gorm.DB
	services  *records.Services
	dashboard *dashboard.Aggregator
	audit     *database.AuditLogger
	log       *slog.Logger
}

func New(db *gorm.DB, services *records.Services, agg *dashboard.Aggregator, audit *database.AuditLogger, log *slog.Logger) *Handler {
	return &Handler{
		db:        db,
		services:  services,
		dashboard: agg,
		audit:     audit,
		log:       log,
	}
}
