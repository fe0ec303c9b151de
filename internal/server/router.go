package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nehemiah-317/ictlogbook/internal/config"
	"github.com/nehemiah-317/ictlogbook/internal/dashboard"
	"github.com/nehemiah-317/ictlogbook/internal/database"
	"github.com/nehemiah-317/ictlogbook/internal/handlers"
	"github.com/nehemiah-317/ictlogbook/internal/middleware"
	"github.com/nehemiah-317/ictlogbook/internal/models"
	"github.com/nehemiah-317/ictlogbook/internal/policy"
	"github.com/nehemiah-317/ictlogbook/internal/records"
)

const sessionName = "ictlogbook_session"

// Deps are the collaborators the router wires together.
type Deps struct {
	DB       *gorm.DB
	Services *records.Services
	Audit    *database.AuditLogger
	Log      *slog.Logger
}

// NewDeps builds the record services on top of db.
func NewDeps(db *gorm.DB, log *slog.Logger) (*Deps, error) {
	access, err := policy.NewAccessPolicy()
	if err != nil {
		return nil, err
	}

	audit := database.NewAuditLogger(db, log.With("component", "audit"))
	return &Deps{
		DB:       db,
		Services: records.NewServices(db, access, audit, log.With("component", "records")),
		Audit:    audit,
		Log:      log,
	}, nil
}

func NewRouter(cfg *config.Config, deps *Deps) *gin.Engine {
	gin.SetMode(cfg.ServerMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Log))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   8 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.Use(middleware.InjectUser(deps.DB))
	r.Use(middleware.RequestLogger(deps.Log.With("component", "http")))

	h := handlers.New(deps.DB, deps.Services, dashboard.FromServices(deps.Services), deps.Audit, deps.Log)

	// AUTH
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	auth.GET("/", h.Dashboard)
	auth.GET("/me", h.Me)
	auth.GET("/export", h.ExportAll)

	// RECORDS
	handlers.NewRecordHandler(deps.Services.Support).Register(auth)
	handlers.NewRecordHandler(deps.Services.Asset).Register(auth)
	handlers.NewRecordHandler(deps.Services.Vendor).Register(auth)
	handlers.NewRecordHandler(deps.Services.Thermal).Register(auth)

	// ADMIN
	auth.GET("/audit", middleware.RequireRole(models.RoleAdmin), h.ListAuditLogs)
	auth.POST("/users/new", middleware.RequireRole(models.RoleAdmin), h.CreateUser)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
