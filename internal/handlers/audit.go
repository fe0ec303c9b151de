package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nehemiah-317/ictlogbook/internal/apperrors"
)

const (
	defaultAuditLimit = 200
	maxAuditLimit     = 1000
)

func (h *Handler) ListAuditLogs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if err != nil || limit < 1 {
		limit = defaultAuditLimit
	}
	limit = min(limit, maxAuditLimit)

	logs, err := h.audit.List(c.Request.Context(), c.Query("entity"), limit)
	if err != nil {
		renderError(c, apperrors.NewInternalError("failed to list audit logs", err.Error()))
		return
	}

	render(c, http.StatusOK, gin.H{"logs": logs})
}
