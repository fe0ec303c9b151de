package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nehemiah-317/ictlogbook/internal/middleware"
)

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Build(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, gin.H{"dashboard": d})
}

// ExportAll writes every module the actor can see into one workbook.
func (h *Handler) ExportAll(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.CurrentActor(c)
	lq := listQuery(c)

	support, err := h.services.Support.Export(ctx, actor, lq)
	if err != nil {
		renderError(c, err)
		return
	}
	assets, err := h.services.Asset.Export(ctx, actor, lq)
	if err != nil {
		renderError(c, err)
		return
	}
	vendors, err := h.services.Vendor.Export(ctx, actor, lq)
	if err != nil {
		renderError(c, err)
		return
	}
	thermal, err := h.services.Thermal.Export(ctx, actor, lq)
	if err != nil {
		renderError(c, err)
		return
	}

	writeWorkbook(c, "ict-logbook", support, assets, vendors, thermal)
}
