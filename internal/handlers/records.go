package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nehemiah-317/ictlogbook/internal/apperrors"
	"github.com/nehemiah-317/ictlogbook/internal/export"
	"github.com/nehemiah-317/ictlogbook/internal/middleware"
	"github.com/nehemiah-317/ictlogbook/internal/records"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RecordHandler serves one record module.
type RecordHandler[T any, P interface {
	*T
	records.Entity[F]
}, F any] struct {
	svc *records.Service[T, P, F]
}

func NewRecordHandler[T any, P interface {
	*T
	records.Entity[F]
}, F any](svc *records.Service[T, P, F]) *RecordHandler[T, P, F] {
	return &RecordHandler[T, P, F]{svc: svc}
}

// Register mounts the module's routes under its path.
func (h *RecordHandler[T, P, F]) Register(r gin.IRouter) {
	g := r.Group(h.svc.Path())
	g.GET("", h.List)
	g.POST("/new", h.Create)
	g.GET("/export", h.Export)
	g.GET("/:id", h.Show)
	g.POST("/:id/edit", h.Update)
	g.POST("/:id/delete", h.Delete)
}

// LIST

func (h *RecordHandler[T, P, F]) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), middleware.CurrentActor(c), listQuery(c))
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, gin.H{
		"module":   h.svc.Module(),
		"statuses": h.svc.Statuses(),
		"search":   c.Query("search"),
		"status":   c.Query("status"),
		"page":     page,
	})
}

// CREATE

func (h *RecordHandler[T, P, F]) Create(c *gin.Context) {
	var fields F
	if err := c.ShouldBind(&fields); err != nil {
		renderError(c, bindError(err))
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), middleware.CurrentActor(c), fields)
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusCreated, gin.H{
		"message": "Record created successfully.",
		"record":  rec,
	})
}

// DETAIL

func (h *RecordHandler[T, P, F]) Show(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, gin.H{"record": rec})
}

// EDIT

func (h *RecordHandler[T, P, F]) Update(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	var fields F
	if err := c.ShouldBind(&fields); err != nil {
		renderError(c, bindError(err))
		return
	}

	rec, err := h.svc.Update(c.Request.Context(), middleware.CurrentActor(c), id, fields)
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, gin.H{
		"message": "Record updated successfully.",
		"record":  rec,
	})
}

// DELETE (admin only, enforced by the service)

func (h *RecordHandler[T, P, F]) Delete(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		renderError(c, err)
		return
	}

	render(c, http.StatusOK, gin.H{"message": "Record deleted successfully."})
}

func (h *RecordHandler[T, P, F]) Export(c *gin.Context) {
	table, err := h.svc.Export(c.Request.Context(), middleware.CurrentActor(c), listQuery(c))
	if err != nil {
		renderError(c, err)
		return
	}
	writeWorkbook(c, string(h.svc.Module()), table)
}

func listQuery(c *gin.Context) records.ListQuery {
	// non-numeric pages fall back to the first page
	page, _ := strconv.Atoi(c.Query("page"))
	return records.ListQuery{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   page,
	}
}

func recordID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		renderError(c, apperrors.NewNotFoundError("Record not found"))
		return 0, false
	}
	return uint(id), true
}

func writeWorkbook(c *gin.Context, name string, tables ...export.Table) {
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, tables...); err != nil {
		renderError(c, apperrors.NewInternalError("failed to build export", err.Error()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
