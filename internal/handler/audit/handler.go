package audit

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-dashboard/internal/handler"
	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/service/audit"
	"github.com/jwalitptl/clinic-dashboard/pkg/httputil"
)

type Handler struct {
	service *audit.Service
}

func NewHandler(service *audit.Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	audit := r.Group("/audit")
	{
		audit.GET("/logs", h.ListLogs)
		audit.GET("/logs/entity/:type/:id", h.GetEntityLogs)
		audit.GET("/export", h.ExportLogs)
		audit.GET("/aggregate", h.GetAggregateStats)
	}
}

func (h *Handler) ListLogs(c *gin.Context) {
	var filters model.AuditFilters
	if !handler.BindQuery(c, &filters) {
		return
	}
	httputil.RespondWithSuccess(c, h.service.List(c, filters))
}

func (h *Handler) GetEntityLogs(c *gin.Context) {
	filters := model.AuditFilters{
		EntityType: c.Param("type"),
		EntityID:   c.Param("id"),
	}
	httputil.RespondWithSuccess(c, h.service.List(c, filters))
}

func (h *Handler) ExportLogs(c *gin.Context) {
	var filters model.AuditFilters
	if !handler.BindQuery(c, &filters) {
		return
	}
	logs := h.service.List(c, filters)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=audit_logs_%s.csv", time.Now().Format("20060102")))
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write([]string{"ID", "Action", "Entity Type", "Entity ID", "Request ID", "IP Address", "Created At"})
	for _, l := range logs {
		_ = writer.Write([]string{
			l.ID,
			l.Action,
			l.EntityType,
			l.EntityID,
			l.RequestID,
			l.IPAddress,
			l.CreatedAt.Format(time.RFC3339),
		})
	}
	writer.Flush()
}

func (h *Handler) GetAggregateStats(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.GetAggregateStats(c))
}
