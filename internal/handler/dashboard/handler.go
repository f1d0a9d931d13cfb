package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-dashboard/internal/handler"
	"github.com/jwalitptl/clinic-dashboard/internal/service/dashboard"
	"github.com/jwalitptl/clinic-dashboard/pkg/httputil"
)

type Handler struct {
	service *dashboard.Service
}

func NewHandler(service *dashboard.Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Overview)
	r.GET("/dashboard/stats", h.Stats)
	r.GET("/dashboard/progress", h.Progress)
}

func (h *Handler) Overview(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Overview(c))
}

func (h *Handler) Stats(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Stats(c))
}

func (h *Handler) Progress(c *gin.Context) {
	n, ok := handler.QueryInt(c, "limit", dashboard.DefaultProgressLimit)
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, h.service.Progress(c, n))
}
