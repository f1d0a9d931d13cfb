package settings

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-dashboard/internal/handler"
	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/service/settings"
	"github.com/jwalitptl/clinic-dashboard/pkg/httputil"
)

type Handler struct {
	service *settings.Service
}

func NewHandler(service *settings.Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	s := r.Group("/settings")
	{
		s.GET("/email", h.GetEmail)
		s.PUT("/email", h.UpdateEmail)
	}
}

func (h *Handler) GetEmail(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Email(c))
}

func (h *Handler) UpdateEmail(c *gin.Context) {
	var req model.EmailSettings
	if !handler.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateEmail(c, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}
