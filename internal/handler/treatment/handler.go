package treatment

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-dashboard/internal/handler"
	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/service/treatment"
	"github.com/jwalitptl/clinic-dashboard/pkg/httputil"
)

type Handler struct {
	service *treatment.Service
}

func NewHandler(service *treatment.Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	treatments := r.Group("/treatments")
	{
		treatments.GET("", h.ListTreatments)
		treatments.POST("", h.CreateTreatment)
		treatments.GET("/:id", h.GetTreatment)
		treatments.POST("/:id/milestones/:index/toggle", h.ToggleMilestone)
	}
}

func (h *Handler) ListTreatments(c *gin.Context) {
	var filters model.TreatmentFilters
	if !handler.BindQuery(c, &filters) {
		return
	}

	plans, err := h.service.ListTreatments(c, filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, plans)
}

func (h *Handler) CreateTreatment(c *gin.Context) {
	var req model.CreateTreatmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	plan, err := h.service.CreateTreatment(c, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, plan)
}

func (h *Handler) GetTreatment(c *gin.Context) {
	plan, err := h.service.GetTreatment(c, c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, plan)
}

func (h *Handler) ToggleMilestone(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid milestone index")
		return
	}

	plan, err := h.service.ToggleMilestone(c, c.Param("id"), index)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, plan)
}
