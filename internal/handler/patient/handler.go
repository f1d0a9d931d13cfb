package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-dashboard/internal/handler"
	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/service/patient"
	"github.com/jwalitptl/clinic-dashboard/pkg/httputil"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.GET("/lookup", h.LookupPatients)
		patients.POST("", h.CreatePatient)
		patients.GET("/:id", h.GetPatient)
		patients.PATCH("/:id/name", h.RenamePatient)
	}
}

func (h *Handler) ListPatients(c *gin.Context) {
	var filters model.PatientFilters
	if !handler.BindQuery(c, &filters) {
		return
	}
	httputil.RespondWithSuccess(c, h.service.ListPatients(c, filters))
}

// LookupPatients backs the appointment form's patient picker.
func (h *Handler) LookupPatients(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Lookup(c, c.Query("q")))
}

func (h *Handler) GetPatient(c *gin.Context) {
	p, err := h.service.GetPatient(c, c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	p, err := h.service.CreatePatient(c, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, p)
}

func (h *Handler) RenamePatient(c *gin.Context) {
	var req model.RenamePatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	p, err := h.service.RenamePatient(c, c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
}
