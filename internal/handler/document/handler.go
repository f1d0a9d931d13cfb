package document

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-dashboard/internal/handler"
	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/service/document"
	"github.com/jwalitptl/clinic-dashboard/pkg/httputil"
)

type Handler struct {
	service *document.Service
}

func NewHandler(service *document.Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	documents := r.Group("/documents")
	{
		documents.GET("", h.SearchDocuments)
		documents.GET("/categories", h.ListCategories)
		documents.GET("/:id", h.GetDocument)
		documents.POST("/:id/assign", h.AssignPatient)
	}
}

func (h *Handler) SearchDocuments(c *gin.Context) {
	var filters model.DocumentFilters
	if !handler.BindQuery(c, &filters) {
		return
	}

	docs, err := h.service.SearchDocuments(c, filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, docs)
}

func (h *Handler) ListCategories(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Categories())
}

func (h *Handler) GetDocument(c *gin.Context) {
	doc, err := h.service.GetDocument(c, c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doc)
}

func (h *Handler) AssignPatient(c *gin.Context) {
	var req model.AssignPatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.AssignPatient(c, c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doc)
}
