package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-dashboard/internal/handler"
	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/service/contact"
	"github.com/jwalitptl/clinic-dashboard/pkg/httputil"
)

type Handler struct {
	service *contact.Service
}

func NewHandler(service *contact.Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	contacts := r.Group("/contacts")
	{
		contacts.GET("", h.SearchContacts)
		contacts.POST("", h.AddContact)
		contacts.DELETE("/:id", h.RemoveContact)
	}
}

func (h *Handler) SearchContacts(c *gin.Context) {
	var filters model.ContactFilters
	if !handler.BindQuery(c, &filters) {
		return
	}
	httputil.RespondWithSuccess(c, h.service.SearchContacts(c, filters))
}

func (h *Handler) AddContact(c *gin.Context) {
	var req model.CreateContactRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	ct, err := h.service.AddContact(c, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, ct)
}

func (h *Handler) RemoveContact(c *gin.Context) {
	h.service.RemoveContact(c, c.Param("id"))
	c.Status(http.StatusNoContent)
}
