package radiography

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-dashboard/internal/handler"
	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/service/radiography"
	"github.com/jwalitptl/clinic-dashboard/pkg/httputil"
)

type Handler struct {
	service *radiography.Service
}

func NewHandler(service *radiography.Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	rad := r.Group("/radiographies")
	{
		rad.GET("", h.SearchRadiographies)
		rad.GET("/types", h.ListTypes)

		sessions := rad.Group("/sessions")
		sessions.POST("", h.StartSession)
		sessions.GET("/:id", h.GetSession)
		sessions.POST("/:id/capture", h.BeginCapture)
		sessions.POST("/:id/complete", h.CompleteCapture)
		sessions.POST("/:id/back", h.Back)
	}
}

func (h *Handler) SearchRadiographies(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.SearchRadiographies(c, c.Query("q")))
}

func (h *Handler) ListTypes(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Types())
}

func (h *Handler) StartSession(c *gin.Context) {
	var req model.StartCaptureRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	sess, err := h.service.StartSession(c, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, sess)
}

func (h *Handler) GetSession(c *gin.Context) {
	h.respond(c)(h.service.GetSession(c, c.Param("id")))
}

func (h *Handler) BeginCapture(c *gin.Context) {
	h.respond(c)(h.service.BeginCapture(c, c.Param("id")))
}

func (h *Handler) CompleteCapture(c *gin.Context) {
	h.respond(c)(h.service.CompleteCapture(c, c.Param("id")))
}

func (h *Handler) Back(c *gin.Context) {
	h.respond(c)(h.service.Back(c, c.Param("id")))
}

func (h *Handler) respond(c *gin.Context) func(model.CaptureSession, error) {
	return func(sess model.CaptureSession, err error) {
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, sess)
	}
}
