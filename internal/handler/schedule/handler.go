package schedule

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-dashboard/internal/handler"
	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/service/schedule"
	"github.com/jwalitptl/clinic-dashboard/pkg/httputil"
)

const defaultUpcoming = 5

type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sched := r.Group("/schedule")
	{
		sched.GET("/day", h.DayView)
		sched.GET("/week", h.WeekView)
		sched.GET("/navigate", h.Navigate)
		sched.GET("/availability", h.Availability)
		sched.GET("/calendar", h.Calendar)
		sched.GET("/upcoming", h.Upcoming)
	}
}

func (h *Handler) DayView(c *gin.Context) {
	day, ok := handler.QueryDay(c, "date", h.service.Today())
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, h.service.DayView(c, day))
}

func (h *Handler) WeekView(c *gin.Context) {
	day, ok := handler.QueryDay(c, "date", h.service.Today())
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, h.service.WeekView(c, day))
}

// Navigate moves from date by one step of mode and returns the view at the
// new position.
func (h *Handler) Navigate(c *gin.Context) {
	ref, ok := handler.QueryDay(c, "date", h.service.Today())
	if !ok {
		return
	}
	mode, err := schedule.ParseViewMode(c.Query("mode"))
	if err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}
	dir := c.DefaultQuery("dir", "today")

	day, err := h.service.Navigate(ref, mode, dir)
	if err != nil {
		httputil.RespondWithBadRequest(c, err.Error())
		return
	}

	var view interface{}
	if mode == model.ViewWeek {
		view = h.service.WeekView(c, day)
	} else {
		view = h.service.DayView(c, day)
	}
	httputil.RespondWithSuccess(c, gin.H{
		"date": day,
		"mode": mode,
		"view": view,
	})
}

func (h *Handler) Availability(c *gin.Context) {
	day, ok := handler.QueryDay(c, "date", h.service.Today())
	if !ok {
		return
	}
	slot, ok := handler.QueryInt(c, "slot", 0)
	if !ok {
		return
	}
	if c.Query("free") == "true" {
		httputil.RespondWithSuccess(c, h.service.FreeSlots(c, day, slot))
		return
	}
	httputil.RespondWithSuccess(c, h.service.Availability(c, day, slot))
}

func (h *Handler) Calendar(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Calendar(c))
}

func (h *Handler) Upcoming(c *gin.Context) {
	n, ok := handler.QueryInt(c, "limit", defaultUpcoming)
	if !ok {
		return
	}
	httputil.RespondWithSuccess(c, h.service.Upcoming(c, n))
}
