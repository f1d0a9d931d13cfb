package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
	"github.com/jwalitptl/clinic-dashboard/pkg/httputil"
)

// BindJSON decodes the request body into dst and answers 400 on failure.
func BindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httputil.RespondWithBadRequest(c, "invalid request body")
		return false
	}
	return true
}

// BindQuery decodes query parameters into dst and answers 400 on failure.
func BindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		httputil.RespondWithBadRequest(c, "invalid query parameters")
		return false
	}
	return true
}

// QueryDay reads a YYYY-MM-DD query parameter, falling back to def when absent.
func QueryDay(c *gin.Context, name string, def datekey.Day) (datekey.Day, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	day, err := datekey.ParseDay(raw)
	if err != nil {
		httputil.RespondWithBadRequest(c, "invalid "+name+", expected YYYY-MM-DD")
		return datekey.Day{}, false
	}
	return day, true
}

// QueryInt reads a non-negative integer query parameter.
func QueryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		httputil.RespondWithBadRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}
