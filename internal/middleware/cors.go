package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type CORSConfig struct {
	AllowOrigins []string
	MaxAge       time.Duration
}

func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins: []string{"*"},
		MaxAge:       12 * time.Hour,
	}
}

func CORS(config CORSConfig) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Requested-With", HeaderXRequestID},
		ExposeHeaders: []string{"Content-Length", HeaderXRequestID},
		MaxAge:        config.MaxAge,
	}

	allowAll := len(config.AllowOrigins) == 0
	for _, o := range config.AllowOrigins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = config.AllowOrigins
	}

	return cors.New(cc)
}
