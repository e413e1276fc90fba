package api

import (
	"net/http"

	"wanproxy/config"

	"github.com/gin-gonic/gin"
	"github.com/lithammer/shortuuid/v4"
)

// CORSMiddleware applies the permissive cross-origin policy the web
// frontend expects. The allowed origin is configurable and defaults to
// every origin.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.CORSOrigin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware tags every exchange with an id so proxied upstream
// calls can be correlated in the logs. An id supplied by the caller is
// kept.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = shortuuid.New()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// BodyLimitMiddleware caps inbound request bodies. Generation prompts
// are small; anything beyond the configured size is not a legitimate
// request.
func BodyLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.MaxBodySize > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxBodySize)
		}
		c.Next()
	}
}
