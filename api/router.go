package api

import (
	"wanproxy/config"
	"wanproxy/wan"

	"github.com/gin-gonic/gin"
)

func SetupRouter(client *wan.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	h := NewHandler(client, cfg)

	r.Use(CORSMiddleware(cfg))
	r.Use(RequestIDMiddleware())

	// Health check
	r.GET("/health", h.handleHealth)

	apiGroup := r.Group("/api")
	apiGroup.Use(BodyLimitMiddleware(cfg))
	{
		apiGroup.POST("/generate", h.handleGenerate)
		apiGroup.GET("/status/:task_id", h.handleStatus)
	}
	return r
}
