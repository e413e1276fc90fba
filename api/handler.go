package api

import (
	"errors"
	"log"
	"net/http"

	"wanproxy/config"
	"wanproxy/wan"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type Handler struct {
	client *wan.Client
	cfg    *config.Config
}

func NewHandler(client *wan.Client, cfg *config.Config) *Handler {
	return &Handler{
		client: client,
		cfg:    cfg,
	}
}

// handleGenerate submits a generation task upstream and hands the task
// id back to the caller.
func (h *Handler) handleGenerate(c *gin.Context) {
	var req wan.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID, err := h.client.Submit(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "message": "Task created successfully"})
}

// handleStatus looks up a task upstream and returns the normalized
// report. The task id path parameter is forwarded as-is.
func (h *Handler) handleStatus(c *gin.Context) {
	report, err := h.client.TaskStatus(c.Request.Context(), c.Param("task_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// renderError maps classified upstream-client errors onto HTTP
// responses. An upstream rejection keeps its original status code and
// carries the upstream body as detail.
func (h *Handler) renderError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")

	var upstreamErr *wan.UpstreamError
	switch {
	case errors.Is(err, wan.ErrAPIKeyMissing):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key not configured on server."})
	case errors.As(err, &upstreamErr):
		log.Printf("[%s] Upstream rejected request: %v", requestID, err)
		c.JSON(upstreamErr.StatusCode, gin.H{"error": "Upstream rejected request", "detail": upstreamErr.Detail()})
	default:
		log.Printf("[%s] Request failed: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// handleHealth reports liveness plus a snapshot of system load.
func (h *Handler) handleHealth(c *gin.Context) {
	report := gin.H{"status": "ok"}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		report["cpu_percent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		report["mem_available"] = vm.Available
	}

	c.JSON(http.StatusOK, report)
}
