package controllers

import (
	"context"
	"media-orchestrator/application/ports/inbound"
	"media-orchestrator/application/ports/outbound"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type ToolsController interface {
	InvokeTool(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type toolsController struct {
	logger     outbound.LoggerPort
	dispatcher inbound.ToolDispatcherPort
}

func NewToolsController(dispatcher inbound.ToolDispatcherPort, logger outbound.LoggerPort) ToolsController {
	return &toolsController{
		logger:     logger,
		dispatcher: dispatcher,
	}
}

func (t *toolsController) InvokeTool(c *gin.Context) {
	newCtx, cancel := context.WithCancel(c)
	defer cancel()

	var args inbound.ToolArgs
	if err := c.ShouldBindJSON(&args); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := t.dispatcher.Dispatch(newCtx, c.Param("name"), args)
	c.JSON(statusFor(response), response)
}

func (t *toolsController) RegisterRoutes(g *gin.Engine) {
	g.POST("/tools/:name", t.InvokeTool)
	g.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Tool failures are terminal results, not transport errors; only names the
// dispatcher could not route at all map onto 4xx.
func statusFor(response inbound.ToolResponse) int {
	if !response.Success && strings.HasPrefix(response.Error, "unknown tool") {
		return http.StatusNotFound
	}
	return http.StatusOK
}
