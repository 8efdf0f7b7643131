package controllers

import (
	"context"
	"media-orchestrator/application/ports/inbound"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/domain"
	"media-orchestrator/infrastructure/gin_interface/dto"
	"media-orchestrator/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlideshowController interface {
	CreateSlideshow(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type slideshowController struct {
	logger   outbound.LoggerPort
	pipeline inbound.SlideshowPipelinePort
}

func NewSlideshowController(pipeline inbound.SlideshowPipelinePort, logger outbound.LoggerPort) SlideshowController {
	return &slideshowController{
		logger:   logger,
		pipeline: pipeline,
	}
}

func (s *slideshowController) CreateSlideshow(c *gin.Context) {
	newCtx, cancel := context.WithCancel(c)
	defer cancel()

	var request dto.CreateSlideshowRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run := s.pipeline.Run(newCtx, inbound.StartSlideshowParams{
		RunID:       uuid.NewString(),
		UserID:      c.GetString(middleware.ContextUserIDKey),
		ImagePrompt: request.ImagePrompt,
		Narration:   request.Narration,
		Publish:     request.Publish,
	})

	c.JSON(http.StatusOK, toSlideshowResponse(run))
}

func (s *slideshowController) RegisterRoutes(g *gin.Engine) {
	g.POST("/slideshows", s.CreateSlideshow)
}

func toSlideshowResponse(run *domain.PipelineRun) dto.CreateSlideshowResponse {
	response := dto.CreateSlideshowResponse{
		RunID:  run.ID,
		State:  string(run.State),
		Error:  run.Error,
		Stages: make([]dto.StageOutcomeResponse, 0, len(run.Stages)),
	}
	for _, outcome := range run.Stages {
		response.Stages = append(response.Stages, dto.StageOutcomeResponse{
			Stage:     string(outcome.Stage),
			Success:   outcome.Result.Success,
			LocalPath: outcome.Result.LocalPath,
			Locator:   outcome.Result.Locator,
			TraceID:   outcome.Result.TraceID,
			Error:     outcome.Result.Error,
		})
	}
	return response
}
