package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/config"
	"media-orchestrator/domain"
	"net/http"
)

type videoJobInstance struct {
	Prompt string          `json:"prompt"`
	Image  *inlinePayload  `json:"image,omitempty"`
	Video  *videoReference `json:"video,omitempty"`
}

type inlinePayload struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}

type videoReference struct {
	Uri string `json:"uri"`
}

type videoJobParameters struct {
	AspectRatio      string `json:"aspectRatio,omitempty"`
	PersonGeneration string `json:"personGeneration,omitempty"`
	NegativePrompt   string `json:"negativePrompt,omitempty"`
	DurationSeconds  int    `json:"durationSeconds,omitempty"`
	EnhancePrompt    bool   `json:"enhancePrompt,omitempty"`
}

type videoJobRequest struct {
	Instances  []videoJobInstance `json:"instances"`
	Parameters videoJobParameters `json:"parameters"`
}

type videoJobOperation struct {
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	Error    *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Response *struct {
		GenerateVideoResponse struct {
			GeneratedSamples []struct {
				Video videoReference `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response,omitempty"`
}

type videoJobClient struct {
	ContentFetcher
	logger      outbound.LoggerPort
	videoConfig *config.VideoConfig
}

func NewVideoJobClient(contentFetcher ContentFetcher, videoConfig *config.VideoConfig, logger outbound.LoggerPort) outbound.VideoJobPort {
	return &videoJobClient{
		ContentFetcher: contentFetcher,
		logger:         logger,
		videoConfig:    videoConfig,
	}
}

func (c *videoJobClient) Submit(ctx context.Context, req outbound.SubmitVideoJobRequest) (*domain.GenerationJob, error) {
	if c.videoConfig.ApiKey == "" {
		return nil, domain.MissingCredential("video API key is not configured")
	}

	instance := videoJobInstance{Prompt: req.Prompt}
	if len(req.ImageBytes) > 0 {
		instance.Image = &inlinePayload{
			BytesBase64Encoded: base64.StdEncoding.EncodeToString(req.ImageBytes),
			MimeType:           req.ImageMimeType,
		}
	}
	if req.VideoURI != "" {
		instance.Video = &videoReference{Uri: req.VideoURI}
	}

	body := videoJobRequest{
		Instances: []videoJobInstance{instance},
		Parameters: videoJobParameters{
			AspectRatio:      req.AspectRatio,
			PersonGeneration: req.PersonPolicy,
			NegativePrompt:   req.NegativePrompt,
			DurationSeconds:  req.DurationSeconds,
			EnhancePrompt:    req.EnhancePrompt,
		},
	}

	jsonPayload, err := json.Marshal(body)
	if err != nil {
		c.logger.Error(err, "Failed to marshal video job request")
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:predictLongRunning", c.videoConfig.ApiUrl, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		c.logger.Error(err, "Failed to create video job submit request")
		return nil, err
	}
	c.setHeaders(httpReq)

	rawRes, err := c.FetchContent(httpReq)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to submit video job", map[string]interface{}{
			"model": req.Model,
		})
		return nil, err
	}

	var op videoJobOperation
	if err := json.Unmarshal(rawRes, &op); err != nil {
		c.logger.Error(err, "Failed to unmarshal video job submit response")
		return nil, err
	}
	if op.Name == "" {
		return nil, fmt.Errorf("video service returned no operation name")
	}

	return &domain.GenerationJob{
		Operation: op.Name,
		Status:    domain.JobPending,
	}, nil
}

func (c *videoJobClient) Poll(ctx context.Context, operation string) (*domain.GenerationJob, error) {
	url := fmt.Sprintf("%s/%s", c.videoConfig.ApiUrl, operation)
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		c.logger.Error(err, "Failed to create video job poll request")
		return nil, err
	}
	c.setHeaders(httpReq)

	rawRes, err := c.FetchContent(httpReq)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to poll video job", map[string]interface{}{
			"operation": operation,
		})
		return nil, err
	}

	var op videoJobOperation
	if err := json.Unmarshal(rawRes, &op); err != nil {
		c.logger.Error(err, "Failed to unmarshal video job poll response")
		return nil, err
	}

	return c.toJob(operation, op), nil
}

func (c *videoJobClient) toJob(operation string, op videoJobOperation) *domain.GenerationJob {
	job := &domain.GenerationJob{
		Operation: operation,
		Status:    domain.JobPending,
	}
	if !op.Done {
		return job
	}

	if op.Error != nil {
		job.Status = domain.JobFailed
		job.Error = op.Error.Message
		return job
	}

	job.Status = domain.JobDone
	if op.Response != nil {
		for _, sample := range op.Response.GenerateVideoResponse.GeneratedSamples {
			job.Media = append(job.Media, domain.MediaItem{
				MimeType: "video/mp4",
				URI:      sample.Video.Uri,
			})
		}
	}
	return job
}

func (c *videoJobClient) setHeaders(req *http.Request) {
	req.Header.Add("x-goog-api-key", c.videoConfig.ApiKey)
	req.Header.Add("Content-Type", "application/json")
}
