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

type imagePredictRequest struct {
	Instances []struct {
		Prompt string `json:"prompt"`
	} `json:"instances"`
	Parameters struct {
		SampleCount     int    `json:"sampleCount"`
		SampleImageSize string `json:"sampleImageSize,omitempty"`
	} `json:"parameters"`
}

type imagePredictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

type imageClient struct {
	ContentFetcher
	logger      outbound.LoggerPort
	imageConfig *config.ImageConfig
}

func NewImageClient(contentFetcher ContentFetcher, imageConfig *config.ImageConfig, logger outbound.LoggerPort) outbound.ImageServicePort {
	return &imageClient{
		ContentFetcher: contentFetcher,
		logger:         logger,
		imageConfig:    imageConfig,
	}
}

func (c *imageClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if c.imageConfig.ApiKey == "" {
		return nil, domain.MissingCredential("image API key is not configured")
	}

	req, err := c.getRequest(ctx, prompt)
	if err != nil {
		c.logger.Error(err, "Failed to create the image generation request")
		return nil, err
	}

	rawRes, err := c.FetchContent(req)
	if err != nil {
		c.logger.Error(err, "Failed to fetch the generated image")
		return nil, err
	}

	var predictRes imagePredictResponse
	if err := json.Unmarshal(rawRes, &predictRes); err != nil {
		c.logger.Error(err, "Failed to unmarshal the image response")
		return nil, err
	}

	if len(predictRes.Predictions) == 0 {
		return nil, domain.ArtifactNotFound("image service returned no predictions")
	}

	decodedImage, err := base64.StdEncoding.DecodeString(predictRes.Predictions[0].BytesBase64Encoded)
	if err != nil {
		c.logger.Error(err, "Failed to decode the image payload")
		return nil, err
	}

	return decodedImage, nil
}

func (c *imageClient) getRequest(ctx context.Context, prompt string) (*http.Request, error) {
	var reqBody imagePredictRequest
	reqBody.Instances = []struct {
		Prompt string `json:"prompt"`
	}{{Prompt: prompt}}
	reqBody.Parameters.SampleCount = 1
	reqBody.Parameters.SampleImageSize = c.imageConfig.Size

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:predict", c.imageConfig.ApiUrl, c.imageConfig.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	req.Header.Add("x-goog-api-key", c.imageConfig.ApiKey)
	req.Header.Add("Content-Type", "application/json")

	return req, nil
}
