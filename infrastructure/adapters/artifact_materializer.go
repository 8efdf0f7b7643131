package adapters

import (
	"context"
	"encoding/base64"
	"io"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/domain"
	"net/http"
	"net/url"
	"os"
)

type artifactMaterializer struct {
	ContentFetcher
	client *http.Client
	logger outbound.LoggerPort
	apiKey string
}

func NewArtifactMaterializer(contentFetcher ContentFetcher, apiKey string, logger outbound.LoggerPort) outbound.ArtifactFetcherPort {
	return &artifactMaterializer{
		ContentFetcher: contentFetcher,
		client:         &http.Client{},
		logger:         logger,
		apiKey:         apiKey,
	}
}

func (m *artifactMaterializer) Fetch(ctx context.Context, item domain.MediaItem) ([]byte, error) {
	if item.InlineData != "" {
		decoded, err := base64.StdEncoding.DecodeString(item.InlineData)
		if err != nil {
			m.logger.Error(err, "Failed to decode inline artifact payload")
			return nil, domain.DownloadFailed("failed to decode inline artifact payload: %v", err)
		}
		return decoded, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", item.URI, nil)
	if err != nil {
		return nil, domain.DownloadFailed("failed to create artifact request: %v", err)
	}

	payload, err := m.FetchContent(req)
	if err != nil {
		return nil, domain.DownloadFailed("failed to download artifact from %s: %v", item.URI, err)
	}
	return payload, nil
}

// FetchToFile streams the body directly to destPath. Video payloads can run
// to hundreds of megabytes, so they are never buffered in memory.
func (m *artifactMaterializer) FetchToFile(ctx context.Context, uri string, destPath string) error {
	signedURI, err := m.withKey(uri)
	if err != nil {
		return domain.DownloadFailed("invalid artifact locator %s: %v", uri, err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", signedURI, nil)
	if err != nil {
		return domain.DownloadFailed("failed to create download request: %v", err)
	}

	res, err := m.client.Do(req)
	if err != nil {
		m.logger.ErrorWithFields(err, "Failed to download artifact", map[string]interface{}{
			"URL": uri,
		})
		return domain.DownloadFailed("failed to download artifact from %s: %v", uri, err)
	}

	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			m.logger.Error(err, "Failed to close the download body")
		}
	}(res.Body)

	if res.StatusCode != http.StatusOK {
		return domain.DownloadFailed("artifact download returned status %d for %s", res.StatusCode, uri)
	}
	if res.Body == nil {
		return domain.DownloadFailed("artifact download returned no body for %s", uri)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return domain.DownloadFailed("failed to create %s: %v", destPath, err)
	}

	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			m.logger.Error(err, "Failed to close the artifact file")
		}
	}(file)

	if _, err := io.Copy(file, res.Body); err != nil {
		if removeErr := os.Remove(destPath); removeErr != nil {
			m.logger.Error(removeErr, "Failed to remove partial artifact file")
		}
		return domain.DownloadFailed("failed to write artifact to %s: %v", destPath, err)
	}

	return nil
}

func (m *artifactMaterializer) withKey(uri string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	query.Set("key", m.apiKey)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
