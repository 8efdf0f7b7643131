package adapters

import (
	"fmt"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/domain"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type ffmpegMuxer struct {
	logger    outbound.LoggerPort
	outputDir string
}

func NewFFMPEGMuxer(outputDir string, logger outbound.LoggerPort) outbound.MuxerPort {
	return &ffmpegMuxer{
		logger:    logger,
		outputDir: outputDir,
	}
}

// Combine loops the single frame over the audio track. The audio is always
// the limiting duration, so -shortest truncates the output to it.
func (m *ffmpegMuxer) Combine(framePath string, audioPath string) (string, error) {
	if _, err := os.Stat(framePath); err != nil {
		return "", domain.InputNotFound("Frame file not found: %s", framePath)
	}
	if _, err := os.Stat(audioPath); err != nil {
		return "", domain.InputNotFound("Audio file not found: %s", audioPath)
	}

	outputFile := filepath.Join(m.outputDir, "combined_"+uuid.NewString()+".mp4")
	cmd := exec.Command("ffmpeg", "-loop", "1", "-framerate", "1", "-i", framePath, "-i", audioPath,
		"-c:v", "libx264", "-tune", "stillimage", "-c:a", "aac", "-b:a", "192k",
		"-pix_fmt", "yuv420p", "-shortest", outputFile)

	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		m.logger.ErrorWithFields(err, "ffmpeg failed", map[string]interface{}{
			"frame": framePath,
			"audio": audioPath,
		})
		return "", domain.MuxingFailed("%s", muxerErrorText(err, stderr.String()))
	}

	return outputFile, nil
}

func muxerErrorText(err error, stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return err.Error()
	}
	return fmt.Sprintf("%v: %s", err, stderr)
}
