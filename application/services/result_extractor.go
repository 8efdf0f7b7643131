package services

import (
	"encoding/json"
	"fmt"
	"media-orchestrator/application/ports/inbound"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/domain"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// extractStrategy tries to recover an artifact path from a tool invocation
// record. Strategies are attempted in order; the first hit wins.
type extractStrategy func(record *domain.ToolInvocationRecord, extension string) (domain.ExtractedArtifact, bool)

type resultExtractor struct {
	logger     outbound.LoggerPort
	outputDir  string
	strategies []extractStrategy
}

// NewResultExtractor builds the default strategy chain: the first tool call's
// output, then the response text, then the most recent matching file in the
// output directory. The recency scan is a best-effort heuristic and is not
// safe when concurrent runs share one output directory.
func NewResultExtractor(outputDir string, logger outbound.LoggerPort) inbound.ArtifactExtractorPort {
	e := &resultExtractor{
		logger:    logger,
		outputDir: outputDir,
	}
	e.strategies = []extractStrategy{
		e.fromCallOutput,
		e.fromResponseText,
		e.fromRecentFile,
	}
	return e
}

func (e *resultExtractor) Extract(record *domain.ToolInvocationRecord, extension string) (domain.ExtractedArtifact, error) {
	for _, strategy := range e.strategies {
		if artifact, ok := strategy(record, extension); ok {
			e.logger.DebugWithFields("Extracted artifact from tool output", map[string]interface{}{
				"path":     artifact.Path,
				"strategy": artifact.Strategy,
			})
			return artifact, nil
		}
	}
	return domain.ExtractedArtifact{}, domain.ExtractionFailed(
		"could not extract artifact from tool output: %s", record.Text)
}

func (e *resultExtractor) fromCallOutput(record *domain.ToolInvocationRecord, extension string) (domain.ExtractedArtifact, bool) {
	if len(record.Calls) == 0 {
		return domain.ExtractedArtifact{}, false
	}

	text := stringifyOutput(record.Calls[0].Output)
	if path, ok := findPath(text, extension); ok {
		return domain.ExtractedArtifact{Path: path, Strategy: "call_output"}, true
	}
	return domain.ExtractedArtifact{}, false
}

func (e *resultExtractor) fromResponseText(record *domain.ToolInvocationRecord, extension string) (domain.ExtractedArtifact, bool) {
	if path, ok := findPath(record.Text, extension); ok {
		return domain.ExtractedArtifact{Path: path, Strategy: "response_text"}, true
	}
	return domain.ExtractedArtifact{}, false
}

// fromRecentFile only applies when the host reported no tool calls at all;
// with calls present, a miss there means the invocation produced nothing.
func (e *resultExtractor) fromRecentFile(record *domain.ToolInvocationRecord, extension string) (domain.ExtractedArtifact, bool) {
	if len(record.Calls) > 0 {
		return domain.ExtractedArtifact{}, false
	}

	entries, err := os.ReadDir(e.outputDir)
	if err != nil {
		e.logger.Error(err, "Failed to scan output directory")
		return domain.ExtractedArtifact{}, false
	}

	type candidate struct {
		path    string
		modTime int64
	}
	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), extension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path:    filepath.Join(e.outputDir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}
	if len(candidates) == 0 {
		return domain.ExtractedArtifact{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime > candidates[j].modTime
	})

	return domain.ExtractedArtifact{Path: candidates[0].path, Strategy: "recent_file"}, true
}

func stringifyOutput(output interface{}) string {
	switch v := output.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

func findPath(text string, extension string) (string, bool) {
	pattern := regexp.MustCompile(`[^\s"'` + "`" + `]+\` + extension)
	match := pattern.FindString(text)
	if match == "" {
		return "", false
	}
	return match, true
}
