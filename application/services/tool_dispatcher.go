package services

import (
	"context"
	"media-orchestrator/application/ports/inbound"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/domain"
)

type toolDispatcher struct {
	fastVideo inbound.GeneratorPort
	hqVideo   inbound.GeneratorPort
	image     inbound.GeneratorPort
	muxer     outbound.MuxerPort
	logger    outbound.LoggerPort
}

func NewToolDispatcher(fastVideo inbound.GeneratorPort, hqVideo inbound.GeneratorPort, image inbound.GeneratorPort,
	muxer outbound.MuxerPort, logger outbound.LoggerPort) inbound.ToolDispatcherPort {
	return &toolDispatcher{
		fastVideo: fastVideo,
		hqVideo:   hqVideo,
		image:     image,
		muxer:     muxer,
		logger:    logger,
	}
}

func (d *toolDispatcher) Dispatch(ctx context.Context, name string, args inbound.ToolArgs) inbound.ToolResponse {
	if len(args) == 0 {
		return failureResponse(domain.InvalidRequest("no arguments provided"))
	}

	d.logger.InfoWithFields("Dispatching tool invocation", map[string]interface{}{
		"tool": name,
	})

	switch name {
	case "generate_image":
		return d.generateImage(ctx, args)
	case "combine_frame_and_audio":
		return d.combineFrameAndAudio(args)
	case "text_to_video_fast":
		return toResponse(d.fastVideo.Generate(ctx, videoRequest(domain.TextToVideo, args, false)), true)
	case "image_to_video_fast":
		return toResponse(d.fastVideo.Generate(ctx, videoRequest(domain.ImageToVideo, args, false)), true)
	case "video_extension_fast":
		return toResponse(d.fastVideo.Generate(ctx, videoRequest(domain.VideoExtension, args, false)), true)
	case "text_to_video_hq":
		return toResponse(d.hqVideo.Generate(ctx, videoRequest(domain.TextToVideo, args, true)), true)
	case "image_to_video_hq":
		return toResponse(d.hqVideo.Generate(ctx, videoRequest(domain.ImageToVideo, args, true)), true)
	case "video_extension_hq":
		// The hq extension result deliberately omits the remote locator.
		return toResponse(d.hqVideo.Generate(ctx, videoRequest(domain.VideoExtension, args, true)), false)
	default:
		return failureResponse(domain.UnknownTool("unknown tool: %s", name))
	}
}

func (d *toolDispatcher) generateImage(ctx context.Context, args inbound.ToolArgs) inbound.ToolResponse {
	result := d.image.Generate(ctx, domain.GenerationRequest{
		Capability: domain.TextToImage,
		Prompt:     stringArg(args, "prompt"),
	})
	if !result.Success {
		return inbound.ToolResponse{Error: result.Error}
	}
	return inbound.ToolResponse{
		Success:   true,
		ImagePath: result.LocalPath,
	}
}

func (d *toolDispatcher) combineFrameAndAudio(args inbound.ToolArgs) inbound.ToolResponse {
	videoPath, err := d.muxer.Combine(stringArg(args, "framePath"), stringArg(args, "audioPath"))
	if err != nil {
		return failureResponse(err)
	}
	return inbound.ToolResponse{
		Success:   true,
		VideoPath: videoPath,
	}
}

func videoRequest(capability domain.Capability, args inbound.ToolArgs, hq bool) domain.GenerationRequest {
	req := domain.GenerationRequest{
		Capability: capability,
		Prompt:     stringArg(args, "prompt"),
		Options: domain.GenerationOptions{
			AspectRatio:  stringArg(args, "aspectRatio"),
			PersonPolicy: domain.PersonPolicy(stringArg(args, "personPolicy")),
		},
	}
	if capability == domain.ImageToVideo {
		req.SourcePath = stringArg(args, "imagePath")
	}
	if capability == domain.VideoExtension {
		req.SourceLocator = stringArg(args, "videoLocator")
	}
	if hq {
		req.NegativePrompt = stringArg(args, "negativePrompt")
		req.Options.DurationSeconds = intArg(args, "durationSeconds")
		req.Options.EnhancePrompt = boolArg(args, "enhancePrompt")
	}
	return req
}

func toResponse(result domain.GenerationResult, withLocator bool) inbound.ToolResponse {
	if !result.Success {
		return inbound.ToolResponse{Error: result.Error}
	}
	response := inbound.ToolResponse{
		Success:   true,
		VideoPath: result.LocalPath,
		TraceID:   result.TraceID,
	}
	if withLocator {
		response.VideoLocator = result.Locator
	}
	return response
}

func failureResponse(err error) inbound.ToolResponse {
	return inbound.ToolResponse{Error: err.Error()}
}

func stringArg(args inbound.ToolArgs, key string) string {
	if value, ok := args[key].(string); ok {
		return value
	}
	return ""
}

func intArg(args inbound.ToolArgs, key string) int {
	switch value := args[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	default:
		return 0
	}
}

func boolArg(args inbound.ToolArgs, key string) bool {
	if value, ok := args[key].(bool); ok {
		return value
	}
	return false
}
