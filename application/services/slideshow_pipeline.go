package services

import (
	"context"
	"errors"
	"media-orchestrator/application/ports/inbound"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/domain"
)

type slideshowPipeline struct {
	imageGenerator  inbound.GeneratorPort
	speechGenerator inbound.SpeechGeneratorPort
	muxer           outbound.MuxerPort
	publisher       outbound.VideoPublisherPort
	runStore        outbound.RunStorePort
	logger          outbound.LoggerPort
}

func NewSlideshowPipeline(
	imageGenerator inbound.GeneratorPort,
	speechGenerator inbound.SpeechGeneratorPort,
	muxer outbound.MuxerPort,
	publisher outbound.VideoPublisherPort,
	runStore outbound.RunStorePort,
	logger outbound.LoggerPort) inbound.SlideshowPipelinePort {
	return &slideshowPipeline{
		imageGenerator:  imageGenerator,
		speechGenerator: speechGenerator,
		muxer:           muxer,
		publisher:       publisher,
		runStore:        runStore,
		logger:          logger,
	}
}

// Run walks the stages strictly in order. Every stage outcome is recorded
// before the next stage is evaluated, so a failed run still reports each
// completed stage's artifacts alongside the failure reason.
func (p *slideshowPipeline) Run(ctx context.Context, params inbound.StartSlideshowParams) *domain.PipelineRun {
	run := domain.NewPipelineRun(params.RunID, params.UserID)

	imageResult := p.imageGenerator.Generate(ctx, domain.GenerationRequest{
		Capability: domain.TextToImage,
		Prompt:     params.ImagePrompt,
	})
	p.record(ctx, run, domain.StageImage, imageResult)
	if !imageResult.Success {
		return p.fail(ctx, run, imageResult.Error)
	}

	run.State = domain.AudioPending
	audioResult := p.speechGenerator.Narrate(ctx, params.Narration)
	p.record(ctx, run, domain.StageAudio, audioResult)
	if !audioResult.Success {
		return p.fail(ctx, run, audioResult.Error)
	}

	run.State = domain.MuxingPending
	videoPath, err := p.muxer.Combine(imageResult.LocalPath, audioResult.LocalPath)
	if err != nil {
		p.record(ctx, run, domain.StageMux, domain.FailureResult(err))
		return p.fail(ctx, run, err.Error())
	}
	p.record(ctx, run, domain.StageMux, domain.SuccessResult(videoPath, "", ""))

	if params.Publish {
		run.State = domain.PublishPending
		publishRes, err := p.publisher.Publish(ctx, outbound.PublishVideoRequest{
			VideoFileName: videoPath,
			RunID:         run.ID,
			UserID:        run.UserID,
		})
		if err != nil {
			p.record(ctx, run, domain.StagePublish, domain.FailureResult(err))
			return p.fail(ctx, run, err.Error())
		}
		p.record(ctx, run, domain.StagePublish, domain.SuccessResult(videoPath, publishRes.VideoKey, ""))
	}

	run.Complete()
	p.persist(ctx, run)

	p.logger.InfoWithFields("Slideshow pipeline complete", map[string]interface{}{
		"run_id": run.ID,
		"video":  videoPath,
	})

	return run
}

func (p *slideshowPipeline) record(ctx context.Context, run *domain.PipelineRun, stage domain.StageName, result domain.GenerationResult) {
	run.Record(stage, result)
	p.persist(ctx, run)
}

func (p *slideshowPipeline) fail(ctx context.Context, run *domain.PipelineRun, reason string) *domain.PipelineRun {
	run.Fail(reason)
	p.persist(ctx, run)
	p.logger.ErrorWithFields(errors.New(reason), "Slideshow pipeline failed", map[string]interface{}{
		"run_id": run.ID,
		"state":  string(run.State),
	})
	return run
}

// Run records are diagnostics; a store failure must not fail the pipeline.
func (p *slideshowPipeline) persist(ctx context.Context, run *domain.PipelineRun) {
	if err := p.runStore.Save(ctx, run); err != nil {
		p.logger.WarnWithFields("Failed to persist pipeline run", map[string]interface{}{
			"run_id": run.ID,
			"error":  err.Error(),
		})
	}
}
