package services

import (
	"context"
	"media-orchestrator/application/ports/inbound"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/domain"
	"time"
)

type jobPoller struct {
	client   outbound.VideoJobPort
	logger   outbound.LoggerPort
	interval time.Duration
	maxWait  time.Duration
}

// NewJobPoller builds a bounded wait loop over one remote operation. The
// interval is variant-dependent; maxWait caps the total wait so a hung remote
// job cannot block the caller forever.
func NewJobPoller(client outbound.VideoJobPort, interval time.Duration, maxWait time.Duration, logger outbound.LoggerPort) inbound.JobAwaiterPort {
	return &jobPoller{
		client:   client,
		logger:   logger,
		interval: interval,
		maxWait:  maxWait,
	}
}

func (p *jobPoller) Await(ctx context.Context, operation string) (*domain.GenerationJob, error) {
	deadline := time.Now().Add(p.maxWait)
	iteration := 0

	for {
		job, err := p.client.Poll(ctx, operation)
		if err != nil {
			return nil, err
		}
		iteration++

		p.logger.InfoWithFields("Polled generation job", map[string]interface{}{
			"operation": operation,
			"status":    string(job.Status),
			"iteration": iteration,
		})

		if job.Status == domain.JobDone {
			return job, nil
		}
		if job.Status == domain.JobFailed {
			return nil, domain.RemoteJobFailed("remote job failed: %s", job.Error)
		}

		if time.Now().After(deadline) {
			return nil, domain.RemoteJobFailed("remote job did not finish within %s", p.maxWait)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.interval):
		}
	}
}
