package execution

import (
	"context"
	"sync"
	"time"

	"pyformat/internal/config"
	"pyformat/internal/domain"
	"pyformat/internal/ui"
)

// WorkerPool runs probes in parallel
type WorkerPool struct {
	config    *config.Config
	runner    CommandRunner
	scheduler Scheduler
	progress  *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner CommandRunner, scheduler Scheduler) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute runs every probe. A failing probe is reported in its result,
// never as the returned error; that is reserved for cancellation.
func (wp *WorkerPool) Execute(ctx context.Context, probes []domain.Probe) ([]domain.ProbeResult, time.Duration, error) {
	if len(probes) == 0 {
		return nil, 0, nil
	}

	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(probes) {
		workerCount = len(probes)
	}
	batches := wp.scheduler.Schedule(len(probes), workerCount)

	results := make([]domain.ProbeResult, len(probes))
	var mu sync.Mutex
	startTime := time.Now()

	var wg sync.WaitGroup
	for _, batch := range batches {
		wg.Add(1)
		go func(batch []int) {
			defer wg.Done()
			for _, i := range batch {
				if ctx.Err() != nil {
					return
				}
				// Each index is written by exactly one worker
				results[i] = wp.runner.Run(ctx, probes[i])
				if wp.progress != nil {
					mu.Lock()
					wp.progress.Step(results[i].Success)
					mu.Unlock()
				}
			}
		}(batch)
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}
	if err := ctx.Err(); err != nil {
		return nil, time.Since(startTime), err
	}
	return results, time.Since(startTime), nil
}
