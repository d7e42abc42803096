package mock_pipeline

import (
	"context"
	"time"

	"generate-lecture-video/application/ports/inbound"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/channel_utils"
	"generate-lecture-video/domain"
)

type Runner struct {
	logger        outbound.LoggerPort
	workerPool    outbound.TaskDispatcher
	eventReader   EventReader
	workflowStore inbound.WorkflowStorePort
}

func NewRunner(workerPool outbound.TaskDispatcher, eventReader EventReader, workflowStore inbound.WorkflowStorePort,
	logger outbound.LoggerPort) *Runner {
	return &Runner{
		logger:        logger,
		workerPool:    workerPool,
		eventReader:   eventReader,
		workflowStore: workflowStore,
	}
}

func (r *Runner) Run(ctx context.Context, runID string) (<-chan domain.ProgressEvent, <-chan error) {
	eventCh, replayErrCh := r.replayFromFile(ctx, "mock/events.json", runID)

	publishedCh, publishErrCh := r.publishToStore(ctx, runID, eventCh)

	mergedErrCh, err := channel_utils.MergeChannels(r.workerPool, replayErrCh, publishErrCh)
	if err != nil {
		out := make(chan domain.ProgressEvent)
		errCh := make(chan error, 1)
		errCh <- err
		close(out)
		close(errCh)
		return out, errCh
	}

	return publishedCh, mergedErrCh
}

func (r *Runner) replayFromFile(ctx context.Context, fileName string, runID string) (<-chan domain.ProgressEvent, <-chan error) {
	out := make(chan domain.ProgressEvent)
	errCh := make(chan error, 1)

	mockEvents, err := r.eventReader.Read(fileName)
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
		return out, errCh
	}

	err = r.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		for _, e := range mockEvents {
			select {
			case <-ctx.Done():
				return
			default:
				time.Sleep(time.Duration(e.Delay) * time.Second)
				event := e.ProgressEvent
				event.RunID = runID
				out <- event
			}
		}
		r.logger.Info("Finished replaying recorded pipeline events.")
	})
	if err != nil {
		errCh <- err
	}

	return out, errCh
}

func (r *Runner) publishToStore(ctx context.Context, runID string, events <-chan domain.ProgressEvent) (<-chan domain.ProgressEvent, <-chan error) {
	out := make(chan domain.ProgressEvent)
	errCh := make(chan error, 1)

	err := r.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		r.workflowStore.BeginRun(runID, domain.PresentationMetadata{})
		for event := range events {
			r.workflowStore.Publish(event)
			if event.SlideNumber >= 0 && event.URL != "" {
				r.workflowStore.AddSlideResult(domain.SlideResult{
					SlideNumber: event.SlideNumber,
					ComposedURL: event.URL,
				})
			}
			if event.Stage == domain.StageDone && event.URL != "" {
				r.workflowStore.SetFinalVideo(event.URL)
			}
			select {
			case <-ctx.Done():
				return
			case out <- event:
			}
		}
	})
	if err != nil {
		errCh <- err
	}

	return out, errCh
}
