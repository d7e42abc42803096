package services

import (
	"context"
	"fmt"
	"generate-lecture-video/application/ports/inbound"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/domain"
	"path"
	"sort"
	"strings"
	"sync/atomic"
)

type pipelineOrchestrator struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
	executor   inbound.StageExecutorPort
	uploader   outbound.MediaUploaderPort
	runCache   outbound.RunCachePort
	recorder   outbound.VideoRecorderPort
	store      inbound.WorkflowStorePort
	running    atomic.Bool
}

func NewPipelineOrchestrator(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	executor inbound.StageExecutorPort, uploader outbound.MediaUploaderPort,
	runCache outbound.RunCachePort, recorder outbound.VideoRecorderPort,
	store inbound.WorkflowStorePort) inbound.PipelineOrchestratorPort {
	return &pipelineOrchestrator{
		logger:     logger,
		workerPool: workerPool,
		executor:   executor,
		uploader:   uploader,
		runCache:   runCache,
		recorder:   recorder,
		store:      store,
	}
}

func (p *pipelineOrchestrator) Active() bool {
	return p.running.Load()
}

// Run validates the request, claims the single-run slot and drives the
// production on the worker pool. Both returned channels close when the
// run reaches a terminal state.
func (p *pipelineOrchestrator) Run(ctx context.Context, params inbound.StartRunParams) (<-chan domain.ProgressEvent, <-chan error) {
	events := make(chan domain.ProgressEvent, 16)
	errCh := make(chan error, 1)

	if err := p.validate(params); err != nil {
		errCh <- err
		close(events)
		close(errCh)
		return events, errCh
	}

	if !p.running.CompareAndSwap(false, true) {
		errCh <- domain.ErrRunInProgress
		close(events)
		close(errCh)
		return events, errCh
	}

	err := p.workerPool.Submit(func() {
		defer p.running.Store(false)
		defer close(events)
		defer close(errCh)

		p.store.BeginRun(params.RunID, params.Metadata)

		if err := p.execute(ctx, params, events); err != nil {
			p.store.SetError(err)
			p.progress(ctx, events, domain.ProgressEvent{
				RunID:       params.RunID,
				Stage:       domain.StageFailed,
				SlideNumber: -1,
				Message:     err.Error(),
			})
			errCh <- err
		}
	})
	if err != nil {
		p.running.Store(false)
		p.logger.Error(err, "failed to submit pipeline run")
		errCh <- err
		close(events)
		close(errCh)
	}

	return events, errCh
}

// validate enforces every precondition before any gateway call is made.
func (p *pipelineOrchestrator) validate(params inbound.StartRunParams) error {
	if err := params.Metadata.Validate(); err != nil {
		return err
	}

	narrated := 0
	for _, slide := range params.Metadata.Slides {
		if slide.Type == domain.TitleSlideType {
			continue
		}
		if data, ok := params.Metadata.DataForSlide(slide.SlideNumber); ok && strings.TrimSpace(data.Narration()) != "" {
			narrated++
		}
	}
	if narrated == 0 {
		return &domain.ValidationError{Field: "slides", Reason: "no content slide has narration text"}
	}

	if params.Presenter.VideoURL == "" && len(params.Presenter.CustomVideo) == 0 {
		return &domain.ValidationError{Field: "presenter", Reason: "a presenter video is required"}
	}

	switch params.Voice.Mode {
	case domain.VoiceModeClone:
		if params.Voice.ReferenceAudioURL == "" && len(params.ReferenceAudio) == 0 {
			return &domain.ValidationError{Field: "reference_audio_url", Reason: "clone voice requires a reference audio"}
		}
		if params.Voice.ReferenceText == "" {
			return &domain.ValidationError{Field: "reference_text", Reason: "clone voice requires the reference transcript"}
		}
	default:
		if err := params.Voice.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (p *pipelineOrchestrator) execute(ctx context.Context, params inbound.StartRunParams, events chan<- domain.ProgressEvent) error {
	voice := params.Voice

	videoURL, err := p.resolvePresenterVideo(ctx, params, events)
	if err != nil {
		return err
	}

	if voice.Mode == domain.VoiceModeClone && len(params.ReferenceAudio) > 0 {
		p.progress(ctx, events, domain.ProgressEvent{
			RunID:       params.RunID,
			Stage:       domain.StageUploading,
			SlideNumber: -1,
			Message:     "Uploading reference audio",
		})
		url, err := p.uploader.Upload(ctx, outbound.UploadRequest{
			Content:     params.ReferenceAudio,
			Key:         uploadKey(params.RunID, params.ReferenceAudioName),
			ContentType: "audio/wav",
		})
		if err != nil {
			return err
		}
		voice.ReferenceAudioURL = url
	}

	composedURLs := make([]string, 0, len(params.Metadata.Slides))
	for _, slide := range contentSlidesAscending(params.Metadata.Slides) {
		data, ok := params.Metadata.DataForSlide(slide.SlideNumber)
		if !ok || strings.TrimSpace(data.Narration()) == "" {
			p.store.AddSkippedSlide(slide.SlideNumber)
			p.progress(ctx, events, domain.ProgressEvent{
				RunID:       params.RunID,
				SlideNumber: slide.SlideNumber,
				Message:     fmt.Sprintf("Slide %d has no narration text, skipping", slide.SlideNumber),
				Warning:     true,
			})
			continue
		}

		result, err := p.produceSlide(ctx, params.RunID, slide, data, voice, videoURL, events)
		if err != nil {
			return err
		}
		composedURLs = append(composedURLs, result.ComposedURL)
	}

	p.progress(ctx, events, domain.ProgressEvent{
		RunID:       params.RunID,
		Stage:       domain.StageConcatenating,
		SlideNumber: -1,
		Message:     fmt.Sprintf("Concatenating %d slide videos", len(composedURLs)),
	})
	rawURL, err := p.executor.ConcatenateVideos(ctx, composedURLs)
	if err != nil {
		return err
	}

	p.progress(ctx, events, domain.ProgressEvent{
		RunID:       params.RunID,
		Stage:       domain.StageUploadingFinal,
		SlideNumber: -1,
		Message:     "Moving final video into durable storage",
	})
	finalURL, err := p.uploader.Persist(ctx, rawURL, fmt.Sprintf("videos/%s.mp4", params.RunID))
	if err != nil {
		return err
	}
	p.store.SetFinalVideo(finalURL)

	doneEvent := domain.ProgressEvent{
		RunID:       params.RunID,
		Stage:       domain.StageDone,
		SlideNumber: -1,
		Message:     "Lecture video ready",
		URL:         finalURL,
	}

	// Recording against the account is non-fatal once the video exists.
	if err := p.recorder.Record(ctx, outbound.RecordVideoParams{
		VideoURL: finalURL,
		Username: params.Username,
		UserID:   params.UserID,
	}); err != nil {
		warning := &domain.PersistenceWarning{Err: err}
		p.logger.Warn(warning.Error())
		p.store.SetWarning(warning.Error())
		doneEvent.Message = "Lecture video ready, but it could not be saved to your account"
		doneEvent.Warning = true
	}

	p.progress(ctx, events, doneEvent)
	return nil
}

func (p *pipelineOrchestrator) resolvePresenterVideo(ctx context.Context, params inbound.StartRunParams, events chan<- domain.ProgressEvent) (string, error) {
	videoURL := params.Presenter.VideoURL
	if len(params.Presenter.CustomVideo) > 0 {
		p.progress(ctx, events, domain.ProgressEvent{
			RunID:       params.RunID,
			Stage:       domain.StageUploading,
			SlideNumber: -1,
			Message:     "Uploading presenter video",
		})
		url, err := p.uploader.Upload(ctx, outbound.UploadRequest{
			Content:     params.Presenter.CustomVideo,
			Key:         uploadKey(params.RunID, params.Presenter.CustomVideoName),
			ContentType: "video/mp4",
		})
		if err != nil {
			return "", err
		}
		videoURL = url
	}

	if params.Presenter.FaceImageURL != "" {
		p.progress(ctx, events, domain.ProgressEvent{
			RunID:       params.RunID,
			Stage:       domain.StagePreparingPresenter,
			SlideNumber: -1,
			Message:     "Preparing presenter video",
		})
		swapped, err := p.executor.SwapFace(ctx, params.Presenter.FaceImageURL, videoURL, func(message string) {
			p.progress(ctx, events, domain.ProgressEvent{
				RunID:       params.RunID,
				Stage:       domain.StagePreparingPresenter,
				SlideNumber: -1,
				Message:     message,
			})
		})
		if err != nil {
			return "", err
		}
		videoURL = swapped
	}

	return videoURL, nil
}

func (p *pipelineOrchestrator) produceSlide(ctx context.Context, runID string, slide domain.SlideMetadata,
	data domain.SlideData, voice domain.VoiceSpec, videoURL string, events chan<- domain.ProgressEvent) (*domain.SlideResult, error) {
	p.progress(ctx, events, domain.ProgressEvent{
		RunID:       runID,
		Stage:       domain.StageNarrating,
		SlideNumber: slide.SlideNumber,
		Message:     fmt.Sprintf("Generating narration for slide %d", slide.SlideNumber),
	})
	audioURL, err := p.executor.SynthesizeNarration(ctx, data.Narration(), voice)
	if err != nil {
		return nil, err
	}

	p.progress(ctx, events, domain.ProgressEvent{
		RunID:       runID,
		Stage:       domain.StageLipSyncing,
		SlideNumber: slide.SlideNumber,
		Message:     fmt.Sprintf("Lip-syncing presenter for slide %d", slide.SlideNumber),
	})
	lipSyncURL, err := p.executor.SyncLips(ctx, audioURL, videoURL)
	if err != nil {
		return nil, err
	}

	p.progress(ctx, events, domain.ProgressEvent{
		RunID:       runID,
		Stage:       domain.StageComposing,
		SlideNumber: slide.SlideNumber,
		Message:     fmt.Sprintf("Composing slide %d", slide.SlideNumber),
	})
	composedURL, err := p.executor.ComposeSlide(ctx, slide.Filepath, lipSyncURL)
	if err != nil {
		return nil, err
	}

	result := domain.SlideResult{
		SlideNumber: slide.SlideNumber,
		AudioURL:    audioURL,
		LipSyncURL:  lipSyncURL,
		ComposedURL: composedURL,
	}
	p.store.AddSlideResult(result)

	// The run cache is diagnostic only; a cache failure never fails a
	// slide that was produced.
	if err := p.runCache.Save(ctx, result, runID); err != nil {
		p.logger.WarnWithFields("failed to cache slide result", map[string]interface{}{
			"run_id":       runID,
			"slide_number": slide.SlideNumber,
			"error":        err.Error(),
		})
	}

	return &result, nil
}

// progress records the event in the store and forwards it to the run's
// event stream.
func (p *pipelineOrchestrator) progress(ctx context.Context, events chan<- domain.ProgressEvent, event domain.ProgressEvent) {
	p.store.Publish(event)
	select {
	case events <- event:
	case <-ctx.Done():
	}
}

func contentSlidesAscending(slides []domain.SlideMetadata) []domain.SlideMetadata {
	ordered := make([]domain.SlideMetadata, 0, len(slides))
	for _, slide := range slides {
		if slide.Type == domain.TitleSlideType {
			continue
		}
		ordered = append(ordered, slide)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].SlideNumber < ordered[j].SlideNumber
	})
	return ordered
}

func uploadKey(runID string, fileName string) string {
	name := path.Base(fileName)
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return fmt.Sprintf("uploads/%s/%s", runID, name)
}
