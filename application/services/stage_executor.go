package services

import (
	"context"
	"fmt"
	"generate-lecture-video/application/ports/inbound"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/config"
	"generate-lecture-video/domain"
	"time"
)

// faceSwapPhases are the cosmetic messages cycled while the swap job is
// polled. They are not derived from real model progress.
var faceSwapPhases = []string{
	"Analyzing target video",
	"Matching facial landmarks",
	"Rendering swapped frames",
	"Refining output",
}

type stageExecutor struct {
	logger       outbound.LoggerPort
	synthesizer  outbound.SpeechSynthesizerPort
	lipSyncer    outbound.LipSyncerPort
	composer     outbound.SlideComposerPort
	concatenator outbound.VideoConcatenatorPort
	faceSwap     outbound.FaceSwapPort
	pollInterval time.Duration
	maxAttempts  int
}

func NewStageExecutor(logger outbound.LoggerPort, synthesizer outbound.SpeechSynthesizerPort,
	lipSyncer outbound.LipSyncerPort, composer outbound.SlideComposerPort,
	concatenator outbound.VideoConcatenatorPort, faceSwap outbound.FaceSwapPort,
	pipelineConfig *config.PipelineConfig) inbound.StageExecutorPort {
	return &stageExecutor{
		logger:       logger,
		synthesizer:  synthesizer,
		lipSyncer:    lipSyncer,
		composer:     composer,
		concatenator: concatenator,
		faceSwap:     faceSwap,
		pollInterval: pipelineConfig.PollInterval,
		maxAttempts:  pipelineConfig.MaxPollAttempts,
	}
}

func (s *stageExecutor) SynthesizeNarration(ctx context.Context, text string, voice domain.VoiceSpec) (string, error) {
	if text == "" {
		return "", s.fail(domain.StageNarrating, &domain.ValidationError{Field: "text", Reason: "narration text is empty"})
	}
	if err := voice.Validate(); err != nil {
		return "", s.fail(domain.StageNarrating, err)
	}
	audioURL, err := s.synthesizer.Synthesize(ctx, outbound.SynthesizeRequest{Text: text, Voice: voice})
	if err != nil {
		return "", s.fail(domain.StageNarrating, err)
	}
	return audioURL, nil
}

func (s *stageExecutor) SyncLips(ctx context.Context, audioURL string, videoURL string) (string, error) {
	resultURL, err := s.lipSyncer.Sync(ctx, audioURL, videoURL)
	if err != nil {
		return "", s.fail(domain.StageLipSyncing, err)
	}
	return resultURL, nil
}

func (s *stageExecutor) ComposeSlide(ctx context.Context, imageURL string, videoURL string) (string, error) {
	resultURL, err := s.composer.Compose(ctx, imageURL, videoURL)
	if err != nil {
		return "", s.fail(domain.StageComposing, err)
	}
	return resultURL, nil
}

func (s *stageExecutor) ConcatenateVideos(ctx context.Context, videoURLs []string) (string, error) {
	if len(videoURLs) == 0 {
		return "", s.fail(domain.StageConcatenating, &domain.ValidationError{Field: "videos", Reason: "nothing to concatenate"})
	}
	resultURL, err := s.concatenator.Concatenate(ctx, videoURLs)
	if err != nil {
		return "", s.fail(domain.StageConcatenating, err)
	}
	return resultURL, nil
}

// SwapFace submits the swap job and polls it on a fixed interval until
// it reaches a terminal state or the attempt bound is exhausted. One
// cosmetic phase message is emitted per poll.
func (s *stageExecutor) SwapFace(ctx context.Context, sourceURL string, targetURL string, progress inbound.ProgressSink) (string, error) {
	jobID, err := s.faceSwap.Submit(ctx, sourceURL, targetURL)
	if err != nil {
		return "", s.fail(domain.StagePreparingPresenter, err)
	}
	s.logger.DebugWithFields("face swap job submitted", map[string]interface{}{
		"job_id": jobID,
	})

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", s.fail(domain.StagePreparingPresenter, ctx.Err())
		case <-time.After(s.pollInterval):
		}

		if progress != nil {
			progress(faceSwapPhases[attempt%len(faceSwapPhases)])
		}

		handle, err := s.faceSwap.Poll(ctx, jobID)
		if err != nil {
			return "", s.fail(domain.StagePreparingPresenter, err)
		}
		switch handle.Status {
		case domain.JobCompleted:
			return handle.ResultURL, nil
		case domain.JobFailed:
			return "", s.fail(domain.StagePreparingPresenter, fmt.Errorf("face swap job %s failed", jobID))
		}
	}

	return "", s.fail(domain.StagePreparingPresenter, &domain.TimeoutError{JobID: jobID, Attempts: s.maxAttempts})
}

func (s *stageExecutor) fail(stage domain.PipelineStage, err error) error {
	s.logger.ErrorWithFields(err, "stage failed", map[string]interface{}{
		"stage": stage,
	})
	return &domain.StageError{Stage: stage, Err: err}
}
