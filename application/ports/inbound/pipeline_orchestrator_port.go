package inbound

import (
	"context"
	"generate-lecture-video/domain"
)

// PresenterSource resolves to the target video the narration is
// lip-synced onto. Exactly one of VideoURL or CustomVideo must be set;
// FaceImageURL optionally triggers a face swap on the resolved video.
type PresenterSource struct {
	VideoURL        string
	CustomVideo     []byte
	CustomVideoName string
	FaceImageURL    string
}

type StartRunParams struct {
	RunID     string
	Metadata  domain.PresentationMetadata
	Voice     domain.VoiceSpec
	Presenter PresenterSource
	// ReferenceAudio is the raw clone reference recording when the
	// caller uploads one instead of passing a hosted URL.
	ReferenceAudio     []byte
	ReferenceAudioName string
	UserID             string
	Username           string
}

// PipelineOrchestratorPort drives one full slide-to-video production.
// Events report per-stage progress; both channels close when the run
// reaches a terminal state.
type PipelineOrchestratorPort interface {
	Run(ctx context.Context, params StartRunParams) (<-chan domain.ProgressEvent, <-chan error)
	Active() bool
}
