package inbound

import (
	"context"
	"generate-lecture-video/domain"
)

// ProgressSink receives the cosmetic progress messages emitted while an
// async job is being polled. The messages are presentation-layer only
// and carry no real progress signal.
type ProgressSink func(message string)

// StageExecutorPort runs exactly one pipeline stage for one work item,
// normalizing any failure into a *domain.StageError.
type StageExecutorPort interface {
	SynthesizeNarration(ctx context.Context, text string, voice domain.VoiceSpec) (string, error)
	SyncLips(ctx context.Context, audioURL string, videoURL string) (string, error)
	ComposeSlide(ctx context.Context, imageURL string, videoURL string) (string, error)
	ConcatenateVideos(ctx context.Context, videoURLs []string) (string, error)
	SwapFace(ctx context.Context, sourceURL string, targetURL string, progress ProgressSink) (string, error)
}
