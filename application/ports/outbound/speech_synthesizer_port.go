package outbound

import (
	"context"
	"generate-lecture-video/domain"
)

type SynthesizeRequest struct {
	Text  string
	Voice domain.VoiceSpec
}

type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, req SynthesizeRequest) (string, error)
}
