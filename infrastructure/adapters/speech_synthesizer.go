package adapters

import (
	"bytes"
	"context"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/config"
	"generate-lecture-video/domain"
	"mime/multipart"
	"net/http"
)

type ttsResponse struct {
	AudioFileURL string `json:"audio_file_url"`
}

type speechSynthesizer struct {
	ContentFetcher
	logger    outbound.LoggerPort
	ttsConfig *config.TtsConfig
}

func NewSpeechSynthesizer(contentFetcher ContentFetcher, ttsConfig *config.TtsConfig, logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &speechSynthesizer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		ttsConfig:      ttsConfig,
	}
}

func (s *speechSynthesizer) Synthesize(ctx context.Context, req outbound.SynthesizeRequest) (string, error) {
	if req.Text == "" {
		return "", &domain.ValidationError{Field: "text", Reason: "narration text is empty"}
	}
	if err := req.Voice.Validate(); err != nil {
		return "", err
	}

	httpReq, err := s.getRequest(ctx, req)
	if err != nil {
		s.logger.ErrorWithFields(err, "failed to construct the TTS request", map[string]interface{}{
			"voice_mode": req.Voice.Mode,
		})
		return "", err
	}

	var res ttsResponse
	if err := s.FetchJSON(httpReq, "speech synthesizer", &res); err != nil {
		return "", err
	}

	return res.AudioFileURL, nil
}

// getRequest encodes the narration request as the multipart form the TTS
// service expects, with the field set depending on the voice mode.
func (s *speechSynthesizer) getRequest(ctx context.Context, req outbound.SynthesizeRequest) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{"text": req.Text}
	switch req.Voice.Mode {
	case domain.VoiceModeSample:
		fields["audio_url"] = req.Voice.VoiceID
	case domain.VoiceModeClone:
		fields["reference_audio_url"] = req.Voice.ReferenceAudioURL
		fields["reference_text"] = req.Voice.ReferenceText
	case domain.VoiceModePreset:
		fields["gender"] = req.Voice.Gender
		fields["area"] = req.Voice.Area
		fields["group"] = req.Voice.Group
		fields["emotion"] = req.Voice.Emotion
	}

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ttsConfig.Host+"/generate", &body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	return httpReq, nil
}
