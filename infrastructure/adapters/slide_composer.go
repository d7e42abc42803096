package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/config"
	"net/http"
)

type combineSlideRequest struct {
	ImageURL string `json:"image_url"`
	VideoURL string `json:"video_url"`
}

type combineSlideResponse struct {
	ResultURL string `json:"result_url"`
}

type slideComposer struct {
	ContentFetcher
	logger         outbound.LoggerPort
	mediaApiConfig *config.MediaApiConfig
}

func NewSlideComposer(contentFetcher ContentFetcher, mediaApiConfig *config.MediaApiConfig, logger outbound.LoggerPort) outbound.SlideComposerPort {
	return &slideComposer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		mediaApiConfig: mediaApiConfig,
	}
}

func (s *slideComposer) Compose(ctx context.Context, imageURL string, videoURL string) (string, error) {
	payload, err := json.Marshal(combineSlideRequest{
		ImageURL: imageURL,
		VideoURL: videoURL,
	})
	if err != nil {
		s.logger.Error(err, "failed to marshal the composition request")
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.mediaApiConfig.ApiUrl+"/media/combine-slide", bytes.NewBuffer(payload))
	if err != nil {
		s.logger.Error(err, "failed to create the HTTP request")
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var res combineSlideResponse
	if err := s.FetchJSON(httpReq, "slide composer", &res); err != nil {
		return "", err
	}

	return res.ResultURL, nil
}
