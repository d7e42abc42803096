package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/config"
	"generate-lecture-video/domain"
	"net/http"
)

type concatVideosRequest struct {
	Videos []string `json:"videos"`
}

type concatVideosResponse struct {
	ResultURL string `json:"result_url"`
}

type videoConcatenator struct {
	ContentFetcher
	logger         outbound.LoggerPort
	mediaApiConfig *config.MediaApiConfig
}

func NewVideoConcatenator(contentFetcher ContentFetcher, mediaApiConfig *config.MediaApiConfig, logger outbound.LoggerPort) outbound.VideoConcatenatorPort {
	return &videoConcatenator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		mediaApiConfig: mediaApiConfig,
	}
}

func (v *videoConcatenator) Concatenate(ctx context.Context, videoURLs []string) (string, error) {
	if len(videoURLs) == 0 {
		return "", &domain.ValidationError{Field: "videos", Reason: "nothing to concatenate"}
	}

	payload, err := json.Marshal(concatVideosRequest{Videos: videoURLs})
	if err != nil {
		v.logger.Error(err, "failed to marshal the concatenation request")
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.mediaApiConfig.ApiUrl+"/media/concat-videos", bytes.NewBuffer(payload))
	if err != nil {
		v.logger.Error(err, "failed to create the HTTP request")
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var res concatVideosResponse
	if err := v.FetchJSON(httpReq, "video concatenator", &res); err != nil {
		return "", err
	}

	return res.ResultURL, nil
}
