package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/config"
	"net/http"
)

type fakelipRequest struct {
	AudioURL string `json:"audio_url"`
	VideoURL string `json:"video_url"`
}

type fakelipResponse struct {
	ResultURL string `json:"result_url"`
}

type lipSyncer struct {
	ContentFetcher
	logger        outbound.LoggerPort
	fakelipConfig *config.FakelipConfig
}

func NewLipSyncer(contentFetcher ContentFetcher, fakelipConfig *config.FakelipConfig, logger outbound.LoggerPort) outbound.LipSyncerPort {
	return &lipSyncer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		fakelipConfig:  fakelipConfig,
	}
}

func (l *lipSyncer) Sync(ctx context.Context, audioURL string, videoURL string) (string, error) {
	payload, err := json.Marshal(fakelipRequest{
		AudioURL: audioURL,
		VideoURL: videoURL,
	})
	if err != nil {
		l.logger.Error(err, "failed to marshal the lip-sync request")
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, l.fakelipConfig.Host+"/fakelip", bytes.NewBuffer(payload))
	if err != nil {
		l.logger.Error(err, "failed to create the HTTP request")
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var res fakelipResponse
	if err := l.FetchJSON(httpReq, "lip sync", &res); err != nil {
		return "", err
	}

	return res.ResultURL, nil
}
