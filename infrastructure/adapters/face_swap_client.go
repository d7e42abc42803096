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

type deepfakeSubmitRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type deepfakeSubmitResponse struct {
	JobID string `json:"job_id"`
}

type deepfakeStatusResponse struct {
	Status    string `json:"status"`
	ResultURL string `json:"result_url,omitempty"`
}

// faceSwapClient talks to the deepfake service: jobs are submitted to
// the model host and their status is polled through the media backend.
type faceSwapClient struct {
	ContentFetcher
	logger         outbound.LoggerPort
	deepfakeConfig *config.DeepfakeConfig
	mediaApiConfig *config.MediaApiConfig
}

func NewFaceSwapClient(contentFetcher ContentFetcher, deepfakeConfig *config.DeepfakeConfig,
	mediaApiConfig *config.MediaApiConfig, logger outbound.LoggerPort) outbound.FaceSwapPort {
	return &faceSwapClient{
		ContentFetcher: contentFetcher,
		logger:         logger,
		deepfakeConfig: deepfakeConfig,
		mediaApiConfig: mediaApiConfig,
	}
}

func (f *faceSwapClient) Submit(ctx context.Context, sourceURL string, targetURL string) (string, error) {
	payload, err := json.Marshal(deepfakeSubmitRequest{
		Source: sourceURL,
		Target: targetURL,
	})
	if err != nil {
		f.logger.Error(err, "failed to marshal the deepfake request")
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.deepfakeConfig.Host+"/deepfake", bytes.NewBuffer(payload))
	if err != nil {
		f.logger.Error(err, "failed to create the HTTP request")
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var res deepfakeSubmitResponse
	if err := f.FetchJSON(httpReq, "deepfake", &res); err != nil {
		return "", err
	}

	return res.JobID, nil
}

func (f *faceSwapClient) Poll(ctx context.Context, jobID string) (*domain.JobHandle, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, f.mediaApiConfig.ApiUrl+"/media/deepfake-status/"+jobID, nil)
	if err != nil {
		f.logger.Error(err, "failed to create the HTTP request")
		return nil, err
	}

	var res deepfakeStatusResponse
	if err := f.FetchJSON(httpReq, "deepfake", &res); err != nil {
		return nil, err
	}

	return &domain.JobHandle{
		JobID:     jobID,
		Status:    domain.JobStatus(res.Status),
		ResultURL: res.ResultURL,
	}, nil
}
