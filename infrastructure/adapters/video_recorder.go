package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/config"
	"generate-lecture-video/domain"
	"io"
	"net/http"
)

type recordVideoRequest struct {
	VideoURL string `json:"video_url"`
	Username string `json:"username"`
	UserID   string `json:"user_id"`
}

// videoRecorder registers a finished video against the user's account.
type videoRecorder struct {
	logger         outbound.LoggerPort
	videoApiConfig *config.VideoApiConfig
	authorizer     Authorizer
}

func NewVideoRecorder(logger outbound.LoggerPort, videoApiConfig *config.VideoApiConfig, authorizer Authorizer) outbound.VideoRecorderPort {
	return &videoRecorder{
		logger:         logger,
		videoApiConfig: videoApiConfig,
		authorizer:     authorizer,
	}
}

func (r *videoRecorder) Record(ctx context.Context, params outbound.RecordVideoParams) error {
	token, err := r.authorizer.Authorize(ctx)
	if err != nil {
		r.logger.Error(err, "failed to authorize against the account backend")
		return err
	}

	payload, err := json.Marshal(recordVideoRequest{
		VideoURL: params.VideoURL,
		Username: params.Username,
		UserID:   params.UserID,
	})
	if err != nil {
		r.logger.Error(err, "failed to marshal the record request")
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.videoApiConfig.ApiUrl+"/videos", bytes.NewReader(payload))
	if err != nil {
		r.logger.Error(err, "failed to create the record request")
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		r.logger.Error(err, "failed to send the record request")
		return &domain.ServiceError{Service: "video api", Err: err}
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			r.logger.Error(err, "failed to close the response body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return &domain.ServiceError{
			Service:    "video api",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status recording video"),
		}
	}

	return nil
}
