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

// metadataApi persists edited presentation metadata to the backend.
type metadataApi struct {
	ContentFetcher
	logger         outbound.LoggerPort
	videoApiConfig *config.VideoApiConfig
}

func NewMetadataApi(contentFetcher ContentFetcher, videoApiConfig *config.VideoApiConfig, logger outbound.LoggerPort) outbound.MetadataStorePort {
	return &metadataApi{
		ContentFetcher: contentFetcher,
		logger:         logger,
		videoApiConfig: videoApiConfig,
	}
}

func (m *metadataApi) Save(ctx context.Context, metadata domain.PresentationMetadata) error {
	payload, err := json.Marshal(metadata)
	if err != nil {
		m.logger.Error(err, "failed to marshal presentation metadata")
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.videoApiConfig.ApiUrl+"/presentations/metadata", bytes.NewBuffer(payload))
	if err != nil {
		m.logger.Error(err, "failed to create the HTTP request")
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if _, err := m.FetchContent(httpReq, "metadata api"); err != nil {
		return err
	}
	return nil
}
