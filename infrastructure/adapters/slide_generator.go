package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/config"
	"generate-lecture-video/domain"
	"net/http"
)

type generateSlidesRequest struct {
	Content   string `json:"content"`
	NumSlides int    `json:"num_slides,omitempty"`
}

type generateSlidesResponse struct {
	Success bool `json:"success"`
	Data    struct {
		PptxFile string `json:"pptx_file"`
		JSONFile string `json:"json_file"`
	} `json:"data"`
}

type slideGenerator struct {
	ContentFetcher
	logger       outbound.LoggerPort
	slidesConfig *config.SlidesConfig
}

func NewSlideGenerator(contentFetcher ContentFetcher, slidesConfig *config.SlidesConfig, logger outbound.LoggerPort) outbound.SlideGeneratorPort {
	return &slideGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		slidesConfig:   slidesConfig,
	}
}

func (s *slideGenerator) Generate(ctx context.Context, req outbound.GenerateSlidesRequest) (*outbound.GenerateSlidesResult, error) {
	if req.Content == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "slide content is empty"}
	}

	payload, err := json.Marshal(generateSlidesRequest{
		Content:   req.Content,
		NumSlides: req.SlideCount,
	})
	if err != nil {
		s.logger.Error(err, "failed to marshal the slide generation request")
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.slidesConfig.ApiUrl+"/slides/generate", bytes.NewBuffer(payload))
	if err != nil {
		s.logger.Error(err, "failed to create the HTTP request")
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var res generateSlidesResponse
	if err := s.FetchJSON(httpReq, "slide generator", &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, &domain.ServiceError{Service: "slide generator", Err: fmt.Errorf("generator reported failure")}
	}

	return &outbound.GenerateSlidesResult{
		PptxURL: res.Data.PptxFile,
		JSONURL: res.Data.JSONFile,
	}, nil
}
