package dto

import "generate-lecture-video/domain"

type BeginEditRequest struct {
	Metadata domain.PresentationMetadata `json:"metadata" binding:"required"`
}

type UpdateNarrationRequest struct {
	Text string `json:"text"`
}
