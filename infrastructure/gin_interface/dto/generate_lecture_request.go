package dto

import "generate-lecture-video/domain"

// GenerateLectureRequest is the JSON payload starting a pipeline run.
// When the request is multipart, this travels in the "payload" field and
// presenter_video / reference_audio may be attached as files.
type GenerateLectureRequest struct {
	Metadata          domain.PresentationMetadata `json:"metadata" binding:"required"`
	Voice             domain.VoiceSpec            `json:"voice" binding:"required"`
	PresenterVideoURL string                      `json:"presenter_video_url"`
	FaceImageURL      string                      `json:"face_image_url"`
}
