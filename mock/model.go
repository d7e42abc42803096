package mock_pipeline

import "generate-lecture-video/domain"

type MockEvent struct {
	domain.ProgressEvent
	Delay int `json:"delay"`
}
