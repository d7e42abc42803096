package outbound

import "context"

type GenerateSlidesRequest struct {
	Content    string
	SlideCount int
}

type GenerateSlidesResult struct {
	PptxURL string
	JSONURL string
}

type SlideGeneratorPort interface {
	Generate(ctx context.Context, req GenerateSlidesRequest) (*GenerateSlidesResult, error)
}
