package outbound

import (
	"context"
	"generate-lecture-video/domain"
)

// FaceSwapPort exposes the long-running face-swap service as a
// submit-then-poll pair rather than a single blocking call.
type FaceSwapPort interface {
	Submit(ctx context.Context, sourceURL string, targetURL string) (string, error)
	Poll(ctx context.Context, jobID string) (*domain.JobHandle, error)
}
