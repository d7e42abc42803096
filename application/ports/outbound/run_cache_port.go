package outbound

import (
	"context"
	"generate-lecture-video/domain"
)

// RunCachePort keeps per-slide stage results around for diagnostic
// display after a run aborts. Best effort, never blocks a run.
type RunCachePort interface {
	Save(ctx context.Context, result domain.SlideResult, runID string) error
}
