package inbound

import (
	"context"
	"generate-lecture-video/domain"
)

// EditSessionPort implements the two-buffer narration edit protocol:
// a committed snapshot plus a working copy that only Save promotes.
type EditSessionPort interface {
	Begin(metadata domain.PresentationMetadata)
	UpdateNarration(slideNumber int, text string) error
	Working() (domain.SlideDeck, bool)
	Committed() (domain.PresentationMetadata, bool)
	Save(ctx context.Context) error
	Cancel()
}
