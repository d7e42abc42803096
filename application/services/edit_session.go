package services

import (
	"context"
	"fmt"
	"generate-lecture-video/application/ports/inbound"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/domain"
	"sync"
)

// editSession holds a committed metadata snapshot and, while editing, a
// working copy of the narration deck. Only Save promotes the working
// copy; Cancel discards it. Last writer wins, no conflict detection.
type editSession struct {
	logger        outbound.LoggerPort
	metadataStore outbound.MetadataStorePort

	mu        sync.Mutex
	committed *domain.PresentationMetadata
	working   *domain.SlideDeck
}

func NewEditSession(logger outbound.LoggerPort, metadataStore outbound.MetadataStorePort) inbound.EditSessionPort {
	return &editSession{
		logger:        logger,
		metadataStore: metadataStore,
	}
}

func (e *editSession) Begin(metadata domain.PresentationMetadata) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.committed = &metadata
	deck := copyDeck(metadata.SlideData)
	e.working = &deck
}

func (e *editSession) UpdateNarration(slideNumber int, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.working == nil {
		return &domain.ValidationError{Field: "edit", Reason: "no edit session is active"}
	}
	for i := range e.working.Slides {
		if e.working.Slides[i].SlideNumber == slideNumber {
			e.working.Slides[i].OriginalContent = text
			return nil
		}
	}
	return &domain.ValidationError{Field: "slide_number", Reason: fmt.Sprintf("no slide %d in the deck", slideNumber)}
}

func (e *editSession) Working() (domain.SlideDeck, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.working == nil {
		return domain.SlideDeck{}, false
	}
	return copyDeck(*e.working), true
}

func (e *editSession) Committed() (domain.PresentationMetadata, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.committed == nil {
		return domain.PresentationMetadata{}, false
	}
	metadata := *e.committed
	metadata.SlideData = copyDeck(e.committed.SlideData)
	return metadata, true
}

// Save persists the edited deck and, only on success, replaces the
// committed snapshot and leaves edit mode.
func (e *editSession) Save(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.working == nil || e.committed == nil {
		return &domain.ValidationError{Field: "edit", Reason: "no edit session is active"}
	}

	edited := *e.committed
	edited.SlideData = copyDeck(*e.working)
	if err := e.metadataStore.Save(ctx, edited); err != nil {
		e.logger.Error(err, "failed to save edited metadata")
		return err
	}

	e.committed = &edited
	e.working = nil
	return nil
}

func (e *editSession) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.working = nil
}

func copyDeck(deck domain.SlideDeck) domain.SlideDeck {
	out := domain.SlideDeck{Title: deck.Title}
	out.Slides = make([]domain.SlideData, len(deck.Slides))
	for i, slide := range deck.Slides {
		copied := slide
		copied.Content = append([]string(nil), slide.Content...)
		out.Slides[i] = copied
	}
	return out
}
