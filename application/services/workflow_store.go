package services

import (
	"generate-lecture-video/application/ports/inbound"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/domain"
	"sync"
)

const subscriberBuffer = 32

type workflowStore struct {
	logger outbound.LoggerPort

	mu          sync.RWMutex
	state       domain.WorkflowState
	subscribers map[int]chan domain.ProgressEvent
	nextSubID   int
}

func NewWorkflowStore(logger outbound.LoggerPort) inbound.WorkflowStorePort {
	return &workflowStore{
		logger:      logger,
		state:       emptyWorkflowState(),
		subscribers: make(map[int]chan domain.ProgressEvent),
	}
}

func emptyWorkflowState() domain.WorkflowState {
	return domain.WorkflowState{
		Stage:         domain.StageIdle,
		SlideResults:  make(map[int]domain.SlideResult),
		SkippedSlides: make([]int, 0),
	}
}

func (s *workflowStore) Snapshot() domain.WorkflowState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyState(s.state)
}

func (s *workflowStore) Subscribe() (<-chan domain.ProgressEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan domain.ProgressEvent, subscriberBuffer)
	s.subscribers[id] = ch

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

func (s *workflowStore) BeginRun(runID string, metadata domain.PresentationMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = emptyWorkflowState()
	s.state.RunID = runID
	s.state.Metadata = &metadata
}

func (s *workflowStore) Publish(event domain.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.Stage != "" && (!event.Warning || event.Stage.IsTerminal()) {
		s.state.Stage = event.Stage
	}
	s.state.Message = event.Message
	s.broadcast(event)
}

func (s *workflowStore) AddSlideResult(result domain.SlideResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SlideResults[result.SlideNumber] = result
}

func (s *workflowStore) AddSkippedSlide(slideNumber int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SkippedSlides = append(s.state.SkippedSlides, slideNumber)
}

func (s *workflowStore) SetFinalVideo(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.FinalVideoURL = url
}

func (s *workflowStore) SetWarning(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Warning = message
}

// SetError records the first terminal error of the run; later calls are
// ignored so the error field is set at most once per run.
func (s *workflowStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Error != "" {
		s.logger.WarnWithFields("run error already recorded, ignoring", map[string]interface{}{
			"run_id": s.state.RunID,
			"error":  err.Error(),
		})
		return
	}
	s.state.Error = err.Error()
	s.state.Stage = domain.StageFailed
}

func (s *workflowStore) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = emptyWorkflowState()
}

// broadcast must be called with the lock held. Slow subscribers have
// events dropped rather than stalling the run.
func (s *workflowStore) broadcast(event domain.ProgressEvent) {
	for id, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
			s.logger.WarnWithFields("subscriber too slow, dropping event", map[string]interface{}{
				"subscriber": id,
				"stage":      event.Stage,
			})
		}
	}
}

func copyState(state domain.WorkflowState) domain.WorkflowState {
	out := state
	out.SlideResults = make(map[int]domain.SlideResult, len(state.SlideResults))
	for k, v := range state.SlideResults {
		out.SlideResults[k] = v
	}
	out.SkippedSlides = append([]int(nil), state.SkippedSlides...)
	if state.Metadata != nil {
		metadata := *state.Metadata
		out.Metadata = &metadata
	}
	return out
}
