package inbound

import "generate-lecture-video/domain"

// WorkflowStorePort is the single source of truth for one in-flight (or
// most recently finished) pipeline run. Mutations originate only from
// the orchestrator; any presentation layer may read or subscribe.
type WorkflowStorePort interface {
	Snapshot() domain.WorkflowState
	Subscribe() (<-chan domain.ProgressEvent, func())

	BeginRun(runID string, metadata domain.PresentationMetadata)
	// Publish broadcasts an event to subscribers and moves the stored
	// stage and message along with it. Warning events leave the stage
	// untouched unless they are terminal, so a degraded success still
	// ends the run at done.
	Publish(event domain.ProgressEvent)
	AddSlideResult(result domain.SlideResult)
	AddSkippedSlide(slideNumber int)
	SetFinalVideo(url string)
	SetWarning(message string)
	SetError(err error)
	ResetAll()
}
