package services

import (
	"errors"
	"testing"

	"generate-lecture-video/domain"
)

func TestWorkflowStore_BeginRunResetsPreviousState(t *testing.T) {
	store := NewWorkflowStore(testLogger{})

	store.BeginRun("run-1", domain.PresentationMetadata{Title: "First"})
	store.AddSlideResult(domain.SlideResult{SlideNumber: 2, ComposedURL: "u"})
	store.AddSkippedSlide(3)
	store.SetFinalVideo("https://cdn.example.com/final.mp4")

	store.BeginRun("run-2", domain.PresentationMetadata{Title: "Second"})

	state := store.Snapshot()
	if state.RunID != "run-2" {
		t.Fatal("unexpected run id:", state.RunID)
	}
	if state.Stage != domain.StageIdle {
		t.Fatal("a new run must start idle, got:", state.Stage)
	}
	if len(state.SlideResults) != 0 || len(state.SkippedSlides) != 0 || state.FinalVideoURL != "" {
		t.Fatal("previous run state leaked into the new run")
	}
	if state.Metadata == nil || state.Metadata.Title != "Second" {
		t.Fatal("metadata was not replaced")
	}
}

func TestWorkflowStore_PublishMovesStageButNotOnWarnings(t *testing.T) {
	store := NewWorkflowStore(testLogger{})
	store.BeginRun("run-1", domain.PresentationMetadata{})

	store.Publish(domain.ProgressEvent{Stage: domain.StageNarrating, SlideNumber: 2, Message: "Generating narration for slide 2"})
	state := store.Snapshot()
	if state.Stage != domain.StageNarrating {
		t.Fatal("expected the stage to follow the event, got:", state.Stage)
	}

	store.Publish(domain.ProgressEvent{SlideNumber: 3, Message: "Slide 3 has no narration text, skipping", Warning: true})
	state = store.Snapshot()
	if state.Stage != domain.StageNarrating {
		t.Fatal("a warning event must not move the stage, got:", state.Stage)
	}
	if state.Message != "Slide 3 has no narration text, skipping" {
		t.Fatal("the message must still follow the event, got:", state.Message)
	}

	store.Publish(domain.ProgressEvent{Stage: domain.StageDone, SlideNumber: -1, Message: "Lecture video ready, but it could not be saved to your account", Warning: true})
	state = store.Snapshot()
	if state.Stage != domain.StageDone {
		t.Fatal("a terminal warning event must still end the run, got:", state.Stage)
	}
}

func TestWorkflowStore_SetErrorRecordsOnlyFirst(t *testing.T) {
	store := NewWorkflowStore(testLogger{})
	store.BeginRun("run-1", domain.PresentationMetadata{})

	store.SetError(errors.New("first failure"))
	store.SetError(errors.New("second failure"))

	state := store.Snapshot()
	if state.Error != "first failure" {
		t.Fatal("expected only the first error to be recorded, got:", state.Error)
	}
	if state.Stage != domain.StageFailed {
		t.Fatal("an error must move the run to failed, got:", state.Stage)
	}
}

func TestWorkflowStore_ResetAll(t *testing.T) {
	store := NewWorkflowStore(testLogger{})
	store.BeginRun("run-1", domain.PresentationMetadata{Title: "t"})
	store.AddSlideResult(domain.SlideResult{SlideNumber: 2})
	store.SetError(errors.New("boom"))

	store.ResetAll()

	state := store.Snapshot()
	if state.RunID != "" || state.Error != "" || state.Metadata != nil {
		t.Fatal("reset must clear the whole state")
	}
	if state.Stage != domain.StageIdle {
		t.Fatal("reset must return to idle, got:", state.Stage)
	}
	if state.SlideResults == nil || state.SkippedSlides == nil {
		t.Fatal("reset must keep the collections allocated")
	}
}

func TestWorkflowStore_SubscribeReceivesAndUnsubscribes(t *testing.T) {
	store := NewWorkflowStore(testLogger{})
	events, unsubscribe := store.Subscribe()

	store.Publish(domain.ProgressEvent{Stage: domain.StageUploading, SlideNumber: -1, Message: "Uploading presenter video"})

	ev := <-events
	if ev.Stage != domain.StageUploading {
		t.Fatal("unexpected event:", ev)
	}

	unsubscribe()
	if _, ok := <-events; ok {
		t.Fatal("unsubscribe must close the channel")
	}

	// A second unsubscribe is a no-op.
	unsubscribe()
}

func TestWorkflowStore_SnapshotIsACopy(t *testing.T) {
	store := NewWorkflowStore(testLogger{})
	store.BeginRun("run-1", domain.PresentationMetadata{})
	store.AddSlideResult(domain.SlideResult{SlideNumber: 2, ComposedURL: "original"})

	state := store.Snapshot()
	state.SlideResults[2] = domain.SlideResult{SlideNumber: 2, ComposedURL: "mutated"}

	if store.Snapshot().SlideResults[2].ComposedURL != "original" {
		t.Fatal("mutating a snapshot must not affect the store")
	}
}
