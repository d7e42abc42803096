package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"

	"generate-lecture-video/application/ports/inbound"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/domain"
)

type fakeStageExecutor struct {
	calls       []string
	synthesize  func(text string) (string, error)
	syncLips    func(audioURL string, videoURL string) (string, error)
	compose     func(imageURL string, videoURL string) (string, error)
	concatenate func(videoURLs []string) (string, error)
	swapFace    func(sourceURL string, targetURL string) (string, error)
}

func (f *fakeStageExecutor) SynthesizeNarration(_ context.Context, text string, _ domain.VoiceSpec) (string, error) {
	f.calls = append(f.calls, "synthesize")
	if f.synthesize != nil {
		return f.synthesize(text)
	}
	return "https://cdn.example.com/audio.wav", nil
}

func (f *fakeStageExecutor) SyncLips(_ context.Context, audioURL string, videoURL string) (string, error) {
	f.calls = append(f.calls, "sync_lips")
	if f.syncLips != nil {
		return f.syncLips(audioURL, videoURL)
	}
	return "https://cdn.example.com/lipsync.mp4", nil
}

func (f *fakeStageExecutor) ComposeSlide(_ context.Context, imageURL string, videoURL string) (string, error) {
	f.calls = append(f.calls, "compose")
	if f.compose != nil {
		return f.compose(imageURL, videoURL)
	}
	return "https://cdn.example.com/composed-" + imageURL, nil
}

func (f *fakeStageExecutor) ConcatenateVideos(_ context.Context, videoURLs []string) (string, error) {
	f.calls = append(f.calls, "concatenate")
	if f.concatenate != nil {
		return f.concatenate(videoURLs)
	}
	return "https://cdn.example.com/raw-final.mp4", nil
}

func (f *fakeStageExecutor) SwapFace(_ context.Context, sourceURL string, targetURL string, _ inbound.ProgressSink) (string, error) {
	f.calls = append(f.calls, "swap_face")
	if f.swapFace != nil {
		return f.swapFace(sourceURL, targetURL)
	}
	return "https://cdn.example.com/swapped.mp4", nil
}

type fakeUploader struct {
	uploads  []outbound.UploadRequest
	persists []string
}

func (f *fakeUploader) Upload(_ context.Context, req outbound.UploadRequest) (string, error) {
	f.uploads = append(f.uploads, req)
	return "https://bucket.s3.amazonaws.com/" + req.Key, nil
}

func (f *fakeUploader) Persist(_ context.Context, _ string, key string) (string, error) {
	f.persists = append(f.persists, key)
	return "https://bucket.s3.amazonaws.com/" + key, nil
}

type fakeRunCache struct {
	saved []domain.SlideResult
	err   error
}

func (f *fakeRunCache) Save(_ context.Context, result domain.SlideResult, _ string) error {
	f.saved = append(f.saved, result)
	return f.err
}

type fakeRecorder struct {
	recorded []outbound.RecordVideoParams
	err      error
}

func (f *fakeRecorder) Record(_ context.Context, params outbound.RecordVideoParams) error {
	f.recorded = append(f.recorded, params)
	return f.err
}

func testRunParams() inbound.StartRunParams {
	return inbound.StartRunParams{
		RunID: "run-1",
		Metadata: domain.PresentationMetadata{
			Title:       "Intro to Graphs",
			TotalSlides: 3,
			Slides: []domain.SlideMetadata{
				{SlideNumber: 1, Type: domain.TitleSlideType, Filepath: "slides/1.png"},
				{SlideNumber: 3, Type: domain.ContentSlideType, Filepath: "slides/3.png"},
				{SlideNumber: 2, Type: domain.ContentSlideType, Filepath: "slides/2.png"},
			},
			SlideData: domain.SlideDeck{
				Slides: []domain.SlideData{
					{SlideNumber: 1},
					{SlideNumber: 3, OriginalContent: "Traversal visits every vertex."},
					{SlideNumber: 2, OriginalContent: "A graph is vertices and edges."},
				},
			},
		},
		Voice:     domain.VoiceSpec{Mode: domain.VoiceModeSample, VoiceID: "voice-1"},
		Presenter: inbound.PresenterSource{VideoURL: "https://cdn.example.com/presenter.mp4"},
		UserID:    "user-1",
		Username:  "lecturer",
	}
}

type orchestratorFixture struct {
	orchestrator inbound.PipelineOrchestratorPort
	executor     *fakeStageExecutor
	uploader     *fakeUploader
	runCache     *fakeRunCache
	recorder     *fakeRecorder
	store        inbound.WorkflowStorePort
}

func newOrchestratorFixture(t *testing.T) *orchestratorFixture {
	t.Helper()
	workerPool, err := ants.NewPool(20)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	t.Cleanup(workerPool.Release)

	fixture := &orchestratorFixture{
		executor: &fakeStageExecutor{},
		uploader: &fakeUploader{},
		runCache: &fakeRunCache{},
		recorder: &fakeRecorder{},
		store:    NewWorkflowStore(testLogger{}),
	}
	fixture.orchestrator = NewPipelineOrchestrator(testLogger{}, workerPool, fixture.executor,
		fixture.uploader, fixture.runCache, fixture.recorder, fixture.store)
	return fixture
}

func drainRun(t *testing.T, events <-chan domain.ProgressEvent, errCh <-chan error) ([]domain.ProgressEvent, []error) {
	t.Helper()
	var got []domain.ProgressEvent
	var errs []error
	for events != nil || errCh != nil {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			got = append(got, ev)
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			errs = append(errs, err)
		case <-time.After(5 * time.Second):
			t.Fatal("run did not finish in time")
		}
	}
	return got, errs
}

func waitInactive(t *testing.T, orchestrator inbound.PipelineOrchestratorPort) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if !orchestrator.Active() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("orchestrator still active")
}

func TestPipelineOrchestrator_HappyPathProcessesSlidesInOrder(t *testing.T) {
	fixture := newOrchestratorFixture(t)

	events, errCh := fixture.orchestrator.Run(context.Background(), testRunParams())
	got, errs := drainRun(t, events, errCh)

	if len(errs) != 0 {
		t.Fatal("expected no errors, got:", errs)
	}

	var slideOrder []int
	for _, ev := range got {
		if ev.Stage == domain.StageNarrating {
			slideOrder = append(slideOrder, ev.SlideNumber)
		}
	}
	if len(slideOrder) != 2 || slideOrder[0] != 2 || slideOrder[1] != 3 {
		t.Fatal("slides must be processed in ascending slide number order, got:", slideOrder)
	}

	last := got[len(got)-1]
	if last.Stage != domain.StageDone || last.URL == "" {
		t.Fatal("the final event must carry the video url, got:", last)
	}

	state := fixture.store.Snapshot()
	if len(state.SlideResults) != 2 {
		t.Fatal("expected a result per content slide, got:", len(state.SlideResults))
	}
	if state.FinalVideoURL != last.URL {
		t.Fatal("the store must hold the final video url")
	}
	if len(fixture.recorder.recorded) != 1 || fixture.recorder.recorded[0].Username != "lecturer" {
		t.Fatal("the finished video must be recorded for the user")
	}
	if len(fixture.uploader.persists) != 1 || fixture.uploader.persists[0] != "videos/run-1.mp4" {
		t.Fatal("the final video must be persisted under the run key, got:", fixture.uploader.persists)
	}
	waitInactive(t, fixture.orchestrator)
}

func TestPipelineOrchestrator_SkipsSlidesWithoutNarration(t *testing.T) {
	fixture := newOrchestratorFixture(t)
	params := testRunParams()
	params.Metadata.SlideData.Slides[1].OriginalContent = "   "

	events, errCh := fixture.orchestrator.Run(context.Background(), params)
	got, errs := drainRun(t, events, errCh)

	if len(errs) != 0 {
		t.Fatal("a silent slide must not fail the run, got:", errs)
	}

	warned := false
	for _, ev := range got {
		if ev.Warning && ev.SlideNumber == 3 {
			warned = true
		}
	}
	if !warned {
		t.Fatal("expected a warning event for the skipped slide")
	}

	state := fixture.store.Snapshot()
	if len(state.SkippedSlides) != 1 || state.SkippedSlides[0] != 3 {
		t.Fatal("the skipped slide must be recorded, got:", state.SkippedSlides)
	}
	if len(state.SlideResults) != 1 {
		t.Fatal("only the narrated slide must produce a result")
	}
}

func TestPipelineOrchestrator_ValidationFailsBeforeAnyStage(t *testing.T) {
	fixture := newOrchestratorFixture(t)
	params := testRunParams()
	params.Presenter = inbound.PresenterSource{}

	events, errCh := fixture.orchestrator.Run(context.Background(), params)
	got, errs := drainRun(t, events, errCh)

	if len(errs) != 1 {
		t.Fatal("expected exactly one error, got:", errs)
	}
	var validationErr *domain.ValidationError
	if !errors.As(errs[0], &validationErr) {
		t.Fatal("expected a validation error, got:", errs[0])
	}
	if len(got) != 0 {
		t.Fatal("no events must be emitted for a rejected run, got:", got)
	}
	if len(fixture.executor.calls) != 0 || len(fixture.uploader.uploads) != 0 {
		t.Fatal("no stage may run for a rejected request")
	}
	if fixture.orchestrator.Active() {
		t.Fatal("a rejected run must not claim the run slot")
	}
}

func TestPipelineOrchestrator_RejectsConcurrentRuns(t *testing.T) {
	fixture := newOrchestratorFixture(t)
	release := make(chan struct{})
	fixture.executor.synthesize = func(string) (string, error) {
		<-release
		return "https://cdn.example.com/audio.wav", nil
	}

	firstEvents, firstErrCh := fixture.orchestrator.Run(context.Background(), testRunParams())

	for !fixture.orchestrator.Active() {
		time.Sleep(time.Millisecond)
	}

	_, secondErrCh := fixture.orchestrator.Run(context.Background(), testRunParams())
	if err := <-secondErrCh; !errors.Is(err, domain.ErrRunInProgress) {
		t.Fatal("a second run must be rejected while one is active, got:", err)
	}

	close(release)
	_, errs := drainRun(t, firstEvents, firstErrCh)
	if len(errs) != 0 {
		t.Fatal("the first run must still finish cleanly, got:", errs)
	}
}

func TestPipelineOrchestrator_StageFailureAbortsRun(t *testing.T) {
	fixture := newOrchestratorFixture(t)
	boom := &domain.StageError{Stage: domain.StageLipSyncing, Err: errors.New("lip sync exploded")}
	fixture.executor.syncLips = func(string, string) (string, error) {
		return "", boom
	}

	events, errCh := fixture.orchestrator.Run(context.Background(), testRunParams())
	got, errs := drainRun(t, events, errCh)

	if len(errs) != 1 || !errors.Is(errs[0], boom) {
		t.Fatal("expected the stage error to surface, got:", errs)
	}

	last := got[len(got)-1]
	if last.Stage != domain.StageFailed {
		t.Fatal("the last event must mark the run failed, got:", last)
	}

	state := fixture.store.Snapshot()
	if state.Stage != domain.StageFailed || state.Error == "" {
		t.Fatal("the store must record the failure")
	}
	for _, call := range fixture.executor.calls {
		if call == "concatenate" {
			t.Fatal("no later stage may run after a failure")
		}
	}
	waitInactive(t, fixture.orchestrator)
}

func TestPipelineOrchestrator_RecorderFailureDegradesToWarning(t *testing.T) {
	fixture := newOrchestratorFixture(t)
	fixture.recorder.err = errors.New("account backend down")

	events, errCh := fixture.orchestrator.Run(context.Background(), testRunParams())
	got, errs := drainRun(t, events, errCh)

	if len(errs) != 0 {
		t.Fatal("a recording failure must not fail the run, got:", errs)
	}

	last := got[len(got)-1]
	if last.Stage != domain.StageDone || !last.Warning {
		t.Fatal("the done event must carry the warning, got:", last)
	}

	state := fixture.store.Snapshot()
	if state.Warning == "" || state.FinalVideoURL == "" {
		t.Fatal("the store must keep the video url and the warning")
	}
	if state.Stage != domain.StageDone {
		t.Fatal("a degraded success must still end at done, got:", state.Stage)
	}
}

func TestPipelineOrchestrator_UploadsCustomPresenterVideo(t *testing.T) {
	fixture := newOrchestratorFixture(t)
	params := testRunParams()
	params.Presenter = inbound.PresenterSource{
		CustomVideo:     []byte("mp4 bytes"),
		CustomVideoName: "me.mp4",
	}

	events, errCh := fixture.orchestrator.Run(context.Background(), params)
	_, errs := drainRun(t, events, errCh)

	if len(errs) != 0 {
		t.Fatal("expected no errors, got:", errs)
	}
	if len(fixture.uploader.uploads) != 1 {
		t.Fatal("the custom presenter video must be uploaded")
	}
	if fixture.uploader.uploads[0].Key != "uploads/run-1/me.mp4" {
		t.Fatal("unexpected upload key:", fixture.uploader.uploads[0].Key)
	}
}

func TestPipelineOrchestrator_RunCacheFailureIsNonFatal(t *testing.T) {
	fixture := newOrchestratorFixture(t)
	fixture.runCache.err = errors.New("dynamo unavailable")

	events, errCh := fixture.orchestrator.Run(context.Background(), testRunParams())
	_, errs := drainRun(t, events, errCh)

	if len(errs) != 0 {
		t.Fatal("a cache failure must not fail the run, got:", errs)
	}
	if len(fixture.runCache.saved) != 2 {
		t.Fatal("every produced slide must still be offered to the cache")
	}
}
