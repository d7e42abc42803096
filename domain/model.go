package domain

import (
	"fmt"
	"time"
)

type SlideType string

const (
	TitleSlideType   SlideType = "title"
	ContentSlideType SlideType = "content"
)

// SlideMetadata describes one rendered slide image. Immutable once
// generated except by re-upload.
type SlideMetadata struct {
	SlideNumber int       `json:"slide_number"`
	Type        SlideType `json:"type"`
	Title       string    `json:"title,omitempty"`
	Filepath    string    `json:"filepath"`
	Filename    string    `json:"filename"`
}

// SlideData carries the narration script for one slide. The rewritten
// content, when present, supersedes the original for narration.
type SlideData struct {
	SlideNumber      int      `json:"slide_number"`
	Title            string   `json:"title"`
	Content          []string `json:"content"`
	OriginalContent  string   `json:"original_content"`
	RewrittenContent string   `json:"rewritten_content,omitempty"`
}

func (s SlideData) Narration() string {
	if s.RewrittenContent != "" {
		return s.RewrittenContent
	}
	return s.OriginalContent
}

type SlideDeck struct {
	Title  string      `json:"title"`
	Slides []SlideData `json:"slides"`
}

type PresentationMetadata struct {
	Title       string          `json:"title"`
	TotalSlides int             `json:"total_slides"`
	CreatedAt   time.Time       `json:"created_at"`
	Slides      []SlideMetadata `json:"slides"`
	SlideData   SlideDeck       `json:"slide_data"`
}

// Validate checks the structural invariants: total_slides matches the
// slide list, slide numbers are unique and slide_data lines up with the
// slide images position by position.
func (m PresentationMetadata) Validate() error {
	if m.TotalSlides != len(m.Slides) {
		return &ValidationError{
			Field:  "total_slides",
			Reason: fmt.Sprintf("total_slides is %d but %d slides are present", m.TotalSlides, len(m.Slides)),
		}
	}
	if len(m.Slides) != len(m.SlideData.Slides) {
		return &ValidationError{
			Field:  "slide_data",
			Reason: fmt.Sprintf("%d slide images but %d slide data entries", len(m.Slides), len(m.SlideData.Slides)),
		}
	}
	seen := make(map[int]bool, len(m.Slides))
	for i, slide := range m.Slides {
		if seen[slide.SlideNumber] {
			return &ValidationError{
				Field:  "slides",
				Reason: fmt.Sprintf("duplicate slide_number %d", slide.SlideNumber),
			}
		}
		seen[slide.SlideNumber] = true
		if m.SlideData.Slides[i].SlideNumber != slide.SlideNumber {
			return &ValidationError{
				Field:  "slide_data",
				Reason: fmt.Sprintf("slide_data[%d].slide_number is %d, expected %d", i, m.SlideData.Slides[i].SlideNumber, slide.SlideNumber),
			}
		}
	}
	return nil
}

// DataForSlide returns the narration entry matching a slide number.
func (m PresentationMetadata) DataForSlide(slideNumber int) (SlideData, bool) {
	for _, data := range m.SlideData.Slides {
		if data.SlideNumber == slideNumber {
			return data, true
		}
	}
	return SlideData{}, false
}

type PipelineStage string

const (
	StageIdle               PipelineStage = "idle"
	StageUploading          PipelineStage = "uploading"
	StagePreparingPresenter PipelineStage = "preparing_presenter"
	StageNarrating          PipelineStage = "narrating"
	StageLipSyncing         PipelineStage = "lip_syncing"
	StageComposing          PipelineStage = "composing"
	StageConcatenating      PipelineStage = "concatenating"
	StageUploadingFinal     PipelineStage = "uploading_final"
	StageDone               PipelineStage = "done"
	StageFailed             PipelineStage = "failed"
)

func (s PipelineStage) IsTerminal() bool {
	return s == StageDone || s == StageFailed
}

// SlideResult accumulates the intermediate URLs produced for one slide.
type SlideResult struct {
	SlideNumber int    `json:"slide_number"`
	AudioURL    string `json:"audio_url"`
	LipSyncURL  string `json:"lip_sync_url"`
	ComposedURL string `json:"composed_url"`
}

type JobStatus string

const (
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed
}

// JobHandle is the polled view of a long-running remote job.
type JobHandle struct {
	JobID     string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	ResultURL string    `json:"result_url,omitempty"`
}

// ProgressEvent is one observable step of a pipeline run. SlideNumber is
// -1 for events not tied to a particular slide.
type ProgressEvent struct {
	RunID       string        `json:"run_id"`
	Stage       PipelineStage `json:"stage"`
	SlideNumber int           `json:"slide_number"`
	Message     string        `json:"message"`
	URL         string        `json:"url,omitempty"`
	Warning     bool          `json:"warning,omitempty"`
}

// WorkflowState is the full readable state of the current (or most
// recently finished) run.
type WorkflowState struct {
	RunID         string                `json:"run_id"`
	Stage         PipelineStage         `json:"stage"`
	Message       string                `json:"message"`
	Metadata      *PresentationMetadata `json:"metadata"`
	SlideResults  map[int]SlideResult   `json:"slide_results"`
	SkippedSlides []int                 `json:"skipped_slides"`
	FinalVideoURL string                `json:"final_video_url,omitempty"`
	Warning       string                `json:"warning,omitempty"`
	Error         string                `json:"error,omitempty"`
}
