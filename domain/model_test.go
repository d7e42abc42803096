package domain

import (
	"errors"
	"testing"
)

func validMetadata() PresentationMetadata {
	return PresentationMetadata{
		Title:       "Intro to Graphs",
		TotalSlides: 3,
		Slides: []SlideMetadata{
			{SlideNumber: 1, Type: TitleSlideType, Title: "Intro to Graphs", Filepath: "slides/1.png", Filename: "1.png"},
			{SlideNumber: 2, Type: ContentSlideType, Filepath: "slides/2.png", Filename: "2.png"},
			{SlideNumber: 3, Type: ContentSlideType, Filepath: "slides/3.png", Filename: "3.png"},
		},
		SlideData: SlideDeck{
			Title: "Intro to Graphs",
			Slides: []SlideData{
				{SlideNumber: 1, Title: "Intro to Graphs"},
				{SlideNumber: 2, OriginalContent: "A graph is a set of vertices and edges."},
				{SlideNumber: 3, OriginalContent: "Traversal visits every reachable vertex."},
			},
		},
	}
}

func TestPresentationMetadata_Validate(t *testing.T) {
	if err := validMetadata().Validate(); err != nil {
		t.Fatal("expected valid metadata, got:", err)
	}
}

func TestPresentationMetadata_Validate_TotalSlidesMismatch(t *testing.T) {
	metadata := validMetadata()
	metadata.TotalSlides = 5

	err := metadata.Validate()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatal("expected a validation error, got:", err)
	}
	if validationErr.Field != "total_slides" {
		t.Fatal("expected the total_slides field to be rejected, got:", validationErr.Field)
	}
}

func TestPresentationMetadata_Validate_DuplicateSlideNumber(t *testing.T) {
	metadata := validMetadata()
	metadata.Slides[2].SlideNumber = 2
	metadata.SlideData.Slides[2].SlideNumber = 2

	err := metadata.Validate()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatal("expected a validation error, got:", err)
	}
}

func TestPresentationMetadata_Validate_MisalignedSlideData(t *testing.T) {
	metadata := validMetadata()
	metadata.SlideData.Slides[1].SlideNumber = 3
	metadata.SlideData.Slides[2].SlideNumber = 2

	err := metadata.Validate()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatal("expected a validation error, got:", err)
	}
	if validationErr.Field != "slide_data" {
		t.Fatal("expected the slide_data field to be rejected, got:", validationErr.Field)
	}
}

func TestPresentationMetadata_DataForSlide(t *testing.T) {
	metadata := validMetadata()

	data, ok := metadata.DataForSlide(3)
	if !ok {
		t.Fatal("expected slide 3 to be found")
	}
	if data.OriginalContent != "Traversal visits every reachable vertex." {
		t.Fatal("unexpected narration:", data.OriginalContent)
	}

	if _, ok := metadata.DataForSlide(42); ok {
		t.Fatal("expected slide 42 to be missing")
	}
}

func TestSlideData_Narration_RewrittenWins(t *testing.T) {
	data := SlideData{
		OriginalContent:  "original",
		RewrittenContent: "rewritten",
	}
	if data.Narration() != "rewritten" {
		t.Fatal("expected the rewritten content to be narrated")
	}

	data.RewrittenContent = ""
	if data.Narration() != "original" {
		t.Fatal("expected the original content to be narrated")
	}
}

func TestVoiceSpec_Validate(t *testing.T) {
	valid := []VoiceSpec{
		{Mode: VoiceModeSample, VoiceID: "voice-1"},
		{Mode: VoiceModeClone, ReferenceAudioURL: "https://example.com/ref.wav", ReferenceText: "hello"},
		{Mode: VoiceModePreset, Gender: "female", Area: "us", Group: "adult", Emotion: "neutral"},
	}
	for _, spec := range valid {
		if err := spec.Validate(); err != nil {
			t.Fatalf("expected %s voice to be valid, got: %v", spec.Mode, err)
		}
	}

	invalid := []VoiceSpec{
		{Mode: VoiceModeSample},
		{Mode: VoiceModeClone, ReferenceAudioURL: "https://example.com/ref.wav"},
		{Mode: VoiceModePreset, Gender: "female"},
		{Mode: "robot"},
	}
	for _, spec := range invalid {
		err := spec.Validate()
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected %s voice to be rejected, got: %v", spec.Mode, err)
		}
	}
}

func TestJobStatus_IsTerminal(t *testing.T) {
	if JobProcessing.IsTerminal() {
		t.Fatal("processing must not be terminal")
	}
	if !JobCompleted.IsTerminal() || !JobFailed.IsTerminal() {
		t.Fatal("completed and failed must be terminal")
	}
}
