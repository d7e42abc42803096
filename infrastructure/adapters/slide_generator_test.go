package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/config"
	"generate-lecture-video/domain"
)

func TestSlideGenerator_Generate(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/slides/generate" {
			t.Error("unexpected path:", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Error("failed to decode request:", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"pptx_file": "https://cdn.example.com/deck.pptx", "json_file": "https://cdn.example.com/deck.json"}}`))
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	generator := NewSlideGenerator(NewContentFetcher(logger), &config.SlidesConfig{ApiUrl: server.URL}, logger)

	result, err := generator.Generate(context.Background(), outbound.GenerateSlidesRequest{
		Content:    "Lecture notes about graphs.",
		SlideCount: 5,
	})
	if err != nil {
		t.Fatal("Failed to generate slides:", err)
	}
	if result.PptxURL != "https://cdn.example.com/deck.pptx" || result.JSONURL != "https://cdn.example.com/deck.json" {
		t.Fatal("unexpected result:", result)
	}
	if received["content"] != "Lecture notes about graphs." || received["num_slides"] != float64(5) {
		t.Fatal("unexpected request payload:", received)
	}
}

func TestSlideGenerator_Generate_ReportedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false}`))
	}))
	defer server.Close()

	logger := NewZerologWrapper()
	generator := NewSlideGenerator(NewContentFetcher(logger), &config.SlidesConfig{ApiUrl: server.URL}, logger)

	_, err := generator.Generate(context.Background(), outbound.GenerateSlidesRequest{Content: "notes"})
	var serviceErr *domain.ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatal("expected a service error, got:", err)
	}
}

func TestSlideGenerator_Generate_EmptyContent(t *testing.T) {
	logger := NewZerologWrapper()
	generator := NewSlideGenerator(NewContentFetcher(logger), &config.SlidesConfig{ApiUrl: "http://unused"}, logger)

	_, err := generator.Generate(context.Background(), outbound.GenerateSlidesRequest{})
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatal("expected a validation error, got:", err)
	}
}
