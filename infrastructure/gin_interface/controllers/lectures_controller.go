package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"generate-lecture-video/application/ports/inbound"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/domain"
	"generate-lecture-video/infrastructure/gin_interface/dto"
	"generate-lecture-video/middleware"
)

type LecturesController interface {
	GenerateLecture(c *gin.Context)
	StreamEvents(c *gin.Context)
	GetState(c *gin.Context)
	Reset(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type lecturesController struct {
	orchestrator  inbound.PipelineOrchestratorPort
	workflowStore inbound.WorkflowStorePort
	logger        outbound.LoggerPort
}

func NewLecturesController(
	orchestrator inbound.PipelineOrchestratorPort,
	workflowStore inbound.WorkflowStorePort,
	logger outbound.LoggerPort,
) LecturesController {
	return &lecturesController{
		orchestrator:  orchestrator,
		workflowStore: workflowStore,
		logger:        logger,
	}
}

func (lc *lecturesController) RegisterRoutes(g *gin.Engine) {
	g.POST("/lectures/generate", lc.GenerateLecture)
	g.GET("/lectures/events", middleware.SSEMiddleware(), lc.StreamEvents)
	g.GET("/lectures/state", lc.GetState)
	g.POST("/lectures/reset", lc.Reset)
}

func (lc *lecturesController) GenerateLecture(c *gin.Context) {
	params, err := lc.buildRunParams(c)
	if err != nil {
		lc.logger.Error(err, "Invalid lecture generation request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eventsChan, errChan := lc.orchestrator.Run(c.Request.Context(), *params)

	// Validation and busy-state failures surface on the error channel
	// before any work is dispatched, so they can still become a JSON
	// status instead of a stream.
	select {
	case err, ok := <-errChan:
		if ok && err != nil {
			lc.writeRunError(c, err)
			return
		}
	default:
	}

	lc.logger.Info("Started lecture generation run " + params.RunID)

	// The response only becomes a stream once the run is accepted, so
	// the rejections above still go out as plain JSON.
	setStreamHeaders(c)
	c.Writer.Flush()

	for eventsChan != nil || errChan != nil {
		select {
		case ev, ok := <-eventsChan:
			if !ok {
				eventsChan = nil
				continue
			}
			c.SSEvent("progress", ev)
			c.Writer.Flush()
		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			lc.logger.Error(err, "Lecture generation run failed")
			c.SSEvent("error", gin.H{"error": err.Error()})
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (lc *lecturesController) StreamEvents(c *gin.Context) {
	events, unsubscribe := lc.workflowStore.Subscribe()
	defer unsubscribe()

	snapshot := lc.workflowStore.Snapshot()
	c.SSEvent("state", snapshot)
	c.Writer.Flush()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent("progress", ev)
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (lc *lecturesController) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, lc.workflowStore.Snapshot())
}

func (lc *lecturesController) Reset(c *gin.Context) {
	if lc.orchestrator.Active() {
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrRunInProgress.Error()})
		return
	}
	lc.workflowStore.ResetAll()
	c.JSON(http.StatusOK, lc.workflowStore.Snapshot())
}

func (lc *lecturesController) buildRunParams(c *gin.Context) (*inbound.StartRunParams, error) {
	var request dto.GenerateLectureRequest

	params := inbound.StartRunParams{
		RunID:    uuid.New().String(),
		UserID:   c.GetString(middleware.ContextUserIDKey),
		Username: c.GetString(middleware.ContextUsernameKey),
	}

	contentType := c.ContentType()
	if contentType == "multipart/form-data" {
		payload := c.PostForm("payload")
		if payload == "" {
			return nil, &domain.ValidationError{Field: "payload", Reason: "payload form field is required"}
		}
		if err := json.Unmarshal([]byte(payload), &request); err != nil {
			return nil, &domain.ValidationError{Field: "payload", Reason: "payload is not valid JSON"}
		}

		video, videoHeader, err := c.Request.FormFile("presenter_video")
		if err == nil {
			content, readErr := readUpload(video)
			if readErr != nil {
				return nil, readErr
			}
			params.Presenter.CustomVideo = content
			params.Presenter.CustomVideoName = videoHeader.Filename
		}

		audio, audioHeader, err := c.Request.FormFile("reference_audio")
		if err == nil {
			content, readErr := readUpload(audio)
			if readErr != nil {
				return nil, readErr
			}
			params.ReferenceAudio = content
			params.ReferenceAudioName = audioHeader.Filename
		}
	} else {
		if err := c.ShouldBindJSON(&request); err != nil {
			return nil, &domain.ValidationError{Field: "body", Reason: err.Error()}
		}
	}

	params.Metadata = request.Metadata
	params.Voice = request.Voice
	params.Presenter.VideoURL = request.PresenterVideoURL
	params.Presenter.FaceImageURL = request.FaceImageURL

	return &params, nil
}

func (lc *lecturesController) writeRunError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrRunInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func setStreamHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
}

func readUpload(file multipart.File) ([]byte, error) {
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, &domain.ValidationError{Field: "file", Reason: "failed to read uploaded file"}
	}
	return content, nil
}
