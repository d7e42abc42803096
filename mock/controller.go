package mock_pipeline

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"generate-lecture-video/application/ports/outbound"
)

type MockLectureController interface {
	GenerateLecture(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type mockLectureController struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
	runner     *Runner
}

func NewMockLectureController(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher, runner *Runner) MockLectureController {
	return &mockLectureController{
		logger:     logger,
		workerPool: workerPool,
		runner:     runner,
	}
}

func (m *mockLectureController) GenerateLecture(c *gin.Context) {
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	defer c.Abort()

	runID := uuid.NewString()

	events, errCh := m.runner.Run(newCtx, runID)

	err := m.workerPool.Submit(func() {
		var sendErrOnce sync.Once
		for err := range errCh {
			cancel()
			m.logger.Error(err, "error replaying pipeline events")
			sendErrOnce.Do(func() {
				c.SSEvent("error", "internal server error")
				c.Abort()
			})
		}
	})
	if err != nil {
		m.logger.Error(err, "failed to submit worker")
		c.SSEvent("error", "internal server error")
		return
	}

	for event := range events {
		select {
		case <-newCtx.Done():
			return
		default:
			c.SSEvent("progress", event)
			c.Writer.Flush()
		}
	}

	m.logger.InfoWithFields("mock pipeline replay complete", map[string]interface{}{
		"run_id": runID,
	})
}

func (m *mockLectureController) RegisterRoutes(g *gin.Engine) {
	g.POST("lectures/generate/mock", m.GenerateLecture)
}
