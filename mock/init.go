package mock_pipeline

import (
	"github.com/gin-gonic/gin"

	"generate-lecture-video/application/ports/inbound"
	"generate-lecture-video/application/ports/outbound"
)

func Init(g *gin.Engine, workerPool outbound.TaskDispatcher, workflowStore inbound.WorkflowStorePort,
	logger outbound.LoggerPort) {
	eventReader := NewFileEventReader(logger)
	runner := NewRunner(workerPool, eventReader, workflowStore, logger)
	mockController := NewMockLectureController(logger, workerPool, runner)

	mockController.RegisterRoutes(g)
}
