package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/domain"
	"generate-lecture-video/infrastructure/gin_interface/dto"
)

type SlidesController interface {
	GenerateSlides(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type slidesController struct {
	slideGenerator outbound.SlideGeneratorPort
	logger         outbound.LoggerPort
}

func NewSlidesController(slideGenerator outbound.SlideGeneratorPort, logger outbound.LoggerPort) SlidesController {
	return &slidesController{
		slideGenerator: slideGenerator,
		logger:         logger,
	}
}

func (sc *slidesController) RegisterRoutes(g *gin.Engine) {
	g.POST("/slides/generate", sc.GenerateSlides)
}

func (sc *slidesController) GenerateSlides(c *gin.Context) {
	var request dto.GenerateSlidesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := sc.slideGenerator.Generate(c.Request.Context(), outbound.GenerateSlidesRequest{
		Content:    request.Content,
		SlideCount: request.NumSlides,
	})
	if err != nil {
		sc.logger.Error(err, "Slide generation failed")
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.GenerateSlidesResponse{
		PptxFile: result.PptxURL,
		JSONFile: result.JSONURL,
	})
}
