package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"generate-lecture-video/application/ports/inbound"
	"generate-lecture-video/application/ports/outbound"
	"generate-lecture-video/infrastructure/gin_interface/dto"
)

type PresentationsController interface {
	BeginEdit(c *gin.Context)
	UpdateSlideNarration(c *gin.Context)
	SaveEdit(c *gin.Context)
	CancelEdit(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type presentationsController struct {
	editSession inbound.EditSessionPort
	logger      outbound.LoggerPort
}

func NewPresentationsController(editSession inbound.EditSessionPort, logger outbound.LoggerPort) PresentationsController {
	return &presentationsController{
		editSession: editSession,
		logger:      logger,
	}
}

func (pc *presentationsController) RegisterRoutes(g *gin.Engine) {
	g.POST("/presentations/edit", pc.BeginEdit)
	g.PUT("/presentations/edit/slides/:number", pc.UpdateSlideNarration)
	g.POST("/presentations/edit/save", pc.SaveEdit)
	g.POST("/presentations/edit/cancel", pc.CancelEdit)
}

func (pc *presentationsController) BeginEdit(c *gin.Context) {
	var request dto.BeginEditRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := request.Metadata.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pc.editSession.Begin(request.Metadata)

	working, _ := pc.editSession.Working()
	c.JSON(http.StatusOK, working)
}

func (pc *presentationsController) UpdateSlideNarration(c *gin.Context) {
	slideNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slide number must be an integer"})
		return
	}

	var request dto.UpdateNarrationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := pc.editSession.UpdateNarration(slideNumber, request.Text); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	working, _ := pc.editSession.Working()
	c.JSON(http.StatusOK, working)
}

func (pc *presentationsController) SaveEdit(c *gin.Context) {
	if err := pc.editSession.Save(c.Request.Context()); err != nil {
		pc.logger.Error(err, "Failed to save edited presentation")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	committed, _ := pc.editSession.Committed()
	c.JSON(http.StatusOK, committed)
}

func (pc *presentationsController) CancelEdit(c *gin.Context) {
	pc.editSession.Cancel()

	committed, ok := pc.editSession.Committed()
	if !ok {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, committed)
}
