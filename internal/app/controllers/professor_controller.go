package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/app/services"
	"github.com/emredk/scholaris/internal/middleware"
	"github.com/emredk/scholaris/internal/pkg/validation"
)

// ProfessorController handles professor profile operations
type ProfessorController struct {
	professorService *services.ProfessorService
	logger           zerolog.Logger
}

// NewProfessorController creates a new ProfessorController
func NewProfessorController(professorService *services.ProfessorService, logger zerolog.Logger) *ProfessorController {
	return &ProfessorController{
		professorService: professorService,
		logger:           logger,
	}
}

// Create handles professor creation by an admin
func (c *ProfessorController) Create(ctx *gin.Context) {
	var req dto.CreateProfessorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid professor creation payload")
		bindError(ctx, err)
		return
	}

	if err := validation.ValidateCreateProfessor(req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	professor, err := c.professorService.Create(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Professor created successfully", dto.FromProfessor(professor)))
}

// Get retrieves a single professor
func (c *ProfessorController) Get(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	professor, err := c.professorService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Professor retrieved successfully", dto.FromProfessor(professor)))
}

// Update handles professor updates by the linked user or an admin
func (c *ProfessorController) Update(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateProfessorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid professor update payload")
		bindError(ctx, err)
		return
	}

	if err := validation.ValidateUpdateProfessor(req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	professor, err := c.professorService.Update(ctx.Request.Context(), middleware.ActorFromContext(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Professor updated successfully", dto.FromProfessor(professor)))
}

// Delete handles professor deletion by an admin
func (c *ProfessorController) Delete(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	professor, err := c.professorService.Delete(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Professor deleted successfully", dto.FromProfessor(professor)))
}

// List handles paginated professor listing
func (c *ProfessorController) List(ctx *gin.Context) {
	page, limit, err := listParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.professorService.List(ctx.Request.Context(), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Professors retrieved successfully", resp))
}
