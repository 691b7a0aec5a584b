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

// StudentController handles student profile operations. Students are
// addressed by enrollment number in the URL, not by row id.
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// Create handles student creation by an admin
func (c *StudentController) Create(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student creation payload")
		bindError(ctx, err)
		return
	}

	if err := validation.ValidateCreateStudent(req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Student created successfully", dto.FromStudent(student)))
}

// Get retrieves a single student by enrollment number
func (c *StudentController) Get(ctx *gin.Context) {
	student, err := c.studentService.Get(ctx.Request.Context(), ctx.Param("enrollmentNumber"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student retrieved successfully", dto.FromStudent(student)))
}

// Update handles student updates by the linked user or an admin
func (c *StudentController) Update(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student update payload")
		bindError(ctx, err)
		return
	}

	if err := validation.ValidateUpdateStudent(req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), middleware.ActorFromContext(ctx), ctx.Param("enrollmentNumber"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student updated successfully", dto.FromStudent(student)))
}

// Delete handles student deletion by an admin
func (c *StudentController) Delete(ctx *gin.Context) {
	student, err := c.studentService.Delete(ctx.Request.Context(), ctx.Param("enrollmentNumber"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student deleted successfully", dto.FromStudent(student)))
}

// List handles paginated student listing
func (c *StudentController) List(ctx *gin.Context) {
	page, limit, err := listParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.studentService.List(ctx.Request.Context(), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Students retrieved successfully", resp))
}
