package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/app/services"
	"github.com/emredk/scholaris/internal/middleware"
	"github.com/emredk/scholaris/internal/pkg/apperrors"
	"github.com/emredk/scholaris/internal/pkg/helpers"
	"github.com/emredk/scholaris/internal/pkg/validation"
)

// UserController handles user account operations
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// Update handles account updates by the owner or an admin
func (c *UserController) Update(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid user update payload")
		bindError(ctx, err)
		return
	}

	if err := validation.ValidateUpdateUser(req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), middleware.ActorFromContext(ctx), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("User updated successfully", dto.FromUser(user)))
}

// Delete handles account deletion by an admin
func (c *UserController) Delete(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), middleware.ActorFromContext(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("User deleted successfully", nil))
}

// List handles paginated account listing by an admin
func (c *UserController) List(ctx *gin.Context) {
	page, limit, err := listParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.userService.List(ctx.Request.Context(), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Users retrieved successfully", resp))
}

// pathID parses a positive integer path parameter
func pathID(ctx *gin.Context, name string) (int64, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name, "The "+name+" parameter must be a positive integer.")
	}
	return id, nil
}

// listParams parses and checks pagination query parameters
func listParams(ctx *gin.Context) (page, limit int, err error) {
	var req dto.ListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		return 0, 0, apperrors.ErrInvalidPage
	}
	return helpers.ParseListParams(req.Page, req.Limit)
}
