package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/emredk/scholaris/internal/app/models/dto"
	"github.com/emredk/scholaris/internal/config"
	"github.com/emredk/scholaris/internal/seed"
)

// InstallController wipes the database and loads the demo dataset.
// Destructive, therefore admin-only.
type InstallController struct {
	pool   *pgxpool.Pool
	cfg    *config.Config
	logger zerolog.Logger
}

// NewInstallController creates a new InstallController
func NewInstallController(pool *pgxpool.Pool, cfg *config.Config, logger zerolog.Logger) *InstallController {
	return &InstallController{
		pool:   pool,
		cfg:    cfg,
		logger: logger,
	}
}

// Install handles the demo dataset reload
func (c *InstallController) Install(ctx *gin.Context) {
	c.logger.Warn().Msg("Reinstalling demo dataset, all data will be wiped")

	if err := seed.Install(ctx.Request.Context(), c.pool, c.cfg, c.logger); err != nil {
		c.logger.Error().Err(err).Msg("Demo dataset installation failed")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Installation failed")))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Demo dataset installed successfully", nil))
}
