package http

import (
	"errors"
	"net/http"

	"stock-quality-engine/internal/scoring/dto"
	"stock-quality-engine/internal/scoring/service"
	"stock-quality-engine/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScoreHandler handles HTTP requests for adjusted scores and gating.
type ScoreHandler struct {
	scoringService service.ScoringService
	logger         *logger.Logger
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(scoringService service.ScoringService, logger *logger.Logger) *ScoreHandler {
	return &ScoreHandler{scoringService: scoringService, logger: logger}
}

// RegisterRoutes registers the scoring routes to the Echo group.
func (h *ScoreHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/scores/:code", h.GetScore)
	g.GET("/gating/:code", h.GetGating)
	g.POST("/runs", h.TriggerRun)
}

// GetScore returns the latest adjusted score record for an asset.
func (h *ScoreHandler) GetScore(c echo.Context) error {
	code := c.Param("code")
	score, err := h.scoringService.GetScore(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Failed to load score", logger.ErrorField(err), logger.StringField("asset_code", code))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, score)
}

// GetGating returns the latest eligibility decision for an asset.
func (h *ScoreHandler) GetGating(c echo.Context) error {
	code := c.Param("code")
	status, err := h.scoringService.GetGating(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Failed to load gating status", logger.ErrorField(err), logger.StringField("asset_code", code))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, status)
}

// TriggerRun enqueues a batch scoring run.
func (h *ScoreHandler) TriggerRun(c echo.Context) error {
	runID, err := h.scoringService.TriggerRun(c.Request().Context(), "api")
	if err != nil {
		h.logger.Error("Failed to trigger run", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusAccepted, dto.TriggerRunResponse{RunID: runID})
}
