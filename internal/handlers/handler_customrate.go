package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goldify/goldify_backend/internal/apperrors"
	portssvc "github.com/goldify/goldify_backend/internal/core/ports/services"
	"github.com/goldify/goldify_backend/internal/dto"
	"github.com/goldify/goldify_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// customRateHandler handles HTTP requests for an owner's manually set rate.
type customRateHandler struct {
	rateService portssvc.CustomRateSvcFacade
}

func newCustomRateHandler(rs portssvc.CustomRateSvcFacade) *customRateHandler {
	return &customRateHandler{
		rateService: rs,
	}
}

// registerCustomRateRoutes registers routes for the owner's custom gold rate.
func registerCustomRateRoutes(rg *gin.RouterGroup, rateService portssvc.CustomRateSvcFacade) {
	h := newCustomRateHandler(rateService)

	rates := rg.Group("/custom-rate")
	{
		rates.GET("", h.getRate)
		rates.PUT("", h.setRate)
	}
}

func (h *customRateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.rateService.GetRate(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get custom rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve custom rate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.ToCustomRateResponse(rate)})
}

func (h *customRateHandler) setRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SetCustomRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetCustomRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.rateService.SetRate(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting custom rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to set custom rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save custom rate"})
		return
	}

	logger.Info("Custom rate updated", slog.String("rate_per_tola", rate.RatePerTola.String()))
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.ToCustomRateResponse(rate)})
}
