package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/goldify/goldify_backend/internal/apperrors"
	portssvc "github.com/goldify/goldify_backend/internal/core/ports/services"
	"github.com/goldify/goldify_backend/internal/dto"
	"github.com/goldify/goldify_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// goldRateHandler handles HTTP requests for live and historical gold rates.
// These routes are public: shop owners read rates before authenticating.
type goldRateHandler struct {
	rateService portssvc.GoldRateSvcFacade
}

func newGoldRateHandler(rs portssvc.GoldRateSvcFacade) *goldRateHandler {
	return &goldRateHandler{
		rateService: rs,
	}
}

// registerGoldRateRoutes registers the public gold rate routes.
func registerGoldRateRoutes(rg *gin.RouterGroup, rateService portssvc.GoldRateSvcFacade) {
	h := newGoldRateHandler(rateService)

	rates := rg.Group("/gold-rates")
	{
		rates.GET("/latest", h.getLatestRates)
		rates.GET("/countries", h.listCountries)
		rates.GET("/country/:currency", h.getRateForCountry)
		rates.GET("/history", h.getRateHistory)
		rates.POST("/refresh", h.refreshRates)
	}
}

func (h *goldRateHandler) getLatestRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, source, err := h.rateService.GetLatestRates(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			logger.Error("No gold rate available from any source")
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Gold rates temporarily unavailable"})
			return
		}
		logger.Error("Failed to get latest rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve gold rates"})
		return
	}

	c.JSON(http.StatusOK, dto.LatestRatesResponse{
		Success: true,
		Data:    snapshot,
		Source:  source,
		Stats:   h.rateService.Stats(),
	})
}

func (h *goldRateHandler) listCountries(c *gin.Context) {
	list := h.rateService.ListCountries()
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "data": list})
}

func (h *goldRateHandler) getRateForCountry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := c.Param("currency")

	snapshot, rate, err := h.rateService.GetRateForCountry(c.Request.Context(), currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Unsupported currency requested", slog.String("currency", currencyCode))
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Currency not supported"})
			return
		}
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Gold rates temporarily unavailable"})
			return
		}
		logger.Error("Failed to get rate for country", slog.String("currency", currencyCode), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve gold rate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.CountryRateResponse{
		CountryRate: *rate,
		SpotUSD:     snapshot.SpotUSD,
		FetchedAt:   snapshot.FetchedAt,
	}})
}

func (h *goldRateHandler) getRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period := c.DefaultQuery("period", "24h")
	currency := c.Query("currency")
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	snapshots, chartData, err := h.rateService.GetRateHistory(c.Request.Context(), period, currency, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		logger.Error("Failed to get rate history", slog.String("period", period), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve rate history"})
		return
	}

	c.JSON(http.StatusOK, dto.RateHistoryResponse{
		Success:   true,
		Count:     len(snapshots),
		Period:    period,
		Currency:  currency,
		Data:      snapshots,
		ChartData: chartData,
	})
}

func (h *goldRateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Manual gold rate refresh requested")

	snapshot, err := h.rateService.Refresh(c.Request.Context(), true)
	if err != nil {
		logger.Error("Manual refresh failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Failed to refresh gold rates from upstream"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": snapshot, "stats": h.rateService.Stats()})
}
