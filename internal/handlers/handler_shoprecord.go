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

// shopRecordHandler handles HTTP requests for the daily gold ledger.
type shopRecordHandler struct {
	recordService portssvc.ShopRecordSvcFacade
}

func newShopRecordHandler(rs portssvc.ShopRecordSvcFacade) *shopRecordHandler {
	return &shopRecordHandler{
		recordService: rs,
	}
}

// registerShopRecordRoutes registers routes for the daily shop record.
func registerShopRecordRoutes(rg *gin.RouterGroup, recordService portssvc.ShopRecordSvcFacade) {
	h := newShopRecordHandler(recordService)

	records := rg.Group("/shop-records")
	{
		records.GET("/today", h.getTodayRecord)
		records.POST("/today/transactions", h.addTransaction)
		records.PUT("/today/transactions/:transactionID", h.updateTransaction)
		records.DELETE("/today/transactions/:transactionID", h.deleteTransaction)
		records.DELETE("/today", h.clearToday)
		records.GET("/recent", h.getRecentRecords)
		records.GET("/range", h.getRecordsInRange)
		records.GET("/month/:year/:month", h.getMonthlySummary)
		records.GET("/statistics", h.getStatistics)
		records.GET("/date/:date", h.getRecordByDate)
	}
}

func (h *shopRecordHandler) getTodayRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.recordService.GetTodayRecord(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get today's record", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve today's record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

func (h *shopRecordHandler) addTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	record, txn, err := h.recordService.AddTransaction(c.Request.Context(), userID, req)
	if err != nil {
		h.writeRecordError(c, logger, "Failed to add transaction", err)
		return
	}

	logger.Info("Transaction added",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("weight", txn.Weight.String()),
	)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record, "transaction": txn})
}

func (h *shopRecordHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	transactionID := c.Param("transactionID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	record, err := h.recordService.UpdateTransaction(c.Request.Context(), userID, transactionID, req)
	if err != nil {
		h.writeRecordError(c, logger, "Failed to update transaction", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

func (h *shopRecordHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	transactionID := c.Param("transactionID")

	record, err := h.recordService.DeleteTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		h.writeRecordError(c, logger, "Failed to delete transaction", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

func (h *shopRecordHandler) clearToday(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.recordService.ClearToday(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to clear today's record", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear today's record"})
		return
	}

	logger.Info("Today's record cleared")
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

func (h *shopRecordHandler) getRecordByDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.recordService.GetRecordByDate(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No record found for this date"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get record by date", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

func (h *shopRecordHandler) getRecordsInRange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var query dto.RangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate query parameters are required"})
		return
	}

	records, summary, err := h.recordService.GetRecordsInRange(c.Request.Context(), userID, query.StartDate, query.EndDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get records in range", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": records, "summary": summary})
}

func (h *shopRecordHandler) getMonthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, errYear := strconv.Atoi(c.Param("year"))
	month, errMonth := strconv.Atoi(c.Param("month"))
	if errYear != nil || errMonth != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month must be integers"})
		return
	}

	records, summary, err := h.recordService.GetMonthlySummary(c.Request.Context(), userID, year, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get monthly summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve monthly summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": records, "summary": summary})
}

func (h *shopRecordHandler) getRecentRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	records, err := h.recordService.GetRecentRecords(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Error("Failed to get recent records", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(records), "data": records})
}

func (h *shopRecordHandler) getStatistics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.recordService.GetStatistics(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get shop statistics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// writeRecordError maps ledger mutation errors onto HTTP responses. Business
// rule violations (insufficient gold, rate not configured) come back as 400
// so clients can show the message directly.
func (h *shopRecordHandler) writeRecordError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrStateConflict):
		logger.Warn(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	default:
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
