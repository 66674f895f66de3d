package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/goldify/goldify_backend/internal/apperrors"
	portssvc "github.com/goldify/goldify_backend/internal/core/ports/services"
	"github.com/goldify/goldify_backend/internal/dto"
	"github.com/goldify/goldify_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// saleHandler handles HTTP requests for jewelry sale orders.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{
		saleService: ss,
	}
}

// registerSaleRoutes registers routes for jewelry sales.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/pending-payments", h.listPendingPayments)
		sales.GET("/arrears", h.totalArrears)
		sales.GET("/statistics", h.getStatistics)
		sales.GET("/:saleID", h.getSale)
		sales.PUT("/:saleID", h.updateSale)
		sales.DELETE("/:saleID", h.deleteSale)
		sales.POST("/:saleID/payments", h.addPayment)
		sales.POST("/:saleID/gold-returns", h.addGoldReturn)
		sales.POST("/:saleID/deliver", h.markDelivered)
	}
}

func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), userID, req)
	if err != nil {
		h.writeSaleError(c, logger, "Failed to create sale", err)
		return
	}

	logger.Info("Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("customer", sale.CustomerName),
	)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": sale})
}

func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListSalesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	sales, total, err := h.saleService.ListSales(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list sales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sales,
		"total":   total,
		"page":    req.Page,
		"limit":   req.Limit,
	})
}

func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), userID, c.Param("saleID"))
	if err != nil {
		h.writeSaleError(c, logger, "Failed to get sale", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": sale})
}

func (h *saleHandler) updateSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), userID, c.Param("saleID"), req)
	if err != nil {
		h.writeSaleError(c, logger, "Failed to update sale", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": sale})
}

func (h *saleHandler) deleteSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), userID, c.Param("saleID")); err != nil {
		h.writeSaleError(c, logger, "Failed to delete sale", err)
		return
	}

	logger.Info("Sale deleted", slog.String("sale_id", c.Param("saleID")))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *saleHandler) addPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sale, err := h.saleService.AddPayment(c.Request.Context(), userID, c.Param("saleID"), req)
	if err != nil {
		h.writeSaleError(c, logger, "Failed to add payment", err)
		return
	}

	logger.Info("Payment recorded",
		slog.String("sale_id", sale.SaleID),
		slog.String("amount", req.Amount.String()),
		slog.String("payment_status", string(sale.PaymentStatus)),
	)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sale})
}

func (h *saleHandler) addGoldReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddGoldReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddGoldReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sale, err := h.saleService.AddGoldReturn(c.Request.Context(), userID, c.Param("saleID"), req)
	if err != nil {
		h.writeSaleError(c, logger, "Failed to add gold return", err)
		return
	}

	logger.Info("Gold return recorded",
		slog.String("sale_id", sale.SaleID),
		slog.String("weight", req.Weight.String()),
	)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sale})
}

func (h *saleHandler) markDelivered(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.MarkDeliveredRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	sale, err := h.saleService.MarkDelivered(c.Request.Context(), userID, c.Param("saleID"), req.DeliveryDate)
	if err != nil {
		h.writeSaleError(c, logger, "Failed to mark sale delivered", err)
		return
	}

	logger.Info("Sale marked delivered", slog.String("sale_id", sale.SaleID))
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sale})
}

func (h *saleHandler) listPendingPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sales, err := h.saleService.ListPendingPayments(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list pending payments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pending payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(sales), "data": sales})
}

func (h *saleHandler) totalArrears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	total, err := h.saleService.TotalArrears(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to compute total arrears", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute total arrears"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "totalArrears": total})
}

func (h *saleHandler) getStatistics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var start, end *time.Time
	if raw := c.Query("startDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, use YYYY-MM-DD"})
			return
		}
		start = &parsed
	}
	if raw := c.Query("endDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, use YYYY-MM-DD"})
			return
		}
		inclusive := parsed.Add(24*time.Hour - time.Nanosecond)
		end = &inclusive
	}

	stats, err := h.saleService.GetStatistics(c.Request.Context(), userID, start, end)
	if err != nil {
		logger.Error("Failed to get sale statistics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// writeSaleError maps sale service errors onto HTTP responses.
func (h *saleHandler) writeSaleError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrStateConflict):
		logger.Warn(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
	default:
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
