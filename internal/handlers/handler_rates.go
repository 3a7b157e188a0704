package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/saurabk077/currency-exchange/internal/apperrors"
	"github.com/saurabk077/currency-exchange/internal/core/domain"
	portssvc "github.com/saurabk077/currency-exchange/internal/core/ports/services"
	"github.com/saurabk077/currency-exchange/internal/dto"
	"github.com/saurabk077/currency-exchange/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// rateHandler handles HTTP requests for exchange rate lookups and conversions.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getRate)
		rates.GET("/timeseries", h.getTimeSeries)
		rates.GET("/convert", h.convert)
	}
}

// getRate returns the source->target rate for a date (today when omitted).
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	source := strings.ToUpper(c.Query("source"))
	target := strings.ToUpper(c.Query("target"))
	if source == "" || target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and target query parameters are required"})
		return
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse(domain.DateLayout, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	rate, err := h.rateService.GetRate(c.Request.Context(), source, target, date)
	if err != nil {
		respondRateError(c, logger, err, "Failed to get exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// getTimeSeries returns daily rates for the source currency over a date range.
func (h *rateHandler) getTimeSeries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	source := strings.ToUpper(c.Query("source"))
	if source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source query parameter is required"})
		return
	}

	start, err := time.Parse(domain.DateLayout, c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date format, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(domain.DateLayout, c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date format, expected YYYY-MM-DD"})
		return
	}

	series, err := h.rateService.GetTimeSeries(c.Request.Context(), source, start, end)
	if err != nil {
		respondRateError(c, logger, err, "Failed to get time series")
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeSeriesResponse(series))
}

// convert applies today's rate to an amount.
func (h *rateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	source := strings.ToUpper(c.Query("source"))
	target := strings.ToUpper(c.Query("target"))
	if source == "" || target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source and target query parameters are required"})
		return
	}

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount, expected a decimal number"})
		return
	}

	conversion, err := h.rateService.Convert(c.Request.Context(), source, target, amount)
	if err != nil {
		respondRateError(c, logger, err, "Failed to convert amount")
		return
	}

	c.JSON(http.StatusOK, dto.ToConvertResponse(conversion))
}

// respondRateError maps pipeline errors onto HTTP statuses.
func respondRateError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnknownCurrency):
		logger.Warn(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNoData), errors.Is(err, apperrors.ErrNotFound):
		logger.Info(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
