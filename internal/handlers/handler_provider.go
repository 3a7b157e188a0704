package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/saurabk077/currency-exchange/internal/core/ports/services"
	"github.com/saurabk077/currency-exchange/internal/dto"
	"github.com/saurabk077/currency-exchange/internal/middleware"
	"github.com/gin-gonic/gin"
)

// providerHandler exposes the configured rate providers.
type providerHandler struct {
	providerService portssvc.ProviderSvcFacade
}

func newProviderHandler(ps portssvc.ProviderSvcFacade) *providerHandler {
	return &providerHandler{providerService: ps}
}

// registerProviderRoutes registers routes related to rate providers.
func registerProviderRoutes(rg *gin.RouterGroup, providerService portssvc.ProviderSvcFacade) {
	h := newProviderHandler(providerService)

	rg.GET("/providers", h.listProviders)
}

func (h *providerHandler) listProviders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	providers, err := h.providerService.ListProviders(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list providers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list providers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProviderResponse(providers))
}
