package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/BekhzodS/china_shop_app/internal/apperrors"
	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/BekhzodS/china_shop_app/internal/dto"
	"github.com/BekhzodS/china_shop_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to currency rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// registerRateRoutes registers routes related to currency rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/:currencyCode", h.getRate)
		rates.PATCH("/:currencyCode", h.updateRate)
	}
}

// listRates godoc
// @Summary List currency rates
// @Description Retrieves all currency rates, seeding the default set when the table is empty
// @Tags rates
// @Produce json
// @Success 200 {array} dto.CurrencyRateResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list currency rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list currency rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCurrencyRateResponse(rates))
}

// getRate godoc
// @Summary Get a currency rate
// @Description Retrieves a single currency rate by its 3-letter code
// @Tags rates
// @Produce json
// @Param currencyCode path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.CurrencyRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rates/{currencyCode} [get]
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := c.Param("currencyCode")

	rate, err := h.rateService.GetRate(c.Request.Context(), currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Currency rate not found"})
		} else {
			logger.Error("Failed to get currency rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve currency rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyRateResponse(rate))
}

// updateRate godoc
// @Summary Update a currency rate
// @Description Applies a partial admin update (rate, markup, active flag) to a currency rate
// @Tags rates
// @Accept json
// @Produce json
// @Param currencyCode path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param rate body dto.UpdateCurrencyRateRequest true "Fields to update"
// @Success 200 {object} dto.CurrencyRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /rates/{currencyCode} [patch]
func (h *rateHandler) updateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := c.Param("currencyCode")

	var req dto.UpdateCurrencyRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.rateService.UpdateRate(c.Request.Context(), currencyCode, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Currency rate not found"})
		} else {
			logger.Error("Failed to update currency rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update currency rate"})
		}
		return
	}

	logger.Info("Currency rate updated", slog.String("currency_code", currencyCode))
	c.JSON(http.StatusOK, dto.ToCurrencyRateResponse(updated))
}
