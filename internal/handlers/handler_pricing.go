package handlers

import (
	"net/http"

	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/BekhzodS/china_shop_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// pricingHandler handles HTTP requests for price quotes.
type pricingHandler struct {
	pricingService portssvc.PricingSvcFacade
}

// newPricingHandler creates a new pricingHandler.
func newPricingHandler(ps portssvc.PricingSvcFacade) *pricingHandler {
	return &pricingHandler{
		pricingService: ps,
	}
}

// registerPricingRoutes registers the price quote route.
func registerPricingRoutes(rg *gin.RouterGroup, pricingService portssvc.PricingSvcFacade) {
	h := newPricingHandler(pricingService)

	pricing := rg.Group("/pricing")
	{
		pricing.GET("/quote", h.quote)
	}
}

// quote godoc
// @Summary Quote a price
// @Description Converts a CNY amount into the target currency with markup and service fee itemized
// @Tags pricing
// @Produce json
// @Param amount query string true "Amount in CNY"
// @Param currency query string false "Target currency code (3 letters, defaults to RUB)"
// @Success 200 {object} dto.PriceBreakdownResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /pricing/quote [get]
func (h *pricingHandler) quote(c *gin.Context) {
	amountStr := c.Query("amount")
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid amount"})
		return
	}
	if amount.IsNegative() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Amount must not be negative"})
		return
	}

	currency := c.Query("currency")

	breakdown := h.pricingService.ApplyPricing(c.Request.Context(), amount, currency)
	c.JSON(http.StatusOK, dto.ToPriceBreakdownResponse(breakdown))
}
