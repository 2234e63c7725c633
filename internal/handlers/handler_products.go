package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/BekhzodS/china_shop_app/internal/dto"
	"github.com/BekhzodS/china_shop_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// productHandler proxies product lookups to the marketplace and attaches
// localized pricing.
type productHandler struct {
	products portssvc.ProductProvider
	pricing  portssvc.PricingSvcFacade
	activity portssvc.ActivityRecorder
}

// newProductHandler creates a new productHandler.
func newProductHandler(pp portssvc.ProductProvider, ps portssvc.PricingSvcFacade, ar portssvc.ActivityRecorder) *productHandler {
	return &productHandler{
		products: pp,
		pricing:  ps,
		activity: ar,
	}
}

// registerProductRoutes registers routes related to marketplace products.
func registerProductRoutes(rg *gin.RouterGroup, products portssvc.ProductProvider, pricing portssvc.PricingSvcFacade, activity portssvc.ActivityRecorder) {
	h := newProductHandler(products, pricing, activity)

	group := rg.Group("/products")
	{
		group.GET("", h.searchProducts)
		group.GET("/:productID", h.getProduct)
	}
}

// searchProducts godoc
// @Summary Search marketplace products
// @Description Searches the upstream marketplace catalog by free-text query
// @Tags products
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /products [get]
func (h *productHandler) searchProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "q is required"})
		return
	}

	products, err := h.products.Search(c.Request.Context(), query)
	if err != nil {
		logger.Error("Marketplace search failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Marketplace search failed"})
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		h.activity.Record(userID, "search", map[string]any{"query": query, "results": len(products)})
	}

	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = dto.ToProductResponse(&products[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getProduct godoc
// @Summary Get a marketplace product
// @Description Retrieves one product with its variants and a localized price breakdown attached
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Param currency query string false "Target currency code (3 letters, defaults to RUB)"
// @Success 200 {object} dto.ProductResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	product, err := h.products.GetProduct(c.Request.Context(), productID)
	if err != nil {
		logger.Warn("Marketplace product lookup failed", slog.String("error", err.Error()), slog.String("product_id", productID))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Marketplace product lookup failed"})
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		h.activity.Record(userID, "view_product", map[string]any{"product_id": productID})
	}

	resp := dto.ToProductResponse(product)
	breakdown := h.pricing.ApplyPricing(c.Request.Context(), product.BasePrice, c.Query("currency"))
	pricing := dto.ToPriceBreakdownResponse(breakdown)
	resp.Pricing = &pricing

	c.JSON(http.StatusOK, resp)
}
