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

// cartHandler handles HTTP requests related to the caller's cart.
type cartHandler struct {
	cartService portssvc.CartSvcFacade
}

// newCartHandler creates a new cartHandler.
func newCartHandler(cs portssvc.CartSvcFacade) *cartHandler {
	return &cartHandler{
		cartService: cs,
	}
}

// RegisterCartRoutes registers routes related to carts.
func RegisterCartRoutes(rg *gin.RouterGroup, cartService portssvc.CartSvcFacade) {
	h := newCartHandler(cartService)

	cart := rg.Group("/cart")
	{
		cart.GET("", h.getCart)
		cart.POST("/items", h.addItem)
		cart.DELETE("/items", h.removeItem)
		cart.DELETE("", h.clearCart)
	}
}

// getCart godoc
// @Summary Get the caller's cart
// @Description Retrieves the caller's priced cart view. A user without a cart gets an empty view.
// @Tags cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cart [get]
func (h *cartHandler) getCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get cart", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// addItem godoc
// @Summary Add an item to the cart
// @Description Resolves the unit price, freezes it in a price snapshot and upserts the cart line. Re-adding the same product+variant merges quantities.
// @Tags cart
// @Accept json
// @Produce json
// @Param item body dto.AddCartItemRequest true "Item to add"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cart/items [post]
func (h *cartHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
		} else {
			logger.Error("Failed to add item to cart", slog.String("error", err.Error()), slog.String("product_id", req.ProductID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add item to cart"})
		}
		return
	}

	c.JSON(http.StatusOK, cart)
}

// removeItem godoc
// @Summary Remove a cart line
// @Description Removes one line identified by product and variant selector
// @Tags cart
// @Produce json
// @Param productID query string true "Product ID"
// @Param variantSelector query string false "Variant selector"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cart/items [delete]
func (h *cartHandler) removeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	productID := c.Query("productID")
	if productID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "productID is required"})
		return
	}
	variantSelector := c.Query("variantSelector")

	err := h.cartService.RemoveLine(c.Request.Context(), userID, productID, variantSelector)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Cart line not found"})
		} else {
			logger.Error("Failed to remove cart line", slog.String("error", err.Error()), slog.String("product_id", productID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to remove cart line"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// clearCart godoc
// @Summary Clear the cart
// @Description Removes all lines from the caller's cart. Clearing a nonexistent cart is a no-op.
// @Tags cart
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cart [delete]
func (h *cartHandler) clearCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), userID); err != nil {
		logger.Error("Failed to clear cart", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to clear cart"})
		return
	}

	c.Status(http.StatusNoContent)
}
