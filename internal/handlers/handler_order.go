package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/BekhzodS/china_shop_app/internal/apperrors"
	"github.com/BekhzodS/china_shop_app/internal/core/domain"
	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/BekhzodS/china_shop_app/internal/dto"
	"github.com/BekhzodS/china_shop_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// orderHandler handles HTTP requests related to orders.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
	cargoService portssvc.CargoSvcFacade
}

// newOrderHandler creates a new orderHandler.
func newOrderHandler(os portssvc.OrderSvcFacade, cs portssvc.CargoSvcFacade) *orderHandler {
	return &orderHandler{
		orderService: os,
		cargoService: cs,
	}
}

// registerOrderRoutes registers routes related to orders.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade, cargoService portssvc.CargoSvcFacade) {
	h := newOrderHandler(orderService, cargoService)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.GET("/:orderID/tracking", h.getTracking)
		orders.PATCH("/:orderID/status", h.overrideStatus)
		orders.PATCH("/:orderID/purchased", h.setPurchased)
	}
}

// createOrder godoc
// @Summary Checkout the cart into an order
// @Description Materializes the caller's cart into an immutable order and clears the cart
// @Tags orders
// @Produce json
// @Success 201 {object} dto.OrderResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	order, err := h.orderService.CreateFromCart(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create order from cart", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create order"})
		}
		return
	}

	logger.Info("Order created", slog.String("order_id", order.OrderID))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List the caller's orders
// @Description Retrieves a page of the caller's orders, newest first
// @Tags orders
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = parsed
	}
	nextToken := c.Query("nextToken")

	orders, newToken, err := h.orderService.ListOrders(c.Request.Context(), userID, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to list orders", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list orders"})
		}
		return
	}

	resp := dto.ListOrdersResponse{
		Orders:    make([]dto.OrderResponse, len(orders)),
		NextToken: newToken,
	}
	for i := range orders {
		resp.Orders[i] = dto.ToOrderResponse(&orders[i])
	}

	c.JSON(http.StatusOK, resp)
}

// getOrder godoc
// @Summary Get one of the caller's orders
// @Description Retrieves an order with its lines. Another user's order is indistinguishable from a missing one.
// @Tags orders
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	orderID := c.Param("orderID")
	order, err := h.orderService.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
		} else {
			logger.Error("Failed to get order", slog.String("error", err.Error()), slog.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// getTracking godoc
// @Summary Track an order
// @Description Retrieves the read-only tracking projection for an order
// @Tags orders
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.TrackingResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/tracking [get]
func (h *orderHandler) getTracking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	tracking, err := h.cargoService.Tracking(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
		} else {
			logger.Error("Failed to get tracking", slog.String("error", err.Error()), slog.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve tracking"})
		}
		return
	}

	c.JSON(http.StatusOK, tracking)
}

// overrideStatus godoc
// @Summary Override an order's status
// @Description Administrative escape hatch: sets any status on any order, bypassing the lifecycle transition table
// @Tags orders
// @Accept json
// @Produce json
// @Param orderID path string true "Order ID"
// @Param status body dto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/status [patch]
func (h *orderHandler) overrideStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	orderID := c.Param("orderID")
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.orderService.OverrideStatus(c.Request.Context(), orderID, domain.OrderStatus(req.Status), updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
		} else {
			logger.Error("Failed to override order status", slog.String("error", err.Error()), slog.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update order status"})
		}
		return
	}

	logger.Info("Order status overridden", slog.String("order_id", orderID), slog.String("status", req.Status))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// setPurchased godoc
// @Summary Set the purchased flag
// @Description Toggles the procurement-side purchased flag. Setting it on a PENDING_PROCESSING order advances it to PROCURED.
// @Tags orders
// @Accept json
// @Produce json
// @Param orderID path string true "Order ID"
// @Param purchased body dto.SetPurchasedRequest true "Purchased flag"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/purchased [patch]
func (h *orderHandler) setPurchased(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	orderID := c.Param("orderID")
	var req dto.SetPurchasedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.orderService.SetPurchased(c.Request.Context(), orderID, *req.Purchased, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Order not found"})
		} else {
			logger.Error("Failed to set purchased flag", slog.String("error", err.Error()), slog.String("order_id", orderID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
