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

// logisticsHandler handles HTTP requests related to freight.
type logisticsHandler struct {
	cargoService portssvc.CargoSvcFacade
}

// newLogisticsHandler creates a new logisticsHandler.
func newLogisticsHandler(cs portssvc.CargoSvcFacade) *logisticsHandler {
	return &logisticsHandler{
		cargoService: cs,
	}
}

// registerLogisticsRoutes registers routes related to cargo and freight groups.
func registerLogisticsRoutes(rg *gin.RouterGroup, cargoService portssvc.CargoSvcFacade) {
	h := newLogisticsHandler(cargoService)

	cargos := rg.Group("/cargos")
	{
		cargos.POST("", h.createCargo)
		cargos.POST("/:cargoID/arrive", h.arriveCargo)
	}
}

// createCargo godoc
// @Summary Create a cargo from orders
// @Description Groups the given orders into a freight group, creates a cargo and advances the orders to IN_TRANSIT
// @Tags logistics
// @Accept json
// @Produce json
// @Param cargo body dto.CreateCargoRequest true "Orders to group"
// @Success 201 {object} dto.CreateCargoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cargos [post]
func (h *logisticsHandler) createCargo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCargo", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.cargoService.CreateCargo(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create cargo", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create cargo"})
		}
		return
	}

	logger.Info("Cargo created", slog.String("cargo_id", created.CargoID), slog.String("freight_group_id", created.FreightGroupID))
	c.JSON(http.StatusCreated, created)
}

// arriveCargo godoc
// @Summary Mark a cargo as arrived
// @Description Marks the cargo arrived and distributes its shipping cost across the group's orders in proportion to their subtotals
// @Tags logistics
// @Accept json
// @Produce json
// @Param cargoID path string true "Cargo ID"
// @Param arrival body dto.ArriveCargoRequest true "Actual shipping cost (optional)"
// @Success 200 {object} dto.ArriveCargoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cargos/{cargoID}/arrive [post]
func (h *logisticsHandler) arriveCargo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cargoID := c.Param("cargoID")
	var req dto.ArriveCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.cargoService.Arrive(c.Request.Context(), cargoID, req.ActualShippingCost, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Cargo not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to mark cargo arrived", slog.String("error", err.Error()), slog.String("cargo_id", cargoID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to mark cargo arrived"})
		}
		return
	}

	logger.Info("Cargo arrived", slog.String("cargo_id", cargoID))
	c.JSON(http.StatusOK, result)
}
