package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eth-jashan/ai-restaurant-pos/internal/adapter/api/dto"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/menu"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/auth"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/logger"
)

// MenuController handles direct (non-assistant) menu requests
type MenuController struct {
	menuRepository menu.Repository
	logger         logger.Logger
}

// NewMenuController creates a MenuController
func NewMenuController(menuRepository menu.Repository, log logger.Logger) *MenuController {
	return &MenuController{
		menuRepository: menuRepository,
		logger:         log,
	}
}

// ListCategories lists the menu categories of the restaurant
// @Summary List menu categories
// @Tags menu
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /menu/categories [get]
func (c *MenuController) ListCategories(ctx *gin.Context) {
	restaurantID := ctx.GetString(auth.ContextRestaurantID)

	categories, err := c.menuRepository.ListCategories(ctx, restaurantID)
	if err != nil {
		c.logger.Error("error listing categories", "error", err, "restaurant_id", restaurantID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Error listing categories", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Categories loaded", categories))
}

// ListItems lists the menu items of the restaurant
// @Summary List menu items
// @Tags menu
// @Produce json
// @Param category_id query string false "Filter by category"
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /menu/items [get]
func (c *MenuController) ListItems(ctx *gin.Context) {
	restaurantID := ctx.GetString(auth.ContextRestaurantID)

	items, err := c.menuRepository.ListItems(ctx, restaurantID, ctx.Query("category_id"))
	if err != nil {
		c.logger.Error("error listing menu items", "error", err, "restaurant_id", restaurantID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Error listing menu items", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Menu items loaded", items))
}

// UpdatePrice sets a new price for a menu item
// @Summary Update the price of a menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param price body dto.UpdatePriceRequest true "New price"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /menu/items/{id}/price [put]
func (c *MenuController) UpdatePrice(ctx *gin.Context) {
	var request dto.UpdatePriceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}

	restaurantID := ctx.GetString(auth.ContextRestaurantID)
	itemID := ctx.Param("id")

	count, err := c.menuRepository.ApplyPriceUpdates(ctx, restaurantID, []menu.PriceUpdate{
		{ItemID: itemID, NewPrice: request.NewPrice},
	})
	if err != nil {
		c.logger.Error("error updating price", "error", err, "item_id", itemID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Error updating price", err.Error()))
		return
	}
	if count == 0 {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Menu item not found", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Price updated", nil))
}

// SetAvailability toggles a menu item's availability
// @Summary Set the availability of a menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param availability body dto.SetAvailabilityRequest true "New availability"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /menu/items/{id}/availability [put]
func (c *MenuController) SetAvailability(ctx *gin.Context) {
	var request dto.SetAvailabilityRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}

	restaurantID := ctx.GetString(auth.ContextRestaurantID)
	itemID := ctx.Param("id")

	items, err := c.menuRepository.SetAvailability(ctx, restaurantID, []string{itemID}, *request.IsAvailable)
	if err != nil {
		c.logger.Error("error updating availability", "error", err, "item_id", itemID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Error updating availability", err.Error()))
		return
	}
	if len(items) == 0 {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Menu item not found", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Availability updated", items[0]))
}
