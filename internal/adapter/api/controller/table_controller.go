package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eth-jashan/ai-restaurant-pos/internal/adapter/api/dto"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/table"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/auth"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/logger"
)

// TableController handles restaurant table requests
type TableController struct {
	tableRepository table.Repository
	logger          logger.Logger
}

// NewTableController creates a TableController
func NewTableController(tableRepository table.Repository, log logger.Logger) *TableController {
	return &TableController{
		tableRepository: tableRepository,
		logger:          log,
	}
}

// ListTables lists the tables of the restaurant with their current status
// @Summary List restaurant tables
// @Tags tables
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tables [get]
func (c *TableController) ListTables(ctx *gin.Context) {
	restaurantID := ctx.GetString(auth.ContextRestaurantID)

	tables, err := c.tableRepository.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		c.logger.Error("error listing tables", "error", err, "restaurant_id", restaurantID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Error listing tables", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Tables loaded", tables))
}
