package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eth-jashan/ai-restaurant-pos/internal/adapter/api/dto"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/assistant"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/auth"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/logger"
)

// AssistantController handles the natural language assistant endpoints
type AssistantController struct {
	service *assistant.Service
	logger  logger.Logger
}

// NewAssistantController creates an AssistantController
func NewAssistantController(service *assistant.Service, log logger.Logger) *AssistantController {
	return &AssistantController{
		service: service,
		logger:  log,
	}
}

// ProcessMessage handles one natural language command
// @Summary Process an assistant message
// @Description Interprets a natural language command and returns the assistant's reply. Mutating commands on prices return a preview that must be confirmed separately.
// @Tags assistant
// @Accept json
// @Produce json
// @Param message body dto.AssistantMessageRequest true "Command to process"
// @Success 200 {object} assistant.Response
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /ai/message [post]
func (c *AssistantController) ProcessMessage(ctx *gin.Context) {
	var req dto.AssistantMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}

	restaurantID := ctx.GetString(auth.ContextRestaurantID)
	userID := ctx.GetString(auth.ContextUserID)

	reply, err := c.service.ProcessMessage(ctx, restaurantID, userID, req.Message, req.ConversationID)
	if err != nil {
		c.logger.Error("error processing assistant message", "error", err, "restaurant_id", restaurantID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Error processing message", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, reply)
}

// ConfirmAction executes a previously previewed action
// @Summary Confirm a pending action
// @Description Executes the pending action identified by actionId. Expired, cancelled or already processed actions report success=false.
// @Tags assistant
// @Accept json
// @Produce json
// @Param action body dto.AssistantActionRequest true "Action to confirm"
// @Success 200 {object} dto.AssistantActionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /ai/confirm [post]
func (c *AssistantController) ConfirmAction(ctx *gin.Context) {
	var req dto.AssistantActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}

	result, err := c.service.ConfirmAction(ctx, req.ActionID)
	if err != nil {
		if errors.Is(err, assistant.ErrActionNotFound) {
			ctx.JSON(http.StatusOK, dto.AssistantActionResponse{
				Success: false,
				Message: "This action has expired or was already processed. Please repeat the command.",
			})
			return
		}
		c.logger.Error("error confirming action", "error", err, "action_id", req.ActionID)
		ctx.JSON(http.StatusOK, dto.AssistantActionResponse{
			Success: false,
			Message: "Something went wrong applying the change. Please try again.",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.AssistantActionResponse{
		Success: true,
		Message: result.Message,
	})
}

// CancelAction discards a previously previewed action
// @Summary Cancel a pending action
// @Description Discards the pending action identified by actionId without executing it
// @Tags assistant
// @Accept json
// @Produce json
// @Param action body dto.AssistantActionRequest true "Action to cancel"
// @Success 200 {object} dto.AssistantActionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /ai/cancel [post]
func (c *AssistantController) CancelAction(ctx *gin.Context) {
	var req dto.AssistantActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}

	if !c.service.CancelAction(req.ActionID) {
		ctx.JSON(http.StatusOK, dto.AssistantActionResponse{
			Success: false,
			Message: "This action has expired or was already processed.",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.AssistantActionResponse{
		Success: true,
		Message: "Action cancelled. Nothing was changed.",
	})
}

// GetHistory returns the messages of a conversation
// @Summary Get conversation history
// @Description Returns the messages of a conversation in chronological order
// @Tags assistant
// @Produce json
// @Param id path string true "Conversation ID"
// @Param limit query int false "Maximum number of messages" default(50)
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /ai/conversations/{id}/messages [get]
func (c *AssistantController) GetHistory(ctx *gin.Context) {
	restaurantID := ctx.GetString(auth.ContextRestaurantID)
	conversationID := ctx.Param("id")
	limit := 50
	if v := ctx.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	messages, err := c.service.History(ctx, restaurantID, conversationID, limit)
	if err != nil {
		c.logger.Error("error loading conversation history", "error", err, "conversation_id", conversationID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Error loading history", err.Error()))
		return
	}
	if messages == nil {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Conversation not found", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("History loaded", messages))
}
