package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eth-jashan/ai-restaurant-pos/internal/adapter/api/dto"
	"github.com/eth-jashan/ai-restaurant-pos/internal/domain/user"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/auth"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/logger"
)

// AuthController handles authentication requests
type AuthController struct {
	userRepository user.Repository
	jwtService     *auth.JWTService
	logger         logger.Logger
}

// NewAuthController creates an AuthController
func NewAuthController(userRepository user.Repository, jwtService *auth.JWTService, log logger.Logger) *AuthController {
	return &AuthController{
		userRepository: userRepository,
		jwtService:     jwtService,
		logger:         log,
	}
}

// Login authenticates a user and returns a JWT
// @Summary Authenticate a user
// @Description Checks the user's credentials and returns a signed access token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}

	u, err := c.userRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		c.logger.Error("error looking up user", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Error authenticating user", err.Error()))
		return
	}
	if u == nil || !u.CheckPassword(request.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Invalid credentials", "Incorrect email or password"))
		return
	}

	if !u.IsActive() {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "Inactive user", "This account is deactivated"))
		return
	}

	token, err := c.jwtService.GenerateToken(u)
	if err != nil {
		c.logger.Error("error generating token", "error", err, "user_id", u.ID)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Error generating token", err.Error()))
		return
	}

	if err := c.userRepository.UpdateLastLogin(ctx, u.ID); err != nil {
		// login still succeeds, only the timestamp is lost
		c.logger.Warn("error updating last login", "error", err, "user_id", u.ID)
	}

	ctx.JSON(http.StatusOK, dto.NewLoginResponse(u, token, time.Now().Add(c.jwtService.Expiration())))
}
