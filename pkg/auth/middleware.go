package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eth-jashan/ai-restaurant-pos/internal/adapter/api/dto"
)

// Context keys set by the auth middleware
const (
	ContextUserID       = "user_id"
	ContextRestaurantID = "restaurant_id"
	ContextRole         = "role"
)

// JWTAuthMiddleware validates the Bearer token and puts the caller's identity
// into the request context
func JWTAuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Authentication required",
				"The Authorization header was not provided",
			))
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Invalid token format",
				"Use the format 'Bearer <token>'",
			))
			return
		}

		claims, err := jwtService.ValidateToken(tokenParts[1])
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, ErrExpiredToken) {
				message = "Expired token"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				message,
				"",
			))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRestaurantID, claims.RestaurantID)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}
