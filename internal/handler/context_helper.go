package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/parsa-edu/transfer-appeal-api/internal/middleware"
	"github.com/parsa-edu/transfer-appeal-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// actorFromClaims projects JWT claims onto the user shape the services expect.
func actorFromClaims(claims *models.JWTClaims) models.User {
	return models.User{
		ID:           claims.UserID,
		Email:        claims.Email,
		FullName:     claims.FullName,
		Role:         claims.Role,
		DistrictCode: claims.DistrictCode,
	}
}
