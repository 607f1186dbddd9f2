package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/plant-shift-api/internal/middleware"
	appErrors "github.com/noah-isme/plant-shift-api/pkg/errors"
	"github.com/noah-isme/plant-shift-api/pkg/response"
)

// currentUserID writes 401 and returns false when the request carries no user.
func currentUserID(c *gin.Context) (string, bool) {
	claims, ok := middleware.CurrentUser(c)
	if !ok || claims.UserID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return false
	}
	return true
}
