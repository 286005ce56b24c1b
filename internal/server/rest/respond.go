package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/carsapi/internal/common"
	"github.com/dmitrijs2005/carsapi/internal/logging"
	"github.com/dmitrijs2005/carsapi/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const msgTokenRefreshed = "Token refreshed"

// respond writes payload, wrapping it in the refresh envelope when the gate
// renewed the access token for this request. A renewed 204 becomes a 200
// so the envelope has a body to live in.
func respond(c *gin.Context, out auth.Outcome, status int, payload any) {
	if !out.Renewed() {
		if status == http.StatusNoContent {
			c.Status(status)
			return
		}
		c.JSON(status, payload)
		return
	}

	if status == http.StatusNoContent {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"message": msgTokenRefreshed,
		"token":   out.RenewedAccessToken,
		"result":  payload,
	})
}

// writeError maps service errors onto HTTP responses.
func writeError(c *gin.Context, logger logging.Logger, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Unauthorized"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	case errors.Is(err, common.ErrorConflict):
		c.JSON(http.StatusConflict, gin.H{"message": "Already logged in"})
	default:
		logger.Error(c.Request.Context(), "request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
}
