package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope:
// {success, data?, error?, count?}.

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "Server Error"

	switch {
	case domain.IsValidation(err), errors.Is(err, domain.ErrConflict):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
		msg = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	default:
		log.Printf("internal error: %v", err)
	}

	c.JSON(status, gin.H{"success": false, "error": msg})
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}
