package handler

import (
	"log"
	"net/http"

	"zapshift/internal/apperr"
	"zapshift/internal/model"

	"github.com/gin-gonic/gin"
)

// respondError converts a service error to its status code. Internal errors
// are logged and returned generically so store details never leak.
func respondError(c *gin.Context, err error, message string) {
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, model.NewErrorResponse(message, ""))
		return
	}
	c.JSON(status, model.NewErrorResponse(message, err.Error()))
}
