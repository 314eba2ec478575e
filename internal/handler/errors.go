package handler

import (
	"log"
	"net/http"

	"fiscaltrack/internal/apperror"
	"fiscaltrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError renders a service error with the status its category maps to.
// Domain-layer errors carry user-facing messages; storage failures are
// logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case apperror.IsValidation(err):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case apperror.IsNotFound(err):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case apperror.IsDuplicate(err), apperror.IsDomain(err):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case apperror.IsStorage(err):
		log.Printf("storage failure: %v", err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "storage failure, try again later"))
	default:
		log.Printf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "internal error"))
	}
}
