package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"clinrec/internal/services"

	"github.com/gin-gonic/gin"
)

// patientIDParam parses the :id path parameter.
func patientIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patient id"})
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps a business error to a response. The submitted input
// rides along so a presentation layer can re-render the form with it.
func writeServiceError(c *gin.Context, err error, input interface{}) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  validationErr.Error(),
			"fields": validationErr.Fields,
			"input":  input,
		})
	case errors.Is(err, services.ErrDuplicateEmail), errors.Is(err, services.ErrDuplicateNationalID):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "input": input})
	case errors.Is(err, services.ErrPatientNotFound), errors.Is(err, services.ErrClinicianNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrInvalidCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "input": input})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// safeNextPath keeps post-login redirects inside the site.
func safeNextPath(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
