package handlers

import (
	"net/http"

	"clinrec/internal/middleware"

	"github.com/gin-gonic/gin"
)

const dashboardRecentLimit = 5

// Dashboard returns the home view data: the five most recently registered
// patients and the total patient count.
func (h *Handler) Dashboard(c *gin.Context) {
	recent, err := h.Patients.Recent(c.Request.Context(), dashboardRecentLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total, err := h.Patients.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	clinician := middleware.CurrentClinician(c)
	c.JSON(http.StatusOK, gin.H{
		"clinician":       clinician,
		"recent_patients": recent,
		"total_patients":  total,
	})
}
