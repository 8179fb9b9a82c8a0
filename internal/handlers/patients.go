package handlers

import (
	"fmt"
	"net/http"

	"clinrec/internal/services"

	"github.com/gin-gonic/gin"
)

func recordPath(patientID uint) string {
	return fmt.Sprintf("/patients/%d/record", patientID)
}

// ListPatients searches patients by name or national id; an empty query lists
// everyone, ordered by name.
func (h *Handler) ListPatients(c *gin.Context) {
	query := c.Query("query")
	patients, err := h.Patients.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"patients": patients,
	})
}

// NewPatientForm describes the creation form with its defaults.
func (h *Handler) NewPatientForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"allergies":   "None",
		"medications": "None",
	})
}

// CreatePatient registers a patient and redirects straight to its record view.
func (h *Handler) CreatePatient(c *gin.Context) {
	var input services.PatientInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := h.Patients.Register(c.Request.Context(), input)
	if err != nil {
		writeServiceError(c, err, input)
		return
	}

	c.Redirect(http.StatusSeeOther, recordPath(patient.ID))
}

// EditPatientForm returns the current demographics for the edit form.
func (h *Handler) EditPatientForm(c *gin.Context) {
	id, ok := patientIDParam(c)
	if !ok {
		return
	}
	patient, err := h.Patients.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": patient})
}

// UpdatePatient overwrites the patient's demographics and redirects back to
// the record view.
func (h *Handler) UpdatePatient(c *gin.Context) {
	id, ok := patientIDParam(c)
	if !ok {
		return
	}

	var input services.PatientInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := h.Patients.Update(c.Request.Context(), id, input)
	if err != nil {
		writeServiceError(c, err, input)
		return
	}

	c.Redirect(http.StatusSeeOther, recordPath(patient.ID))
}

// DeletePatient removes the patient and its whole ledger, then redirects to
// the patient list.
func (h *Handler) DeletePatient(c *gin.Context) {
	id, ok := patientIDParam(c)
	if !ok {
		return
	}

	if err := h.Patients.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, nil)
		return
	}

	c.Redirect(http.StatusSeeOther, "/patients")
}
