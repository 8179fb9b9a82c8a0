package handlers

import (
	"net/http"

	"clinrec/internal/middleware"
	"clinrec/internal/models"
	"clinrec/internal/services"

	"github.com/gin-gonic/gin"
)

// ViewRecord returns a patient together with its ledger, most recent entry
// first, plus the entry types the append form offers.
func (h *Handler) ViewRecord(c *gin.Context) {
	id, ok := patientIDParam(c)
	if !ok {
		return
	}

	patient, err := h.Patients.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, nil)
		return
	}
	entries, err := h.Records.ListForPatient(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patient": patient,
		"entries": entries,
		"entry_types": []string{
			models.EntryConsultation,
			models.EntryExamResult,
			models.EntryProcedure,
			models.EntryPrescription,
			models.EntryProgressNote,
		},
	})
}

// AppendRecord adds an entry to the patient's ledger authored by the current
// identity and redirects back to the record view.
func (h *Handler) AppendRecord(c *gin.Context) {
	id, ok := patientIDParam(c)
	if !ok {
		return
	}

	var input services.RecordInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author := middleware.CurrentClinician(c)
	if _, err := h.Records.Append(c.Request.Context(), id, author.ID, input); err != nil {
		writeServiceError(c, err, input)
		return
	}

	c.Redirect(http.StatusSeeOther, recordPath(id))
}
