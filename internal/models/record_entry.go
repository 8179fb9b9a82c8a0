package models

import "time"

// Kinds of clinical entries a ledger can hold.
const (
	EntryConsultation = "Consultation"
	EntryExamResult   = "Exam Result"
	EntryProcedure    = "Procedure"
	EntryPrescription = "Prescription"
	EntryProgressNote = "Progress Note"
)

// RecordEntry is one immutable, timestamped item in a patient's clinical
// history. Entries are never updated or deleted individually; they are only
// removed by the cascade when their patient is deleted.
type RecordEntry struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	Type        string    `json:"type" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	PatientID   uint      `json:"patient_id" gorm:"index;not null"`
	ClinicianID uint      `json:"clinician_id" gorm:"index;not null"` // authoring clinician
}

// ValidEntryType reports whether t is one of the known entry kinds.
func ValidEntryType(t string) bool {
	switch t {
	case EntryConsultation, EntryExamResult, EntryProcedure, EntryPrescription, EntryProgressNote:
		return true
	}
	return false
}
