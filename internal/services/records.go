package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinrec/internal/models"

	"gorm.io/gorm"
)

// RecordInput carries the fields for a new ledger entry. The author comes from
// the current identity, never from the form.
type RecordInput struct {
	Type        string `form:"type" json:"type"`
	Description string `form:"description" json:"description"`
}

// RecordService implements the append-only clinical ledger.
type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

func validateRecordInput(input *RecordInput) *ValidationError {
	v := newValidationError()

	input.Description = strings.TrimSpace(input.Description)

	if !models.ValidEntryType(input.Type) {
		v.add("type", "unknown record type")
	}
	if input.Description == "" {
		v.add("description", "description is required")
	}

	if v.hasErrors() {
		return v
	}
	return nil
}

// Append inserts a new entry into a patient's ledger with a server-assigned
// timestamp. Both the patient and the authoring clinician must exist; the
// existence checks and the insert share one transaction so no entry can be
// left dangling.
func (s *RecordService) Append(ctx context.Context, patientID, authorID uint, input RecordInput) (*models.RecordEntry, error) {
	if v := validateRecordInput(&input); v != nil {
		return nil, v
	}

	entry := models.RecordEntry{
		CreatedAt:   time.Now(),
		Type:        input.Type,
		Description: input.Description,
		PatientID:   patientID,
		ClinicianID: authorID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.First(&patient, patientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatientNotFound
			}
			return err
		}
		var clinician models.Clinician
		if err := tx.First(&clinician, authorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClinicianNotFound
			}
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListForPatient returns the patient's ledger, most recent entry first.
func (s *RecordService) ListForPatient(ctx context.Context, patientID uint) ([]models.RecordEntry, error) {
	var patient models.Patient
	err := s.db.WithContext(ctx).First(&patient, patientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}

	var entries []models.RecordEntry
	err = s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
