package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinrec/internal/models"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// PatientInput carries the patient form fields. DateOfBirth is submitted as
// YYYY-MM-DD.
type PatientInput struct {
	FullName    string `form:"full_name" json:"full_name"`
	NationalID  string `form:"national_id" json:"national_id"`
	DateOfBirth string `form:"date_of_birth" json:"date_of_birth"`
	Allergies   string `form:"allergies" json:"allergies"`
	Medications string `form:"medications" json:"medications"`
}

// PatientService implements the patient registry over the relational store.
type PatientService struct {
	db *gorm.DB
}

func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{db: db}
}

func validatePatientInput(input *PatientInput) (time.Time, *ValidationError) {
	v := newValidationError()

	input.FullName = strings.TrimSpace(input.FullName)
	input.NationalID = strings.TrimSpace(input.NationalID)
	input.Allergies = strings.TrimSpace(input.Allergies)
	input.Medications = strings.TrimSpace(input.Medications)

	if input.FullName == "" {
		v.add("full_name", "full name is required")
	}
	if n := len(input.NationalID); n < 11 || n > 14 {
		v.add("national_id", "national id must be between 11 and 14 characters")
	}

	var birthDate time.Time
	if input.DateOfBirth == "" {
		v.add("date_of_birth", "date of birth is required")
	} else {
		parsed, err := time.Parse(dateLayout, input.DateOfBirth)
		if err != nil {
			v.add("date_of_birth", "date of birth must be in YYYY-MM-DD format")
		} else {
			birthDate = parsed
		}
	}

	if input.Allergies == "" {
		input.Allergies = "None"
	}
	if input.Medications == "" {
		input.Medications = "None"
	}

	if v.hasErrors() {
		return time.Time{}, v
	}
	return birthDate, nil
}

// nationalIDTaken checks uniqueness of the national id, excluding excludeID
// when updating a patient against itself.
func (s *PatientService) nationalIDTaken(ctx context.Context, nationalID string, excludeID uint) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.Patient{}).Where("national_id = ?", nationalID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Register validates the input, enforces national id uniqueness and inserts
// the patient with the registration timestamp set once.
func (s *PatientService) Register(ctx context.Context, input PatientInput) (*models.Patient, error) {
	birthDate, v := validatePatientInput(&input)
	if v != nil {
		return nil, v
	}

	taken, err := s.nationalIDTaken(ctx, input.NationalID, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateNationalID
	}

	patient := models.Patient{
		FullName:     input.FullName,
		NationalID:   input.NationalID,
		DateOfBirth:  birthDate,
		Allergies:    input.Allergies,
		Medications:  input.Medications,
		RegisteredAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&patient).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateNationalID
		}
		return nil, err
	}
	return &patient, nil
}

// Get loads a single patient by id.
func (s *PatientService) Get(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	err := s.db.WithContext(ctx).First(&patient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// Update overwrites the mutable demographic fields of an existing patient.
// RegisteredAt is never touched.
func (s *PatientService) Update(ctx context.Context, id uint, input PatientInput) (*models.Patient, error) {
	patient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	birthDate, v := validatePatientInput(&input)
	if v != nil {
		return nil, v
	}

	taken, err := s.nationalIDTaken(ctx, input.NationalID, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateNationalID
	}

	patient.FullName = input.FullName
	patient.NationalID = input.NationalID
	patient.DateOfBirth = birthDate
	patient.Allergies = input.Allergies
	patient.Medications = input.Medications

	if err := s.db.WithContext(ctx).Save(patient).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateNationalID
		}
		return nil, err
	}
	return patient, nil
}

// Search returns patients ordered by name. A non-empty query filters by
// case-insensitive substring match over name or national id.
func (s *PatientService) Search(ctx context.Context, query string) ([]models.Patient, error) {
	dbQuery := s.db.WithContext(ctx).Order("full_name asc")

	query = strings.TrimSpace(query)
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		dbQuery = dbQuery.Where("LOWER(full_name) LIKE ? OR LOWER(national_id) LIKE ?", pattern, pattern)
	}

	var patients []models.Patient
	if err := dbQuery.Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// Recent returns the most recently registered patients, newest first.
func (s *PatientService) Recent(ctx context.Context, limit int) ([]models.Patient, error) {
	var patients []models.Patient
	err := s.db.WithContext(ctx).
		Order("registered_at desc").
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// Count returns the total number of registered patients.
func (s *PatientService) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Patient{}).Count(&count).Error
	return count, err
}

// Delete removes the patient and every entry in its ledger inside one
// transaction; a failure at any step rolls the whole deletion back.
func (s *PatientService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var patient models.Patient
		if err := tx.First(&patient, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatientNotFound
			}
			return err
		}
		if err := tx.Where("patient_id = ?", id).Delete(&models.RecordEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&patient).Error
	})
}
