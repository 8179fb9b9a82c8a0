package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"clinrec/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func validPatientInput() PatientInput {
	return PatientInput{
		FullName:    "Maria Silva",
		NationalID:  "12345678901",
		DateOfBirth: "1980-05-12",
		Allergies:   "Penicillin",
		Medications: "Losartan",
	}
}

func TestRegisterPatientNationalIDLength(t *testing.T) {
	svc := NewPatientService(newTestDB(t))
	ctx := context.Background()

	tooShort := validPatientInput()
	tooShort.NationalID = strings.Repeat("1", 10)
	_, err := svc.Register(ctx, tooShort)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "national_id")

	min := validPatientInput()
	min.NationalID = strings.Repeat("2", 11)
	_, err = svc.Register(ctx, min)
	assert.NoError(t, err)

	max := validPatientInput()
	max.FullName = "Joana Costa"
	max.NationalID = strings.Repeat("3", 14)
	_, err = svc.Register(ctx, max)
	assert.NoError(t, err)
}

func TestRegisterPatientDuplicateNationalID(t *testing.T) {
	svc := NewPatientService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, validPatientInput())
	require.NoError(t, err)

	dup := validPatientInput()
	dup.FullName = "Someone Else"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateNationalID)
}

func TestRegisterPatientDefaults(t *testing.T) {
	svc := NewPatientService(newTestDB(t))

	input := validPatientInput()
	input.Allergies = ""
	input.Medications = "   "
	patient, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "None", patient.Allergies)
	assert.Equal(t, "None", patient.Medications)
	assert.WithinDuration(t, time.Now(), patient.RegisteredAt, time.Minute)
}

func TestSearchPatients(t *testing.T) {
	svc := NewPatientService(newTestDB(t))
	ctx := context.Background()

	for _, p := range []PatientInput{
		{FullName: "Carlos Pereira", NationalID: "99988877766", DateOfBirth: "1975-01-01"},
		{FullName: "Beatriz Lima", NationalID: "11122233344", DateOfBirth: "1990-06-15"},
		{FullName: "Andre Santos", NationalID: "55566677788", DateOfBirth: "1982-09-30"},
	} {
		_, err := svc.Register(ctx, p)
		require.NoError(t, err)
	}

	// Empty query returns everyone ordered by name.
	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Andre Santos", all[0].FullName)
	assert.Equal(t, "Beatriz Lima", all[1].FullName)
	assert.Equal(t, "Carlos Pereira", all[2].FullName)

	// Case-insensitive match on name.
	byName, err := svc.Search(ctx, "bEaTrIz")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Beatriz Lima", byName[0].FullName)

	// Substring match on national id.
	byID, err := svc.Search(ctx, "222333")
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "11122233344", byID[0].NationalID)

	none, err := svc.Search(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecentPatients(t *testing.T) {
	db := newTestDB(t)
	svc := NewPatientService(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"First Registered", "Second Registered", "Third Registered"} {
		patient := models.Patient{
			FullName:     name,
			NationalID:   strings.Repeat(string(rune('1'+i)), 11),
			DateOfBirth:  time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
			Allergies:    "None",
			Medications:  "None",
			RegisteredAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&patient).Error)
	}

	recent, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Third Registered", recent[0].FullName)
	assert.Equal(t, "Second Registered", recent[1].FullName)

	total, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestUpdatePatientRoundTrip(t *testing.T) {
	svc := NewPatientService(newTestDB(t))
	ctx := context.Background()

	input := validPatientInput()
	registered, err := svc.Register(ctx, input)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, registered.ID, input)
	require.NoError(t, err)

	fetched, err := svc.Get(ctx, registered.ID)
	require.NoError(t, err)

	assert.Equal(t, input.FullName, fetched.FullName)
	assert.Equal(t, input.NationalID, fetched.NationalID)
	assert.Equal(t, input.DateOfBirth, fetched.DateOfBirth.Format(dateLayout))
	assert.Equal(t, input.Allergies, fetched.Allergies)
	assert.Equal(t, input.Medications, fetched.Medications)
	assert.Equal(t, updated.ID, fetched.ID)
	// Registration timestamp is set once and survives updates.
	assert.WithinDuration(t, registered.RegisteredAt, fetched.RegisteredAt, time.Second)
}

func TestUpdatePatientUniquenessExcludesSelf(t *testing.T) {
	svc := NewPatientService(newTestDB(t))
	ctx := context.Background()

	registered, err := svc.Register(ctx, validPatientInput())
	require.NoError(t, err)

	other := validPatientInput()
	other.FullName = "Outro Paciente"
	other.NationalID = "44455566677"
	_, err = svc.Register(ctx, other)
	require.NoError(t, err)

	// Keeping its own national id is fine.
	changed := validPatientInput()
	changed.FullName = "Maria S. Silva"
	_, err = svc.Update(ctx, registered.ID, changed)
	assert.NoError(t, err)

	// Taking another patient's national id is not.
	changed.NationalID = other.NationalID
	_, err = svc.Update(ctx, registered.ID, changed)
	assert.ErrorIs(t, err, ErrDuplicateNationalID)
}

func TestUpdatePatientNotFound(t *testing.T) {
	svc := NewPatientService(newTestDB(t))
	_, err := svc.Update(context.Background(), 999, validPatientInput())
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestDeletePatientCascadesToLedger(t *testing.T) {
	db := newTestDB(t)
	patients := NewPatientService(db)
	records := NewRecordService(db)
	ctx := context.Background()

	author, err := newTestAuthService(db).RegisterClinician(ctx, validClinicianInput())
	require.NoError(t, err)

	patient, err := patients.Register(ctx, validPatientInput())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := records.Append(ctx, patient.ID, author.ID, RecordInput{
			Type:        models.EntryConsultation,
			Description: "routine visit",
		})
		require.NoError(t, err)
	}

	require.NoError(t, patients.Delete(ctx, patient.ID))

	_, err = patients.Get(ctx, patient.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = records.ListForPatient(ctx, patient.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	var count int64
	require.NoError(t, db.Model(&models.RecordEntry{}).Where("patient_id = ?", patient.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeletePatientNotFound(t *testing.T) {
	svc := NewPatientService(newTestDB(t))
	err := svc.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestDeletePatientRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	patients := NewPatientService(db)
	records := NewRecordService(db)
	ctx := context.Background()

	author, err := newTestAuthService(db).RegisterClinician(ctx, validClinicianInput())
	require.NoError(t, err)

	patient, err := patients.Register(ctx, validPatientInput())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := records.Append(ctx, patient.ID, author.ID, RecordInput{
			Type:        models.EntryProgressNote,
			Description: "stable overnight",
		})
		require.NoError(t, err)
	}

	// The same two-step deletion the service runs, failing after both steps:
	// nothing may remain deleted.
	boom := errors.New("boom")
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", patient.ID).Delete(&models.RecordEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Patient{}, patient.ID).Error; err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var entryCount int64
	require.NoError(t, db.Model(&models.RecordEntry{}).Where("patient_id = ?", patient.ID).Count(&entryCount).Error)
	assert.Equal(t, int64(3), entryCount)

	_, err = patients.Get(ctx, patient.ID)
	assert.NoError(t, err)
}
