package models

import "time"

// Patient defines the demographic record for one person under care.
type Patient struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"full_name" gorm:"not null;index"`
	NationalID   string    `json:"national_id" gorm:"uniqueIndex;not null"` // 11-14 characters
	DateOfBirth  time.Time `json:"date_of_birth" gorm:"not null"`
	Allergies    string    `json:"allergies" gorm:"type:text;default:'None'"`
	Medications  string    `json:"medications" gorm:"type:text;default:'None'"`
	RegisteredAt time.Time `json:"registered_at" gorm:"index"` // set once at creation
}
