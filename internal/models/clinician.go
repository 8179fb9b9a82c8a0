package models

// Professional roles a clinician can hold.
const (
	RolePhysician     = "Physician"
	RoleNurse         = "Nurse"
	RoleAdministrator = "Administrator"
)

// Clinician defines an authenticated professional user. The email doubles as
// the login identifier.
type Clinician struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	FirstName    string `json:"first_name" gorm:"not null"`
	LastName     string `json:"last_name" gorm:"not null"`
	Role         string `json:"role" gorm:"not null;default:'Physician'"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
}

// ValidRole reports whether r is one of the known professional roles.
func ValidRole(r string) bool {
	switch r {
	case RolePhysician, RoleNurse, RoleAdministrator:
		return true
	}
	return false
}
