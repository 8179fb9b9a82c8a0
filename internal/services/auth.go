package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"clinrec/internal/auth"
	"clinrec/internal/models"

	"gorm.io/gorm"
)

// RegisterClinicianInput carries the clinician registration form fields.
type RegisterClinicianInput struct {
	FirstName       string `form:"first_name" json:"first_name"`
	LastName        string `form:"last_name" json:"last_name"`
	Role            string `form:"role" json:"role"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// AuthService handles clinician registration, authentication and the login
// session lifecycle.
type AuthService struct {
	db         *gorm.DB
	sessions   auth.SessionStore
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthService(db *gorm.DB, sessions auth.SessionStore, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		db:         db,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

func validateClinicianInput(input *RegisterClinicianInput) *ValidationError {
	v := newValidationError()

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)

	if input.FirstName == "" {
		v.add("first_name", "first name is required")
	}
	if input.LastName == "" {
		v.add("last_name", "last name is required")
	}
	if input.Role == "" {
		input.Role = models.RolePhysician
	} else if !models.ValidRole(input.Role) {
		v.add("role", "unknown professional role")
	}
	if input.Email == "" {
		v.add("email", "email is required")
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		v.add("email", "invalid email address")
	}
	if len(input.Password) < 6 {
		v.add("password", "password must be at least 6 characters long")
	}
	if input.Password != input.ConfirmPassword {
		v.add("confirm_password", "passwords do not match")
	}

	if v.hasErrors() {
		return v
	}
	return nil
}

// RegisterClinician validates the input, enforces email uniqueness and stores
// the clinician with a bcrypt password hash.
func (s *AuthService) RegisterClinician(ctx context.Context, input RegisterClinicianInput) (*models.Clinician, error) {
	if v := validateClinicianInput(&input); v != nil {
		return nil, v
	}

	var existing models.Clinician
	err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	clinician := models.Clinician{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&clinician).Error; err != nil {
		// A concurrent registration can slip past the pre-check; the unique
		// index is the real guarantee.
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &clinician, nil
}

// Authenticate looks the clinician up by email and verifies the password.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.Clinician, error) {
	email = strings.TrimSpace(email)

	var clinician models.Clinician
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&clinician).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(password, clinician.PasswordHash) {
		return nil, ErrInvalidCredential
	}
	return &clinician, nil
}

// EstablishSession creates a server-side session for the clinician and returns
// the signed token identifying it.
func (s *AuthService) EstablishSession(ctx context.Context, clinician *models.Clinician) (string, error) {
	sessionID := auth.NewSessionID()
	if err := s.sessions.Put(ctx, sessionID, clinician.ID, s.sessionTTL); err != nil {
		return "", err
	}
	return auth.CreateSessionToken(clinician.ID, sessionID, s.jwtSecret, s.sessionTTL)
}

// CurrentIdentity resolves the clinician behind a session token. It returns
// (nil, nil) when the token is missing, malformed, expired or revoked; only
// infrastructure failures surface as errors.
func (s *AuthService) CurrentIdentity(ctx context.Context, token string) (*models.Clinician, error) {
	if token == "" {
		return nil, nil
	}

	clinicianID, sessionID, err := auth.ParseSessionToken(token, s.jwtSecret)
	if err != nil {
		return nil, nil
	}

	storedID, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, auth.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if storedID != clinicianID {
		return nil, nil
	}

	var clinician models.Clinician
	err = s.db.WithContext(ctx).First(&clinician, clinicianID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &clinician, nil
}

// EndSession revokes the session behind the token. Ending an already-dead
// session is not an error.
func (s *AuthService) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, sessionID, err := auth.ParseSessionToken(token, s.jwtSecret)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, auth.ErrSessionNotFound) {
		return err
	}
	return nil
}

// SessionTTL exposes the configured session lifetime for cookie max-age.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}
