package services

import (
	"testing"
	"time"

	"clinrec/internal/auth"
	"clinrec/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db, auth.NewMemorySessionStore(), "test-secret", time.Hour)
}
