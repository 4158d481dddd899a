package repositories

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-server/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func insertUser(t *testing.T, r *UserRepository, username string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant-hash",
		Role:     role,
	}
	require.NoError(t, r.Insert(user))
	return user
}
