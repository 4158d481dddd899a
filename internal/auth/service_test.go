package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard-server/internal/config"
	"github.com/taskboard/taskboard-server/internal/models"
	"github.com/taskboard/taskboard-server/internal/repositories"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *repositories.UserRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))

	users := repositories.NewUserRepository(db)
	return NewService(users, NewTokenIssuer(testJWTConfig())), users
}

func TestRegisterCreatesUserAndToken(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Register("bob", "bob@example.com", "password1")
	require.NoError(t, err)

	assert.Equal(t, "bob", result.User.Username)
	assert.Equal(t, models.RoleUser, result.User.Role)

	ident, err := NewTokenIssuer(testJWTConfig()).Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, ident.UserID)
	assert.Equal(t, models.RoleUser, ident.Role)
}

func TestRegisterConflictCreatesNoRow(t *testing.T) {
	svc, users := newTestService(t)

	_, err := svc.Register("bob", "bob@example.com", "password1")
	require.NoError(t, err)

	cases := []struct {
		name     string
		username string
		email    string
	}{
		{"duplicate username", "bob", "other@example.com"},
		{"duplicate email", "other", "bob@example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(tc.username, tc.email, "password1")
			assert.ErrorIs(t, err, models.ErrConflict)

			all, err := users.ListAll()
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register("alice", "alice@example.com", "rightpass")
	require.NoError(t, err)

	_, wrongPass := svc.Login("alice", "wrongpass")
	_, noUser := svc.Login("doesNotExist", "x")

	assert.ErrorIs(t, wrongPass, models.ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, models.ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), noUser.Error())
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register("alice", "alice@example.com", "rightpass")
	require.NoError(t, err)

	result, err := svc.Login("alice", "rightpass")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.User.Username)
	assert.NotEmpty(t, result.Token)
}

func TestEnsureAdminSeedsOnce(t *testing.T) {
	_, users := newTestService(t)

	cfg := config.AdminConfig{Username: "admin", Email: "admin@example.com", Password: "admin123"}

	require.NoError(t, EnsureAdmin(users, cfg))
	require.NoError(t, EnsureAdmin(users, cfg), "second run is a no-op")

	count, err := users.CountByRole(models.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	admin, err := users.FindByUsername("admin")
	require.NoError(t, err)
	assert.True(t, CheckPassword("admin123", admin.Password), "seeded password must be hashed, not stored raw")
	assert.NotEqual(t, "admin123", admin.Password)
}
