package auth

import (
	"fmt"

	"github.com/taskboard/taskboard-server/internal/config"
	"github.com/taskboard/taskboard-server/internal/models"
	"github.com/taskboard/taskboard-server/internal/repositories"
)

// EnsureAdmin creates the configured admin account on first startup if no
// ADMIN-role user exists yet. Callers log a returned error and continue; a
// failed seed must not take the server down.
func EnsureAdmin(users *repositories.UserRepository, cfg config.AdminConfig) error {
	count, err := users.CountByRole(models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("counting admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &models.User{
		Username: cfg.Username,
		Email:    cfg.Email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := users.Insert(admin); err != nil {
		return fmt.Errorf("inserting admin user: %w", err)
	}
	return nil
}
