package repositories

import (
	"errors"

	"github.com/taskboard/taskboard-server/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, models.ErrNotFound
	default:
		return nil, err
	}
}

func (r *UserRepository) FindByID(id int) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, models.ErrNotFound
	default:
		return nil, err
	}
}

// Exists reports whether the username or the email is already taken.
func (r *UserRepository) Exists(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert assigns the id and returns models.ErrConflict if the username or
// email is already taken.
func (r *UserRepository) Insert(user *models.User) error {
	taken, err := r.Exists(user.Username, user.Email)
	if err != nil {
		return err
	}
	if taken {
		return models.ErrConflict
	}
	return r.db.Create(user).Error
}

func (r *UserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) CountByRole(role models.Role) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

// Delete removes a user. A user still referenced as a task creator cannot be
// removed (models.ErrIntegrity); tasks that merely reference the user as
// assignee have that reference cleared. No HTTP endpoint exposes this; it
// exists to keep the reference rules in one place.
func (r *UserRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var created int64
		if err := tx.Model(&models.Task{}).Where("creator_id = ?", id).Count(&created).Error; err != nil {
			return err
		}
		if created > 0 {
			return models.ErrIntegrity
		}
		if err := tx.Model(&models.Task{}).Where("assignee_id = ?", id).
			Update("assignee_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}
