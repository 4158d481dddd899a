package repositories

import (
	"errors"
	"time"

	"github.com/taskboard/taskboard-server/internal/models"
	"gorm.io/gorm"
)

// TaskFilter narrows List results. All criteria are optional; the creator
// exclusion is evaluated against the creators' current role, not a snapshot.
type TaskFilter struct {
	Status               *models.Status
	AssigneeID           *int
	ExcludeAdminCreators bool
}

// TaskUpdate is the full-field update shape. A nil AssigneeID clears the
// assignment.
type TaskUpdate struct {
	Title       string
	Description string
	Priority    models.Priority
	AssigneeID  *int
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create assigns the id and both timestamps, defaulting status to TODO and
// priority to Medium when unset.
func (r *TaskRepository) Create(task *models.Task) error {
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if err := r.db.Create(task).Error; err != nil {
		return err
	}
	// Reload creator/assignee so callers can shape view objects.
	return r.db.Preload("Creator").Preload("Assignee").First(task, task.ID).Error
}

func (r *TaskRepository) Get(id int) (*models.Task, error) {
	var task models.Task
	err := r.db.Preload("Creator").Preload("Assignee").First(&task, id).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, models.ErrNotFound
	default:
		return nil, err
	}
}

// List returns matching tasks ordered by creation time ascending.
func (r *TaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	q := r.db.Preload("Creator").Preload("Assignee")

	if filter.ExcludeAdminCreators {
		admins := r.db.Model(&models.User{}).Select("id").Where("role = ?", models.RoleAdmin)
		q = q.Where("creator_id NOT IN (?)", admins)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *filter.AssigneeID)
	}

	var list []models.Task
	if err := q.Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Update replaces title, description, priority and assignee together and
// refreshes updatedAt.
func (r *TaskRepository) Update(id int, fields TaskUpdate) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	task.Title = fields.Title
	task.Description = fields.Description
	task.Priority = fields.Priority
	task.AssigneeID = fields.AssigneeID
	task.UpdatedAt = time.Now().UTC()

	if err := r.db.Save(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateStatus replaces only the status and refreshes updatedAt.
func (r *TaskRepository) UpdateStatus(id int, status models.Status) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	task.Status = status
	task.UpdatedAt = time.Now().UTC()

	if err := r.db.Save(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Delete(id int) error {
	res := r.db.Delete(&models.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
