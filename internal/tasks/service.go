// Package tasks applies the visibility and mutation policy on top of the
// task repository. The one non-obvious rule lives here: tasks created by an
// ADMIN are invisible to non-admin callers, on the list and on single fetch.
// A hidden task reads as not-found, never as forbidden, so its existence is
// not leaked.
package tasks

import (
	"errors"
	"time"

	"github.com/taskboard/taskboard-server/internal/auth"
	"github.com/taskboard/taskboard-server/internal/models"
	"github.com/taskboard/taskboard-server/internal/repositories"
)

// ListOptions are the caller-supplied query filters. Status is parsed
// case-insensitively; an unparseable value simply leaves the filter off.
type ListOptions struct {
	Status   string
	Assignee *int
}

// CreateInput carries the client-settable fields. The creator is always the
// authenticated caller and cannot be spoofed.
type CreateInput struct {
	Title       string
	Description string
	Priority    models.Priority
	AssigneeID  *int
}

// UpdateInput replaces title, description, priority and assignee together.
type UpdateInput struct {
	Title       string
	Description string
	Priority    models.Priority
	AssigneeID  *int
}

// View is the shaped task returned to clients, with creator and assignee
// names resolved.
type View struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Status       models.Status   `json:"status"`
	Priority     models.Priority `json:"priority"`
	CreatorID    int             `json:"creatorId"`
	CreatorName  string          `json:"creatorName"`
	AssigneeID   *int            `json:"assigneeId"`
	AssigneeName *string         `json:"assigneeName"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Service struct {
	tasks *repositories.TaskRepository

	// enforceMutationVisibility extends the read-path visibility check to
	// update/status/delete. Historically mutations only require
	// authentication, so this defaults off.
	enforceMutationVisibility bool
}

func NewService(tasks *repositories.TaskRepository, enforceMutationVisibility bool) *Service {
	return &Service{tasks: tasks, enforceMutationVisibility: enforceMutationVisibility}
}

// List returns the tasks visible to the caller, ordered by creation time
// ascending. Admin callers see everything; everyone else sees only tasks
// whose creator is not currently an ADMIN.
func (s *Service) List(ident *auth.Identity, opts ListOptions) ([]View, error) {
	filter := repositories.TaskFilter{
		ExcludeAdminCreators: ident.Role != models.RoleAdmin,
		AssigneeID:           opts.Assignee,
	}
	if status, ok := models.ParseStatus(opts.Status); ok {
		filter.Status = &status
	}

	list, err := s.tasks.List(filter)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(list))
	for i := range list {
		views = append(views, makeView(&list[i]))
	}
	return views, nil
}

// Get fetches a single task, reporting not-found when the task is absent or
// hidden from the caller.
func (s *Service) Get(ident *auth.Identity, id int) (*View, error) {
	task, err := s.tasks.Get(id)
	if err != nil {
		return nil, err
	}
	if hiddenFrom(ident, task) {
		return nil, models.ErrNotFound
	}
	v := makeView(task)
	return &v, nil
}

// Create makes the caller the task's creator. The assignee reference is not
// checked here; a dangling id is a store-level integrity failure, not a
// policy rejection.
func (s *Service) Create(ident *auth.Identity, input CreateInput) (*View, error) {
	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		CreatorID:   ident.UserID,
		AssigneeID:  input.AssigneeID,
	}
	if err := s.tasks.Create(task); err != nil {
		return nil, err
	}
	v := makeView(task)
	return &v, nil
}

// Update replaces the full field set. Note the asymmetry with the read path:
// unless mutation visibility enforcement is on, any authenticated caller may
// update any task, including ones hidden from their reads.
func (s *Service) Update(ident *auth.Identity, id int, input UpdateInput) error {
	if err := s.checkMutationVisibility(ident, id); err != nil {
		return err
	}
	_, err := s.tasks.Update(id, repositories.TaskUpdate{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		AssigneeID:  input.AssigneeID,
	})
	return err
}

// UpdateStatus sets the status. Any status is reachable from any other.
func (s *Service) UpdateStatus(ident *auth.Identity, id int, status models.Status) error {
	if err := s.checkMutationVisibility(ident, id); err != nil {
		return err
	}
	_, err := s.tasks.UpdateStatus(id, status)
	return err
}

func (s *Service) Delete(ident *auth.Identity, id int) error {
	if err := s.checkMutationVisibility(ident, id); err != nil {
		return err
	}
	return s.tasks.Delete(id)
}

func (s *Service) checkMutationVisibility(ident *auth.Identity, id int) error {
	if !s.enforceMutationVisibility {
		return nil
	}
	task, err := s.tasks.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		return err
	}
	if hiddenFrom(ident, task) {
		return models.ErrNotFound
	}
	return nil
}

// hiddenFrom evaluates the creator's current role, not a creation-time
// snapshot.
func hiddenFrom(ident *auth.Identity, task *models.Task) bool {
	return ident.Role != models.RoleAdmin && task.Creator.Role == models.RoleAdmin
}

func makeView(task *models.Task) View {
	v := View{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatorID:   task.CreatorID,
		CreatorName: task.Creator.Username,
		AssigneeID:  task.AssigneeID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Assignee != nil {
		name := task.Assignee.Username
		v.AssigneeName = &name
	}
	return v
}
