package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/taskboard/taskboard-server/internal/api/middleware"
	"github.com/taskboard/taskboard-server/internal/models"
	"github.com/taskboard/taskboard-server/internal/tasks"
	"github.com/taskboard/taskboard-server/internal/utils"
)

type TaskHandler struct {
	svc *tasks.Service
}

func NewTaskHandler(svc *tasks.Service) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// List godoc
// @Summary List tasks visible to the caller
// @Description Ordered by creation time ascending; admin-created tasks are hidden from non-admin callers
// @Tags Tasks
// @Produce json
// @Param status query string false "Status filter (TODO, IN_PROGRESS, DONE); unknown values are ignored"
// @Param assignee query int false "Assignee user id"
// @Success 200 {object} utils.Payload
// @Security BearerAuth
// @Router /api/tasks [get]
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFrom(r.Context())

	opts := tasks.ListOptions{Status: r.URL.Query().Get("status")}
	if raw := r.URL.Query().Get("assignee"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			utils.ValidationResponse(w, utils.FieldErrors{"assignee": "assignee must be an integer"})
			return
		}
		opts.Assignee = &id
	}

	views, err := h.svc.List(ident, opts)
	if err != nil {
		serverError(w)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Tasks retrieved",
		Data:    views,
	})
}

// Get godoc
// @Summary Fetch a single task
// @Tags Tasks
// @Produce json
// @Param id path int true "Task id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFrom(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Get(ident, id)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		notFound(w)
		return
	default:
		serverError(w)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Task retrieved",
		Data:    view,
	})
}

type taskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	AssigneeID  *int   `json:"assigneeId"`
}

// validate returns field errors plus the parsed priority when valid.
func (in *taskInput) validate() (models.Priority, utils.FieldErrors) {
	errs := utils.FieldErrors{}
	switch {
	case in.Title == "":
		errs.Add("title", "title is required")
	case len(in.Title) > 200:
		errs.Add("title", "title must be at most 200 characters")
	}
	if len(in.Description) > 1000 {
		errs.Add("description", "description must be at most 1000 characters")
	}
	priority := models.PriorityMedium
	if in.Priority != "" {
		parsed, ok := models.ParsePriority(in.Priority)
		if !ok {
			errs.Add("priority", "priority must be one of Low, Medium, High, Critical")
		} else {
			priority = parsed
		}
	}
	return priority, errs
}

// Create godoc
// @Summary Create a task
// @Description The authenticated caller becomes the creator; status starts at TODO
// @Tags Tasks
// @Accept json
// @Produce json
// @Param body body taskInput true "Task fields"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Security BearerAuth
// @Router /api/tasks [post]
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFrom(r.Context())

	var input taskInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	priority, errs := input.validate()
	if len(errs) > 0 {
		utils.ValidationResponse(w, errs)
		return
	}

	view, err := h.svc.Create(ident, tasks.CreateInput{
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		AssigneeID:  input.AssigneeID,
	})
	if err != nil {
		serverError(w)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Task created",
		Data:    view,
	})
}

// Update godoc
// @Summary Replace a task's title, description, priority and assignee
// @Tags Tasks
// @Accept json
// @Param id path int true "Task id"
// @Param body body taskInput true "Task fields"
// @Success 204
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFrom(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var input taskInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	priority, errs := input.validate()
	if len(errs) > 0 {
		utils.ValidationResponse(w, errs)
		return
	}

	err := h.svc.Update(ident, id, tasks.UpdateInput{
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		AssigneeID:  input.AssigneeID,
	})
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		notFound(w)
		return
	default:
		serverError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type statusInput struct {
	Status string `json:"status"`
}

// UpdateStatus godoc
// @Summary Set a task's status
// @Description Any status may be set from any other; no forward-only ordering
// @Tags Tasks
// @Accept json
// @Param id path int true "Task id"
// @Param body body statusInput true "New status"
// @Success 204
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /api/tasks/{id}/status [put]
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFrom(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var input statusInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	status, parsed := models.ParseStatus(input.Status)
	if !parsed {
		utils.ValidationResponse(w, utils.FieldErrors{"status": "status must be one of TODO, IN_PROGRESS, DONE"})
		return
	}

	err := h.svc.UpdateStatus(ident, id, status)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		notFound(w)
		return
	default:
		serverError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a task
// @Tags Tasks
// @Param id path int true "Task id"
// @Success 204
// @Failure 404 {object} utils.Payload
// @Security BearerAuth
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFrom(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.svc.Delete(ident, id)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		notFound(w)
		return
	default:
		serverError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		notFound(w)
		return 0, false
	}
	return id, true
}

func notFound(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
		Success: false,
		Message: "Not found",
	})
}
