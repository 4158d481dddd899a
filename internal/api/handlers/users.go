package handlers

import (
	"net/http"

	"github.com/taskboard/taskboard-server/internal/models"
	"github.com/taskboard/taskboard-server/internal/repositories"
	"github.com/taskboard/taskboard-server/internal/utils"
)

type UserHandler struct {
	users *repositories.UserRepository
}

func NewUserHandler(users *repositories.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// List godoc
// @Summary List all users
// @Description Public user records for assignee pickers; password hashes are never included
// @Tags Users
// @Produce json
// @Success 200 {object} utils.Payload
// @Security BearerAuth
// @Router /api/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListAll()
	if err != nil {
		serverError(w)
		return
	}

	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Users retrieved",
		Data:    views,
	})
}
