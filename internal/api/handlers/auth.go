package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskboard/taskboard-server/internal/auth"
	"github.com/taskboard/taskboard-server/internal/models"
	"github.com/taskboard/taskboard-server/internal/utils"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type registerInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *registerInput) validate() utils.FieldErrors {
	errs := utils.FieldErrors{}
	switch {
	case in.Username == "":
		errs.Add("username", "username is required")
	case len(in.Username) < 3 || len(in.Username) > 50:
		errs.Add("username", "username must be between 3 and 50 characters")
	}
	switch {
	case in.Email == "":
		errs.Add("email", "email is required")
	case len(in.Email) > 100:
		errs.Add("email", "email must be at most 100 characters")
	case !utils.ValidEmail(in.Email):
		errs.Add("email", "email is not a valid address")
	}
	switch {
	case in.Password == "":
		errs.Add("password", "password is required")
	case len(in.Password) < 6:
		errs.Add("password", "password must be at least 6 characters")
	}
	return errs
}

// Register godoc
// @Summary Register a new account
// @Description Creates a USER-role account and returns a signed token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body registerInput true "Registration details"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 409 {object} utils.Payload
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input registerInput

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	if errs := input.validate(); len(errs) > 0 {
		utils.ValidationResponse(w, errs)
		return
	}

	result, err := h.svc.Register(input.Username, input.Email, input.Password)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrConflict):
		// Generic message, no per-field detail: which field collided is
		// deliberately not revealed.
		utils.JSONResponse(w, http.StatusConflict, utils.Payload{
			Success: false,
			Message: "User already exists",
		})
		return
	default:
		serverError(w)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "User registered successfully",
		Data:    result,
	})
}

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Authenticate with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginInput true "Credentials"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginInput

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	if input.Username == "" || input.Password == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	result, err := h.svc.Login(input.Username, input.Password)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrInvalidCredentials):
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Invalid credentials",
		})
		return
	default:
		serverError(w)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Login successful",
		Data:    result,
	})
}

func serverError(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
		Success: false,
		Message: "Internal server error",
	})
}
