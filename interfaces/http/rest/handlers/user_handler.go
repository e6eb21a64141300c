package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"contactkeeper/application/services"
	"contactkeeper/pkg/common"
	"contactkeeper/pkg/utils"
)

// UserHandler handles POST /api/users (registration)
type UserHandler struct {
	users  *services.UserService
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// RegisterRequest is the body of POST /api/users
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// TokenResponse carries a freshly issued bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

// Register handles POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		common.RespondValidationErrors(w, fields)
		return
	}

	token, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, TokenResponse{Token: token})
}
