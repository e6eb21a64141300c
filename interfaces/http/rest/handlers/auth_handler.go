package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"contactkeeper/application/services"
	"contactkeeper/domain/user"
	"contactkeeper/pkg/auth"
	"contactkeeper/pkg/common"
	"contactkeeper/pkg/utils"
)

// AuthHandler handles the /api/auth routes: login and resolving the
// current authenticated user
type AuthHandler struct {
	users  *services.UserService
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *services.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		logger: logger,
	}
}

// LoginRequest is the body of POST /api/auth
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		common.RespondValidationErrors(w, fields)
		return
	}

	token, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Current handles GET /api/auth, returning the logged-in user
func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondMsg(w, http.StatusUnauthorized, "No token, authorisation denied")
		return
	}

	u, err := h.users.Get(r.Context(), user.ID(userCtx.UserID))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, u)
}
