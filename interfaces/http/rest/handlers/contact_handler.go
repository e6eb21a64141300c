package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"contactkeeper/application/services"
	"contactkeeper/domain/contact"
	"contactkeeper/domain/user"
	"contactkeeper/pkg/auth"
	"contactkeeper/pkg/common"
	"contactkeeper/pkg/utils"
)

const maxBodyBytes = 1 << 20

// ContactHandler handles the /api/contacts routes. All four operations
// require an authenticated identity; the contact service enforces that
// callers only ever see their own records.
type ContactHandler struct {
	contacts *services.ContactService
	logger   *zap.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contacts *services.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		logger:   logger,
	}
}

// CreateContactRequest is the body of POST /api/contacts
type CreateContactRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
	Type  string `json:"type,omitempty" validate:"omitempty,oneof=personal professional"`
}

// UpdateContactRequest is the body of PUT /api/contacts/{contactID}.
// Every field is optional; absent fields are left unchanged.
type UpdateContactRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Type  *string `json:"type,omitempty" validate:"omitempty,oneof=personal professional"`
}

// List handles GET /api/contacts
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	contacts, err := h.contacts.List(r.Context(), caller)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, contacts)
}

// Create handles POST /api/contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req CreateContactRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		common.RespondValidationErrors(w, fields)
		return
	}

	created, err := h.contacts.Create(r.Context(), caller, services.CreateInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Type:  contact.Type(req.Type),
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, created)
}

// Update handles PUT /api/contacts/{contactID}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	contactID := chi.URLParam(r, "contactID")
	if contactID == "" {
		common.RespondMsg(w, http.StatusBadRequest, "Contact ID is required")
		return
	}

	var req UpdateContactRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		common.RespondValidationErrors(w, fields)
		return
	}

	patch := contact.Update{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if req.Type != nil {
		t := contact.Type(*req.Type)
		patch.Type = &t
	}

	updated, err := h.contacts.Update(r.Context(), caller, contact.ID(contactID), patch)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/contacts/{contactID}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	contactID := chi.URLParam(r, "contactID")
	if contactID == "" {
		common.RespondMsg(w, http.StatusBadRequest, "Contact ID is required")
		return
	}

	if err := h.contacts.Delete(r.Context(), caller, contact.ID(contactID)); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondMsg(w, http.StatusOK, "Contact deleted")
}

// caller resolves the authenticated identity, responding 401 when the
// auth middleware did not run
func (h *ContactHandler) caller(w http.ResponseWriter, r *http.Request) (user.ID, bool) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondMsg(w, http.StatusUnauthorized, "No token, authorisation denied")
		return "", false
	}
	return user.ID(userCtx.UserID), true
}
