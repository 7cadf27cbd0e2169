package httpx

import (
	"net/http"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/domain/model"
	"github.com/antly/antly-api/internal/service"
)

// AdminHandlers serves the account listing for admins.
type AdminHandlers struct {
	Svc    *service.AdminService
	Errors *ErrorResponder
}

// ListUsers returns accounts, optionally filtered by ?role=.
// GET /api/admin/users.
func (h *AdminHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	opts := model.UsersListOptions{Limit: limit, Offset: offset}
	if v := r.URL.Query().Get("role"); v != "" {
		role, err := domainauth.ParseRole(v)
		if err != nil {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: ErrCodeValidation,
				Message: "Unknown role filter.",
				Field:   "role",
			})
			return
		}
		opts.Role = &role
	}
	users, err := h.Svc.ListUsers(r.Context(), opts)
	if err != nil {
		h.Errors.Respond(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": users, "limit": limit, "offset": offset})
}
