package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	"github.com/antly/antly-api/internal/domain/model"
	"github.com/antly/antly-api/internal/service"
)

// AccountServiceInterface defines the account operations the auth handlers need.
type AccountServiceInterface interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, in service.LoginInput) (*service.AuthResult, error)
}

// AuthHandlers provides HTTP handlers for registration, login and logout.
type AuthHandlers struct {
	Svc     AccountServiceInterface
	Cookies *SessionCookies
	Errors  *ErrorResponder
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type sessionResponse struct {
	User      *model.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Register handles self-registration and signs the new account in.
// POST /api/auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !DecodeJSON(w, r, &in) {
		return
	}

	res, err := h.Svc.Register(r.Context(), in)
	if err != nil {
		h.Errors.Respond(w, r, err)
		return
	}

	h.Cookies.Store(w, res.Token)
	WriteJSON(w, http.StatusCreated, sessionResponse{User: res.User, ExpiresAt: res.Claims.ExpiresAt})
}

// Login handles email/password sign-in.
// POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !DecodeJSON(w, r, &in) {
		return
	}

	res, err := h.Svc.Login(r.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			h.Errors.RespondAs(w, r, err, ErrCodeInvalidLogin)
			return
		}
		h.Errors.Respond(w, r, err)
		return
	}

	h.Cookies.Store(w, res.Token)
	WriteJSON(w, http.StatusOK, sessionResponse{User: res.User, ExpiresAt: res.Claims.ExpiresAt})
}

// Logout clears the session cookie. There is no server-side state to revoke.
// POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, _ *http.Request) {
	h.Cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

type meResponse struct {
	User      domainauth.Principal `json:"user"`
	IssuedAt  time.Time            `json:"issued_at"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// Me returns the caller behind the current session.
// GET /api/auth/me, behind RequireSession.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := CallerFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: ErrCodeAuthRequired,
			Message: "Please sign in to continue.",
		})
		return
	}
	h.logger().DebugContext(r.Context(), "session inspected", "user_id", claims.Subject)
	WriteJSON(w, http.StatusOK, meResponse{
		User:      claims.Principal(),
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	})
}
