package httpx

import (
	"net/http"

	"github.com/antly/antly-api/internal/domain/model"
	"github.com/antly/antly-api/internal/service"
)

// ReviewHandlers provides HTTP handlers for client- and provider-authored reviews.
type ReviewHandlers struct {
	Svc    *service.ReviewService
	Errors *ErrorResponder
}

// CreateByClient records the caller's review of an approved ad.
// POST /api/client/reviews.
func (h *ReviewHandlers) CreateByClient(w http.ResponseWriter, r *http.Request) {
	authorID, ok := mustCaller(w, r)
	if !ok {
		return
	}
	var req model.ClientReviewRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	rv, err := h.Svc.CreateByClient(r.Context(), authorID, req)
	if err != nil {
		h.Errors.Respond(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, rv)
}

// CreateByProvider records the caller's review of a client.
// POST /api/provider/reviews.
func (h *ReviewHandlers) CreateByProvider(w http.ResponseWriter, r *http.Request) {
	authorID, ok := mustCaller(w, r)
	if !ok {
		return
	}
	var req model.ProviderReviewRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	rv, err := h.Svc.CreateByProvider(r.Context(), authorID, req)
	if err != nil {
		h.Errors.Respond(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, rv)
}

// Delete removes one of the caller's reviews.
// DELETE /api/client/reviews/{id} and /api/provider/reviews/{id}.
func (h *ReviewHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	authorID, ok := mustCaller(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), authorID, id); err != nil {
		h.Errors.Respond(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListForUser returns reviews about a user.
// GET /api/users/{id}/reviews.
func (h *ReviewHandlers) ListForUser(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathID(w, r)
	if !ok {
		return
	}
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	reviews, err := h.Svc.ListForUser(r.Context(), id, limit, offset)
	if err != nil {
		h.Errors.Respond(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"reviews": reviews, "limit": limit, "offset": offset})
}
