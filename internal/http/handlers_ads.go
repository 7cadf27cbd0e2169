package httpx

import (
	"net/http"

	"github.com/antly/antly-api/internal/domain/model"
	"github.com/antly/antly-api/internal/service"
)

// AdHandlers provides HTTP handlers for the public listing, provider self-service and moderation.
type AdHandlers struct {
	Svc    *service.AdService
	Errors *ErrorResponder
}

// ListPublic returns approved ads.
// GET /api/ads.
func (h *AdHandlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	ads, err := h.Svc.ListPublic(r.Context(), limit, offset)
	if err != nil {
		h.Errors.Respond(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ads": ads, "limit": limit, "offset": offset})
}

// ListOwn returns the caller's ads in every status.
// GET /api/provider/ads.
func (h *AdHandlers) ListOwn(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := mustCaller(w, r)
	if !ok {
		return
	}
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	ads, err := h.Svc.ListOwn(r.Context(), ownerID, limit, offset)
	if err != nil {
		h.Errors.Respond(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ads": ads, "limit": limit, "offset": offset})
}

// Create stores a new pending ad owned by the caller.
// POST /api/provider/ads.
func (h *AdHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := mustCaller(w, r)
	if !ok {
		return
	}
	var req model.CreateAdRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	ad, err := h.Svc.Create(r.Context(), ownerID, &req)
	if err != nil {
		h.Errors.Respond(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, ad)
}

// Update changes one of the caller's ads. Someone else's ad answers 404.
// PUT /api/provider/ads/{id}.
func (h *AdHandlers) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := mustCaller(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r)
	if !ok {
		return
	}
	var req model.UpdateAdRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	ad, err := h.Svc.Update(r.Context(), ownerID, id, req)
	if err != nil {
		h.Errors.Respond(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ad)
}

// Delete removes one of the caller's ads. Someone else's ad answers 404.
// DELETE /api/provider/ads/{id}.
func (h *AdHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := mustCaller(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), ownerID, id); err != nil {
		h.Errors.Respond(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAll returns ads across owners, optionally filtered by ?status= and ?owner_id=.
// GET /api/admin/ads.
func (h *AdHandlers) ListAll(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	opts := model.AdsListOptions{Limit: limit, Offset: offset}
	if v := r.URL.Query().Get("status"); v != "" {
		status, ok := model.ParseAdStatus(v)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: ErrCodeValidation,
				Message: "Unknown status filter.",
				Field:   "status",
			})
			return
		}
		opts.Status = &status
	}
	if v := r.URL.Query().Get("owner_id"); v != "" {
		opts.OwnerID = &v
	}
	ads, err := h.Svc.ListAll(r.Context(), opts)
	if err != nil {
		h.Errors.Respond(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ads": ads, "limit": limit, "offset": offset})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus applies a moderation transition.
// PATCH /api/admin/ads/{id}/status.
func (h *AdHandlers) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathID(w, r)
	if !ok {
		return
	}
	var req setStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	ad, err := h.Svc.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		h.Errors.Respond(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ad)
}
