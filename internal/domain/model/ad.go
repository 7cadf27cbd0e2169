//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxAdTitleLen       = 140
	maxAdDescriptionLen = 5000
)

// AdStatus is the moderation state of an ad.
type AdStatus string

const (
	AdStatusPending  AdStatus = "pending"
	AdStatusApproved AdStatus = "approved"
	AdStatusRejected AdStatus = "rejected"
	AdStatusArchived AdStatus = "archived"
)

// Valid reports whether the ad status is supported.
func (s AdStatus) Valid() bool {
	switch s {
	case AdStatusPending, AdStatusApproved, AdStatusRejected, AdStatusArchived:
		return true
	default:
		return false
	}
}

// ParseAdStatus normalizes a status string and reports whether it is supported.
func ParseAdStatus(value string) (AdStatus, bool) {
	s := AdStatus(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

var adTransitions = map[AdStatus][]AdStatus{
	AdStatusPending:  {AdStatusApproved, AdStatusRejected},
	AdStatusApproved: {AdStatusArchived, AdStatusRejected},
	AdStatusRejected: {AdStatusApproved},
}

// CanTransition reports whether moderation may move an ad from s to next.
func (s AdStatus) CanTransition(next AdStatus) bool {
	for _, allowed := range adTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Ad is a provider's classified listing.
type Ad struct {
	ID          string    `json:"id"          db:"id"`
	OwnerID     string    `json:"owner_id"    db:"owner_id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	PriceCents  int64     `json:"price_cents" db:"price_cents"`
	Status      AdStatus  `json:"status"      db:"status"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updated_at"`
}

// CreateAdRequest represents parameters to create an Ad.
type CreateAdRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

// Validate validates CreateAdRequest.
func (r *CreateAdRequest) Validate() error {
	if err := validateAdTitle(r.Title); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.Description) > maxAdDescriptionLen {
		return errors.New("description cannot exceed 5000 characters")
	}
	if r.PriceCents < 0 {
		return errors.New("price_cents cannot be negative")
	}
	r.Title = strings.TrimSpace(r.Title)
	return nil
}

// UpdateAdRequest represents parameters to update an Ad owned by the caller.
type UpdateAdRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateAdRequest.
func (r *UpdateAdRequest) HasUpdates() bool {
	return r.Title != nil || r.Description != nil || r.PriceCents != nil
}

// Validate validates UpdateAdRequest, ensuring at least one field is set and values are sane.
func (r *UpdateAdRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil {
		if err := validateAdTitle(*r.Title); err != nil {
			return err
		}
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > maxAdDescriptionLen {
		return errors.New("description cannot exceed 5000 characters")
	}
	if r.PriceCents != nil && *r.PriceCents < 0 {
		return errors.New("price_cents cannot be negative")
	}
	return nil
}

func validateAdTitle(title string) error {
	t := strings.TrimSpace(title)
	if t == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(t) > maxAdTitleLen {
		return errors.New("title cannot exceed 140 characters")
	}
	return nil
}

// AdsListOptions controls paging and filtering for listing ads.
type AdsListOptions struct {
	Limit   int
	Offset  int
	OwnerID *string   // exact match
	Status  *AdStatus // exact match
}
