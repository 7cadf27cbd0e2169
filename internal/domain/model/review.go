//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
)

const maxReviewCommentLen = 2000

// Review is feedback left by one account about another.
// Clients review providers (through one of the provider's ads); providers review clients.
type Review struct {
	ID           string          `json:"id"             db:"id"`
	AuthorID     string          `json:"author_id"      db:"author_id"`
	AuthorRole   domainauth.Role `json:"author_role"    db:"author_role"`
	TargetUserID string          `json:"target_user_id" db:"target_user_id"`
	AdID         *string         `json:"ad_id,omitempty" db:"ad_id"`
	Rating       int             `json:"rating"         db:"rating"`
	Comment      string          `json:"comment"        db:"comment"`
	CreatedAt    time.Time       `json:"created_at"     db:"created_at"`
}

// ClientReviewRequest is submitted by a client about a provider's ad.
type ClientReviewRequest struct {
	AdID    string `json:"ad_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Validate validates ClientReviewRequest.
func (r *ClientReviewRequest) Validate() error {
	if strings.TrimSpace(r.AdID) == "" {
		return errors.New("ad_id is required")
	}
	return validateReviewBody(r.Rating, r.Comment)
}

// ProviderReviewRequest is submitted by a provider about a client.
type ProviderReviewRequest struct {
	ClientID string `json:"client_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// Validate validates ProviderReviewRequest.
func (r *ProviderReviewRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return errors.New("client_id is required")
	}
	return validateReviewBody(r.Rating, r.Comment)
}

func validateReviewBody(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if utf8.RuneCountInString(comment) > maxReviewCommentLen {
		return errors.New("comment cannot exceed 2000 characters")
	}
	return nil
}

// CreateReviewRequest is the repository-level insert, built by the review service.
type CreateReviewRequest struct {
	AuthorID     string
	AuthorRole   domainauth.Role
	TargetUserID string
	AdID         *string
	Rating       int
	Comment      string
}
