package data

import (
	apperrors "github.com/antly/antly-api/internal/errors"
)

// Shared sentinel errors for data-layer repositories.
// They are AppErrors so callers can use either errors.Is or apperrors.IsNotFound.
var (
	ErrUserNotFound   = apperrors.NotFound("user not found")
	ErrAdNotFound     = apperrors.NotFound("ad not found")
	ErrReviewNotFound = apperrors.NotFound("review not found")
)
