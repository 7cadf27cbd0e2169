package httpx

import (
	"time"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
)

const (
	// SessionCookieName is the cookie carrying the session credential.
	SessionCookieName = "antly_auth"

	// SessionCookieMaxAge matches the credential lifetime so the browser drops the cookie when the token expires.
	SessionCookieMaxAge = int(domainauth.SessionLifetime / time.Second)
)

// Machine-readable error codes returned in the "error" field of JSON error bodies.
const (
	ErrCodeAuthRequired = "authentication_required"
	ErrCodeForbidden    = "insufficient_permissions"
	ErrCodeInvalidLogin = "invalid_credentials"
	ErrCodeInvalidJSON  = "invalid_json"
	ErrCodeInvalidPath  = "invalid_path"
	ErrCodeValidation   = "validation_failed"
	ErrCodeConflict     = "conflict"
	ErrCodeNotFound     = "not_found"
	ErrCodeTimeout      = "timeout"
	ErrCodeInternal     = "internal_error"
)

const (
	defaultListLimit    = 20
	maxListLimit        = 100
	maxRequestBodyBytes = 1 << 20
)
