package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/antly/antly-api/internal/errors"
)

// ErrorResponder maps service errors to JSON error responses.
// Client-safe messages come from apperrors.AppError; anything else becomes a generic 500.
// In production the raw error text is never written to the response.
type ErrorResponder struct {
	Production bool
	Logger     *slog.Logger
}

func (e *ErrorResponder) logger() *slog.Logger {
	if e != nil && e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

type errorMapping struct {
	status  int
	errCode string
}

//nolint:gochecknoglobals // static read-only lookup
var errorMappings = map[apperrors.ErrorCode]errorMapping{
	apperrors.ErrCodeValidation:      {http.StatusBadRequest, ErrCodeValidation},
	apperrors.ErrCodeUnauthenticated: {http.StatusUnauthorized, ErrCodeAuthRequired},
	apperrors.ErrCodeForbidden:       {http.StatusForbidden, ErrCodeForbidden},
	apperrors.ErrCodeNotFound:        {http.StatusNotFound, ErrCodeNotFound},
	apperrors.ErrCodeConflict:        {http.StatusConflict, ErrCodeConflict},
	apperrors.ErrCodeForeignKey:      {http.StatusConflict, ErrCodeConflict},
	apperrors.ErrCodeTimeout:         {http.StatusGatewayTimeout, ErrCodeTimeout},
	apperrors.ErrCodeCanceled:        {http.StatusServiceUnavailable, ErrCodeTimeout},
}

// Respond writes the response for err.
func (e *ErrorResponder) Respond(w http.ResponseWriter, r *http.Request, err error) {
	e.RespondAs(w, r, err, "")
}

// RespondAs is Respond with an override for the machine-readable code of 4xx responses.
func (e *ErrorResponder) RespondAs(w http.ResponseWriter, r *http.Request, err error, errCode string) {
	var appErr *apperrors.AppError
	mapping, known := errorMapping{}, false
	if errors.As(err, &appErr) {
		mapping, known = errorMappings[appErr.Code]
	}

	if !known {
		e.logger().ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		p := ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: ErrCodeInternal,
			Message: "Something went wrong. Please try again later.",
		}
		if !e.isProduction() {
			p.Detail = err.Error()
		}
		WriteError(w, p)
		return
	}

	if errCode == "" {
		errCode = mapping.errCode
	}
	if mapping.status >= http.StatusInternalServerError {
		e.logger().WarnContext(r.Context(), "request aborted", "path", r.URL.Path, "error", err)
	}
	p := ErrorParams{
		Code:    mapping.status,
		ErrCode: errCode,
		Message: appErr.Message,
		Field:   appErr.Field,
	}
	if !e.isProduction() && appErr.Cause != nil {
		p.Detail = appErr.Cause.Error()
	}
	WriteError(w, p)
}

func (e *ErrorResponder) isProduction() bool {
	return e != nil && e.Production
}
