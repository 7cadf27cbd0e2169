// Package errors turns arbitrary errors into low-cardinality metric tags.
package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	apperrors "github.com/antly/antly-api/internal/errors"
)

// Classify names the kind of err for tagging.
// Application errors report their code; the auth sentinels report unauthenticated or
// forbidden; anything else falls back to the innermost concrete type, e.g. "net_operror".
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}
	switch {
	case goerrors.Is(err, domainauth.ErrUnauthenticated):
		return string(apperrors.ErrCodeUnauthenticated)
	case goerrors.Is(err, domainauth.ErrForbidden):
		return string(apperrors.ErrCodeForbidden)
	}

	for {
		inner := goerrors.Unwrap(err)
		if inner == nil {
			break
		}
		err = inner
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := strings.ReplaceAll(strings.ToLower(t.String()), ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
