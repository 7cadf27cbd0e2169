package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	obserrors "github.com/antly/antly-api/internal/observability/errors"
	"github.com/antly/antly-api/internal/observability/metrics"
	"github.com/antly/antly-api/internal/observability/statsd"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					WriteError(w, ErrorParams{
						Code:    http.StatusInternalServerError,
						ErrCode: ErrCodeInternal,
						Message: "Something went wrong. Please try again later.",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionResolver turns a raw session token into the caller's claims.
// Implementations must be total: any failure is (nil, false).
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domainauth.Claims, bool)
}

// GateDeps groups what the auth middlewares need to identify a caller.
type GateDeps struct {
	Cookies  *SessionCookies
	Sessions SessionResolver
	Logger   *slog.Logger
	Metrics  statsd.Sink // Optional
}

func (g GateDeps) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// ResolveCaller reads the session cookie from r and verifies it.
// It never fails: no cookie, a malformed token and an expired token all report false.
func ResolveCaller(r *http.Request, cookies *SessionCookies, sessions SessionResolver) (*domainauth.Claims, bool) {
	token, ok := cookies.Retrieve(r)
	if !ok {
		return nil, false
	}
	return sessions.Resolve(r.Context(), token)
}

// RequireRole returns a middleware that lets a request through only when its caller
// holds one of roles. It answers 401 when there is no valid session and 403 when the
// role is wrong, before the wrapped handler runs.
//
// RequireRole checks roles only. A handler that mutates a specific resource must still
// scope the statement by CallerFromContext(ctx).Subject; the gate does not know who owns what.
func RequireRole(gate GateDeps, roles ...domainauth.Role) func(http.Handler) http.Handler {
	allowed := domainauth.Roles(roles...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, _ := ResolveCaller(r, gate.Cookies, gate.Sessions)
			if err := allowed.Authorize(claims); err != nil {
				rejectCaller(w, r, gate, rejection{err: err, claims: claims, allowed: allowed})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), claims)))
		})
	}
}

// RequireSession is RequireRole for any role.
func RequireSession(gate GateDeps) func(http.Handler) http.Handler {
	return RequireRole(gate, domainauth.RoleClient, domainauth.RoleProvider, domainauth.RoleAdmin)
}

// OptionalAuth returns a middleware that optionally adds authentication information.
// If the caller is authenticated the claims are added to the request context;
// otherwise the request continues anonymously.
func OptionalAuth(gate GateDeps) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := ResolveCaller(r, gate.Cookies, gate.Sessions); ok {
				r = r.WithContext(WithCaller(r.Context(), claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

type rejection struct {
	err     error
	claims  *domainauth.Claims
	allowed domainauth.RoleSet
}

func rejectCaller(w http.ResponseWriter, r *http.Request, gate GateDeps, rej rejection) {
	reason := obserrors.Classify(rej.err)
	if gate.Metrics != nil {
		var role domainauth.Role
		if rej.claims != nil {
			role = rej.claims.Role
		}
		metrics.EmitGateRejection(gate.Metrics, reason, role)
	}

	if errors.Is(rej.err, domainauth.ErrForbidden) {
		gate.logger().WarnContext(r.Context(), "access denied",
			"method", r.Method,
			"path", r.URL.Path,
			"required_roles", rej.allowed.List(),
			"caller_role", rej.claims.Role)
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: ErrCodeForbidden,
			Message: "You do not have permission to perform this action.",
		})
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: ErrCodeAuthRequired,
		Message: "Please sign in to continue.",
	})
}
