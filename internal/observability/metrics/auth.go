// Package metrics names the metrics the API emits and fills in their tags.
package metrics

import (
	"time"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	obserrors "github.com/antly/antly-api/internal/observability/errors"
	"github.com/antly/antly-api/internal/observability/statsd"
)

// Result tag values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Auth actions.
const (
	ActionLogin    = "login"
	ActionRegister = "register"
)

// AuthMetric describes one login or registration attempt.
type AuthMetric struct {
	Action   string
	Role     domainauth.Role // empty when the attempt failed before an account was known
	Duration time.Duration
	Err      error
}

// EmitAuth counts an attempt as auth.<action> and records its latency.
func EmitAuth(sink statsd.Sink, in AuthMetric) {
	if sink == nil {
		return
	}
	tags := map[string]string{"result": ResultSuccess}
	if in.Err != nil {
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(in.Err)
	}
	if in.Role != "" {
		tags["role"] = string(in.Role)
	}

	sink.Count("auth."+in.Action, 1, tags)
	if in.Duration > 0 {
		sink.Timing("auth."+in.Action+".duration", in.Duration, map[string]string{"result": tags["result"]})
	}
}

// EmitGateRejection counts a request stopped by the role gate. reason is
// unauthenticated or forbidden.
func EmitGateRejection(sink statsd.Sink, reason string, callerRole domainauth.Role) {
	if sink == nil {
		return
	}
	tags := map[string]string{"reason": reason}
	if callerRole != "" {
		tags["caller_role"] = string(callerRole)
	}
	sink.Count("auth.gate.rejected", 1, tags)
}
