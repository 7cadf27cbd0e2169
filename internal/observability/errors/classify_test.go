package errors

import (
	goerrors "errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/antly/antly-api/internal/domain/auth"
	apperrors "github.com/antly/antly-api/internal/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"app error", fmt.Errorf("wrap: %w", apperrors.Conflict("taken")), "conflict"},
		{"unauthenticated", domainauth.ErrUnauthenticated, "unauthenticated"},
		{"forbidden", fmt.Errorf("gate: %w", domainauth.ErrForbidden), "forbidden"},
		{"concrete type", fmt.Errorf("dial: %w", &net.OpError{Op: "dial", Err: goerrors.New("refused")}), "errors_errorstring"},
		{"plain", goerrors.New("boom"), "errors_errorstring"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
