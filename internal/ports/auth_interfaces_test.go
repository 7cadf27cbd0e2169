package ports_test

import (
	"testing"

	"github.com/antly/antly-api/internal/adapters/jwtcodec"
	"github.com/antly/antly-api/internal/adapters/passhash"
	fakes "github.com/antly/antly-api/internal/mocks/auth"
	"github.com/antly/antly-api/internal/ports"
)

// This test only verifies that adapters and fakes conform to the ports at compile time.
func TestImplementationsSatisfyPorts(t *testing.T) {
	t.Helper()

	var _ ports.CredentialCodec = (*jwtcodec.Codec)(nil)
	var _ ports.PasswordHasher = (*passhash.Bcrypt)(nil)
	var _ ports.PasswordHasher = (*fakes.PlainHasher)(nil)
}
