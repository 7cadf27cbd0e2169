package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_SortedAndEmbedded(t *testing.T) {
	files, err := migrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "0001_init.sql", files[0])
	assert.IsNonDecreasing(t, files)

	body, err := migrationsFS.ReadFile("migrations/0001_init.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "users_email_lower_idx")
	assert.Contains(t, string(body), "lower(email)")
}
