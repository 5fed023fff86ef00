package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	t.Parallel()

	connStr, cleanupFunc := SetupTestDB(t)
	t.Cleanup(cleanupFunc)

	// SetupTestDB already applied all migrations once.
	m, err := NewFromConnectionString(connStr)
	require.NoError(t, err)
	defer m.Close()

	// Count the number of logical migrations.
	fnames, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, fnames)

	for i := 1; i <= len(fnames); i++ {
		// step down
		err = m.Steps(-i)
		assert.NoError(t, err)

		// step up again
		err = m.Steps(i)
		assert.NoError(t, err)
	}

	version, dirty, err := GetVersion(connStr)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(len(fnames)), version)
}
