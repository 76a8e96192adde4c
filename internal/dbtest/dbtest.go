// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/config"
	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/db"
)

// New returns a migrated SQLite database private to the calling test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gormDB, err := db.Open(sqlite.Open(dsn), config.PoolConfig{MaxOpenConns: 1}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false))

	t.Cleanup(func() {
		_ = db.Close(gormDB)
	})
	return gormDB
}
