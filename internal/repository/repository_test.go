package repository_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory database for repository tests.
// Tables are created by hand because the production schema relies on
// Postgres-only defaults (gen_random_uuid, text[]).
func setupTestDB(t *testing.T, schema ...string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

const goalsSchema = `
CREATE TABLE goals (
    id TEXT PRIMARY KEY,
    created_at DATETIME,
    updated_at DATETIME,
    type TEXT NOT NULL,
    target REAL NOT NULL,
    period TEXT NOT NULL,
    month INTEGER NOT NULL,
    year INTEGER NOT NULL,
    created_by TEXT
)`

const auditLogsSchema = `
CREATE TABLE audit_logs (
    id TEXT PRIMARY KEY,
    action TEXT NOT NULL,
    category TEXT NOT NULL,
    description TEXT NOT NULL,
    user_id TEXT NOT NULL,
    user_name TEXT,
    user_email TEXT,
    metadata TEXT,
    ip_address TEXT,
    created_at DATETIME
)`
