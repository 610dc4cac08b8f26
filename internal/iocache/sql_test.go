package iocache

import (
	"testing"
	"time"

	"github.com/huangsam/impact/schema"
	"github.com/stretchr/testify/assert"
)

func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		backend  schema.DatabaseBackend
		expected string
	}{
		{schema.SQLiteBackend, `"impact_authors"`},
		{schema.PostgreSQLBackend, `"impact_authors"`},
		{schema.MySQLBackend, "`impact_authors`"},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.expected, quoteTableName(authorsTable, tt.backend))
		})
	}
}

func TestRebind(t *testing.T) {
	query := "SELECT * FROM t WHERE a = ? AND b = ? LIMIT ?"
	assert.Equal(t, query, rebind(query, schema.SQLiteBackend))
	assert.Equal(t, query, rebind(query, schema.MySQLBackend))
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2 LIMIT $3", rebind(query, schema.PostgreSQLBackend))
}

func TestDriverFor(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		driver  string
		wantErr bool
	}{
		{schema.SQLiteBackend, "sqlite", false},
		{schema.MySQLBackend, "mysql", false},
		{schema.PostgreSQLBackend, "pgx", false},
		{schema.NoneBackend, "", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			driver, err := driverFor(tt.backend)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.driver, driver)
		})
	}
}

func TestMillis(t *testing.T) {
	assert.Zero(t, toMillis(time.Time{}))
	assert.True(t, fromMillis(0).IsZero())

	ts := time.Date(2024, 2, 29, 23, 59, 59, 123_000_000, time.FixedZone("X", 3600))
	assert.True(t, ts.Equal(fromMillis(toMillis(ts))))
	assert.Equal(t, time.UTC, fromMillis(toMillis(ts)).Location())
}

func TestCreateTableQueries(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		t.Run(string(backend), func(t *testing.T) {
			snapshots := getCreateSnapshotsQuery(backend)
			authors := getCreateAuthorsQuery(backend)
			assert.Contains(t, snapshots, "CREATE TABLE IF NOT EXISTS")
			assert.Contains(t, snapshots, quoteTableName(snapshotsTable, backend))
			assert.Contains(t, snapshots, "PRIMARY KEY (repo, branch)")
			assert.Contains(t, authors, quoteTableName(authorsTable, backend))
			assert.Contains(t, authors, "PRIMARY KEY (repo, branch, author_id)")
		})
	}
	assert.Contains(t, getCreateAuthorsQuery(schema.MySQLBackend), "VARCHAR(255)")
}
