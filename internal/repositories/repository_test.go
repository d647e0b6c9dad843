package repositories

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a mock database
func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

var duplicateEntryErr = &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}

func TestIsDuplicateEntry(t *testing.T) {
	assert.True(t, isDuplicateEntry(duplicateEntryErr))
	assert.False(t, isDuplicateEntry(&mysql.MySQLError{Number: 1452}))
	assert.False(t, isDuplicateEntry(sql.ErrNoRows))
	assert.False(t, isDuplicateEntry(nil))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
	assert.Equal(t, []any{1, 2}, intArgs([]int{1, 2}))
}
