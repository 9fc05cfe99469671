package database

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

const (
	leadID     = "0b6c7c64-3b5e-4f0c-9a57-2f1d1a7e9c11"
	otherID    = "5f0e3a1d-8c2b-4d4e-b1a9-7e6f5d4c3b2a"
	templateID = "9d3f2e1c-4b5a-4c6d-8e7f-0a1b2c3d4e5f"
)

var leadRowColumns = []string{
	"id", "first_name", "last_name", "company_name", "email", "phone",
	"location", "notes", "status", "last_contacted_at", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}
