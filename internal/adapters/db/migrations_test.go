// internal/adapters/db/migrations_test.go
package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppliedMigrations(t *testing.T) {
	const query = `SELECT version, dirty FROM public.schema_migrations ORDER BY version ASC`

	tests := []struct {
		name       string
		setupMock  func(sqlmock.Sqlmock)
		expected   []AppliedMigration
		wantErrMsg string
	}{
		{
			name: "lists_versions",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(query).WillReturnRows(
					sqlmock.NewRows([]string{"version", "dirty"}).
						AddRow(3, false))
			},
			expected: []AppliedMigration{{Version: 3, Dirty: false}},
		},
		{
			name: "fresh_database",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"version", "dirty"}))
			},
			expected: []AppliedMigration{},
		},
		{
			name: "query_fails",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(query).WillReturnError(errors.New("relation does not exist"))
			},
			wantErrMsg: "failed to query migrations",
		},
		{
			name: "bad_row",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(query).WillReturnRows(
					sqlmock.NewRows([]string{"version", "dirty"}).AddRow("three", false))
			},
			wantErrMsg: "failed to scan migration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			require.NoError(t, err)
			defer conn.Close()

			tt.setupMock(mock)

			got, err := appliedMigrations(context.Background(), conn, "public", "schema_migrations")
			if tt.wantErrMsg != "" {
				assert.ErrorContains(t, err, tt.wantErrMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNewMigrator_RequiresConfig(t *testing.T) {
	_, err := NewMigrator(nil, nil)
	assert.EqualError(t, err, "migration config is required")
}
