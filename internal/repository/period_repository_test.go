package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/accommodation-tracker/internal/models"
)

func TestPeriodRepositoryListOrdering(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPeriodRepository(db)

	cols := []string{"id", "name", "start_date", "end_date", "year"}
	mock.ExpectQuery(regexp.QuoteMeta("WHERE year = ? ORDER BY start_date")).
		WithArgs("2024-2025").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "1st", "2024-09-02", "2024-10-11", "2024-2025"))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY start_date DESC")).
		WillReturnRows(sqlmock.NewRows(cols))

	byYear, err := repo.List(context.Background(), models.PeriodFilter{Year: "2024-2025"})
	require.NoError(t, err)
	require.Len(t, byYear, 1)

	all, err := repo.List(context.Background(), models.PeriodFilter{})
	require.NoError(t, err)
	require.Empty(t, all)
	require.NoError(t, mock.ExpectationsWereMet())
}
