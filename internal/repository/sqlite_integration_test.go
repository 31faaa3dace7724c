package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/accommodation-tracker/internal/models"
	"github.com/noah-isme/accommodation-tracker/pkg/database"
)

func newSQLiteStore(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, nil))
	return db
}

func TestSQLiteToggleEnrollmentAndCascade(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteStore(t)

	classes := NewClassRepository(db)
	students := NewStudentRepository(db)
	accommodations := NewAccommodationRepository(db)
	enrollments := NewEnrollmentRepository(db)
	logs := NewServiceLogRepository(db)

	class := &models.Class{Name: "Algebra I", Subject: "Math", Period: "3", Year: "2024-2025"}
	require.NoError(t, classes.Create(ctx, class))
	student := &models.Student{FirstName: "Ana", LastName: "Alvarez", StudentID: "S-002", PlanType: models.PlanTypeIEP}
	require.NoError(t, students.Create(ctx, student))
	acc := &models.Accommodation{StudentID: student.ID, Category: "Testing", Description: "Extended time"}
	require.NoError(t, accommodations.Create(ctx, acc))

	require.NoError(t, enrollments.Create(ctx, &models.Enrollment{ClassID: class.ID, StudentID: student.ID}))
	err := enrollments.Create(ctx, &models.Enrollment{ClassID: class.ID, StudentID: student.ID})
	require.ErrorIs(t, err, ErrDuplicate)

	enrolled, err := students.ListByClass(ctx, class.ID)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)

	dup := &models.Student{FirstName: "Other", LastName: "Kid", StudentID: "S-002", PlanType: models.PlanType504}
	require.ErrorIs(t, students.Create(ctx, dup), ErrDuplicate)

	provided, err := logs.Toggle(ctx, class.ID, acc.ID, "2024-09-03")
	require.NoError(t, err)
	assert.True(t, provided)
	provided, err = logs.Toggle(ctx, class.ID, acc.ID, "2024-09-03")
	require.NoError(t, err)
	assert.False(t, provided)

	rows, err := logs.ListByClassAndRange(ctx, class.ID, "2024-09-02", "2024-09-05")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Provided)

	stored, err := logs.Find(ctx, class.ID, acc.ID, "2024-09-03")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Provided)
	missing, err := logs.Find(ctx, class.ID, acc.ID, "2024-09-04")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, students.Delete(ctx, student.ID))

	_, err = accommodations.FindByID(ctx, acc.ID)
	require.ErrorIs(t, err, sql.ErrNoRows)
	rows, err = logs.ListByClassAndRange(ctx, class.ID, "2024-09-02", "2024-09-05")
	require.NoError(t, err)
	assert.Empty(t, rows)
	enrolled, err = students.ListByClass(ctx, class.ID)
	require.NoError(t, err)
	assert.Empty(t, enrolled)
}

func TestSQLiteOrderingBreaksTiesByID(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteStore(t)
	students := NewStudentRepository(db)
	accommodations := NewAccommodationRepository(db)

	var ids []int64
	for _, sid := range []string{"S-3", "S-1", "S-2"} {
		st := &models.Student{FirstName: "Sam", LastName: "Lee", StudentID: sid, PlanType: models.PlanType504}
		require.NoError(t, students.Create(ctx, st))
		ids = append(ids, st.ID)
	}
	listed, err := students.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, st := range listed {
		assert.Equal(t, ids[i], st.ID)
	}

	var accIDs []int64
	for i := 0; i < 2; i++ {
		acc := &models.Accommodation{StudentID: ids[0], Category: "Testing", Description: "Extended time"}
		require.NoError(t, accommodations.Create(ctx, acc))
		accIDs = append(accIDs, acc.ID)
	}
	grouped, err := accommodations.ListByStudents(ctx, []int64{ids[0]})
	require.NoError(t, err)
	require.Len(t, grouped[ids[0]], 2)
	assert.Equal(t, accIDs[0], grouped[ids[0]][0].ID)
	assert.Equal(t, accIDs[1], grouped[ids[0]][1].ID)
}

func TestSQLiteMigrateIsIdempotent(t *testing.T) {
	db := newSQLiteStore(t)
	require.NoError(t, database.Migrate(context.Background(), db, nil))

	periods := NewPeriodRepository(db)
	p := &models.SixWeekPeriod{Name: "1st Six Weeks", StartDate: "2024-09-02", EndDate: "2024-10-11", Year: "2024-2025"}
	require.NoError(t, periods.Create(context.Background(), p))
	found, err := periods.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-10-11", found.EndDate)
}
