package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/accommodation-tracker/internal/models"
	appErrors "github.com/noah-isme/accommodation-tracker/pkg/errors"
)

func TestEnrollmentUniqueness(t *testing.T) {
	f := newFixture()
	s := seed(t, f)
	ctx := context.Background()

	_, err := f.enrollments.Enroll(ctx, s.class.ID, s.student.ID)
	assert.ErrorIs(t, err, appErrors.ErrAlreadyEnrolled)
	assert.Len(t, f.store.enrollments, 1)

	roster, err := f.enrollments.ListStudents(ctx, s.class.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 1)
}

func TestEnrollRejectsUnknownReferences(t *testing.T) {
	f := newFixture()
	s := seed(t, f)
	ctx := context.Background()

	_, err := f.enrollments.Enroll(ctx, 999, s.student.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	_, err = f.enrollments.Enroll(ctx, s.class.ID, 999)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestUnenrollKeepsServiceLogs(t *testing.T) {
	f := newFixture()
	s := seed(t, f)
	ctx := context.Background()

	_, err := f.tracking.ToggleService(ctx, s.class.ID, s.acc.ID, "2024-09-03")
	require.NoError(t, err)
	require.NoError(t, f.enrollments.Unenroll(ctx, s.class.ID, s.student.ID))
	require.NoError(t, f.enrollments.Unenroll(ctx, s.class.ID, s.student.ID))

	available, err := f.enrollments.ListAvailable(ctx, s.class.ID)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, s.student.ID, available[0].ID)
	assert.Len(t, f.store.logs, 1)
}

func TestStudentServiceValidatesAndDetectsDuplicates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.students.Create(ctx, StudentRequest{FirstName: "Ana", LastName: "Diaz", StudentID: "S-1", PlanType: "ADA"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	created, err := f.students.Create(ctx, StudentRequest{FirstName: " Ana ", LastName: "Diaz", StudentID: "S-1", PlanType: "IEP"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.FirstName)
	assert.Equal(t, models.PlanTypeIEP, created.PlanType)

	_, err = f.students.Create(ctx, StudentRequest{FirstName: "Ben", LastName: "Diaz", StudentID: "S-1", PlanType: "504"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	missing, err := f.students.Get(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	updated, err := f.students.Update(ctx, 999, StudentRequest{FirstName: "X", LastName: "Y", StudentID: "S-9", PlanType: "504"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestPeriodServiceRejectsInvertedRange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.periods.Create(ctx, PeriodRequest{Name: "Bad", StartDate: "2024-10-11", EndDate: "2024-09-02", Year: "2024-2025"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidPeriodRange)

	_, err = f.periods.Create(ctx, PeriodRequest{Name: "Bad", StartDate: "2024-13-01", EndDate: "2024-09-02", Year: "2024-2025"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	same, err := f.periods.Create(ctx, PeriodRequest{Name: "One day", StartDate: "2024-09-02", EndDate: "2024-09-02", Year: "2024-2025"})
	require.NoError(t, err)
	assert.NotZero(t, same.ID)
}

func TestAccommodationServiceRequiresOwner(t *testing.T) {
	f := newFixture()
	s := seed(t, f)
	ctx := context.Background()

	_, err := f.accommodations.Create(ctx, 999, AccommodationRequest{Category: "Testing", Description: "Read aloud"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	updated, err := f.accommodations.Update(ctx, s.acc.ID, AccommodationRequest{Category: "Testing", Description: "Extended time (1.5x)"})
	require.NoError(t, err)
	assert.Equal(t, s.student.ID, updated.StudentID)
	assert.Equal(t, "Extended time (1.5x)", updated.Description)

	missing, err := f.accommodations.Update(ctx, 999, AccommodationRequest{Category: "Testing", Description: "x"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestClassSummaryAndNotFound(t *testing.T) {
	f := newFixture()
	s := seed(t, f)
	ctx := context.Background()

	summary, err := f.classes.Summary(ctx, s.class.ID)
	require.NoError(t, err)
	assert.Equal(t, "Algebra I", summary.Name)
	require.Len(t, summary.Students, 1)
	assert.Len(t, summary.Students[0].Accommodations, 1)

	missing, err := f.classes.Summary(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = f.classes.Create(ctx, ClassRequest{Name: "   "})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	require.NoError(t, f.classes.Delete(ctx, 999))
}
