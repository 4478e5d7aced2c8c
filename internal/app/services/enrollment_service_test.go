package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emres/studentportal/internal/pkg/apperrors"
)

func newEnrollmentFixture() (*EnrollmentService, *fakeStore) {
	store := newFakeStore()
	return NewEnrollmentService(store, zerolog.Nop()), store
}

func TestEnrollSuccess(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.addCourse(3, "CS101", 30)

	err := svc.Enroll(context.Background(), 1, 3, DefaultSemester)
	require.NoError(t, err)

	exists, err := store.Exists(context.Background(), 1, 3, DefaultSemester)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 1, store.enrollmentOf(3))
}

func TestEnrollTwiceReturnsAlreadyRegistered(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.addCourse(3, "CS101", 30)

	require.NoError(t, svc.Enroll(context.Background(), 1, 3, DefaultSemester))
	err := svc.Enroll(context.Background(), 1, 3, DefaultSemester)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)

	// The second attempt must not move the counter.
	assert.Equal(t, 1, store.enrollmentOf(3))
}

func TestEnrollSameCourseDifferentStudents(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.addCourse(3, "CS101", 30)

	require.NoError(t, svc.Enroll(context.Background(), 1, 3, DefaultSemester))
	require.NoError(t, svc.Enroll(context.Background(), 2, 3, DefaultSemester))
	assert.Equal(t, 2, store.enrollmentOf(3))
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	err := svc.Enroll(context.Background(), 1, 99, DefaultSemester)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnrollFullCourse(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.addCourse(3, "CS101", 1)

	require.NoError(t, svc.Enroll(context.Background(), 1, 3, DefaultSemester))
	err := svc.Enroll(context.Background(), 2, 3, DefaultSemester)
	assert.ErrorIs(t, err, apperrors.ErrCourseFull)

	assert.Equal(t, 1, store.enrollmentOf(3))
}

func TestEnrollStoreFailureIsGeneric(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.addCourse(3, "CS101", 30)
	store.failWith = errors.New("connection refused")

	err := svc.Enroll(context.Background(), 1, 3, DefaultSemester)
	assert.ErrorIs(t, err, apperrors.ErrRegistrationFailed)
	// Raw store errors never reach the caller.
	assert.NotContains(t, err.Error(), "connection refused")

	store.failWith = nil
	assert.Equal(t, 0, store.enrollmentOf(3))
}

func TestEnrollConcurrentSamePair(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.addCourse(3, "CS101", 100)

	const n = 32
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Enroll(context.Background(), 1, 3, DefaultSemester)
		}()
	}
	wg.Wait()
	close(results)

	successes, duplicates := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperrors.ErrAlreadyRegistered):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// The unique constraint, not the advisory pre-check, decides the race:
	// exactly one registration and exactly one increment.
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, duplicates)
	assert.Equal(t, 1, store.enrollmentOf(3))
}

func TestDropAfterEnrollRestoresCounter(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.addCourse(3, "CS101", 30)

	require.NoError(t, svc.Enroll(context.Background(), 1, 3, DefaultSemester))
	dropped, err := svc.Drop(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.True(t, dropped)
	assert.Equal(t, 0, store.enrollmentOf(3))

	exists, err := store.Exists(context.Background(), 1, 3, DefaultSemester)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDropWithoutRegistrationIsLenient(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.addCourse(3, "CS101", 30)

	dropped, err := svc.Drop(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.False(t, dropped)
	assert.Equal(t, 0, store.enrollmentOf(3))
}

func TestDropStoreFailureIsGeneric(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.addCourse(3, "CS101", 30)
	require.NoError(t, svc.Enroll(context.Background(), 1, 3, DefaultSemester))
	store.failWith = errors.New("connection refused")

	_, err := svc.Drop(context.Background(), 1, 3)
	assert.ErrorIs(t, err, apperrors.ErrRegistrationFailed)

	store.failWith = nil
	assert.Equal(t, 1, store.enrollmentOf(3))
}

func TestRegistrationsListsOwnOnly(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.addCourse(3, "CS101", 30)
	store.addCourse(4, "MATH101", 30)

	require.NoError(t, svc.Enroll(context.Background(), 1, 3, DefaultSemester))
	require.NoError(t, svc.Enroll(context.Background(), 1, 4, DefaultSemester))
	require.NoError(t, svc.Enroll(context.Background(), 2, 3, DefaultSemester))

	registrations, err := svc.Registrations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, registrations, 2)
	for _, reg := range registrations {
		assert.Equal(t, int64(1), reg.StudentID)
		assert.Equal(t, DefaultSemester, reg.Semester)
	}
}

func TestRegistrationsStoreFailure(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.failWith = errors.New("connection refused")

	_, err := svc.Registrations(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}
