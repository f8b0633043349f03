package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learn-sphere/analytics-api/internal/models"
	appErrors "github.com/learn-sphere/analytics-api/pkg/errors"
)

type fakeEnrollmentStore struct {
	courses     map[string]*models.Course
	enrollments []models.Enrollment
}

func newFakeEnrollmentStore(courses ...models.Course) *fakeEnrollmentStore {
	store := &fakeEnrollmentStore{courses: make(map[string]*models.Course)}
	for i := range courses {
		c := courses[i]
		store.courses[c.ID] = &c
	}
	return store
}

func (f *fakeEnrollmentStore) FindCourseByID(ctx context.Context, id string) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *c
	return &clone, nil
}

func (f *fakeEnrollmentStore) FetchEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	return append([]models.Enrollment(nil), f.enrollments...), nil
}

func (f *fakeEnrollmentStore) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	f.enrollments = append(f.enrollments, *enrollment)
	return nil
}

func (f *fakeEnrollmentStore) DeleteEnrollmentsByCourse(ctx context.Context, courseID string) (int64, error) {
	kept := f.enrollments[:0]
	var removed int64
	for _, e := range f.enrollments {
		if e.CourseID == courseID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	f.enrollments = kept
	return removed, nil
}

func TestEnroll(t *testing.T) {
	store := newFakeEnrollmentStore(models.Course{ID: "c1", Title: "React Basics", Level: "beginner", Lessons: 12})
	invalidator := &fakeInvalidator{}
	svc := NewEnrollmentService(store, invalidator, zap.NewNop())

	enrollment, err := svc.Enroll(context.Background(), "c1")
	require.NoError(t, err)
	assert.NotEmpty(t, enrollment.ID)
	assert.Equal(t, "React Basics", enrollment.Title, "course fields are copied at enrollment time")
	assert.Equal(t, "beginner", enrollment.Level)
	assert.Equal(t, 12, enrollment.Lessons)
	assert.Equal(t, 1, invalidator.calls)

	// A second enrollment into the same course is a new record, not a conflict.
	_, err = svc.Enroll(context.Background(), "c1")
	require.NoError(t, err)
	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc := NewEnrollmentService(newFakeEnrollmentStore(), &fakeInvalidator{}, zap.NewNop())

	_, err := svc.Enroll(context.Background(), "missing")
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestUnenroll(t *testing.T) {
	store := newFakeEnrollmentStore(models.Course{ID: "c1", Title: "React Basics"})
	invalidator := &fakeInvalidator{}
	svc := NewEnrollmentService(store, invalidator, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := svc.Enroll(context.Background(), "c1")
		require.NoError(t, err)
	}
	invalidator.calls = 0

	removed, err := svc.Unenroll(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.Equal(t, 1, invalidator.calls)

	// Nothing left to remove; the cache stays untouched.
	removed, err = svc.Unenroll(context.Background(), "c1")
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Equal(t, 1, invalidator.calls)
}
