package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learn-sphere/analytics-api/internal/dto"
	"github.com/learn-sphere/analytics-api/internal/models"
	appErrors "github.com/learn-sphere/analytics-api/pkg/errors"
)

type fakeAssessmentStore struct {
	users       map[string]*models.User
	courses     map[string]*models.Course
	submissions []models.Submission
}

func newFakeAssessmentStore() *fakeAssessmentStore {
	return &fakeAssessmentStore{
		users:   map[string]*models.User{"s1": {ID: "s1", Role: models.RoleStudent}},
		courses: map[string]*models.Course{"c1": {ID: "c1", Title: "React Basics"}},
	}
}

func (f *fakeAssessmentStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *u
	return &clone, nil
}

func (f *fakeAssessmentStore) FindCourseByID(ctx context.Context, id string) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *c
	return &clone, nil
}

func (f *fakeAssessmentStore) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	f.submissions = append(f.submissions, *sub)
	return nil
}

func TestAddAssessment(t *testing.T) {
	store := newFakeAssessmentStore()
	invalidator := &fakeInvalidator{}
	svc := NewAssessmentService(store, invalidator, nil, zap.NewNop())

	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	sub, err := svc.Add(context.Background(), "s1", "c1", dto.AddAssessmentRequest{
		Score: 85, Completed: true, DueDate: due,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "s1", sub.StudentID)
	assert.Equal(t, "c1", sub.CourseID)
	assert.Equal(t, time.UTC, sub.DueDate.Location(), "due dates are normalized to UTC")
	assert.Equal(t, 1, invalidator.calls)

	// Submissions accumulate, never overwrite.
	_, err = svc.Add(context.Background(), "s1", "c1", dto.AddAssessmentRequest{Score: 40, DueDate: due})
	require.NoError(t, err)
	assert.Len(t, store.submissions, 2)
}

func TestAddAssessmentUnknownTargets(t *testing.T) {
	svc := NewAssessmentService(newFakeAssessmentStore(), nil, nil, zap.NewNop())
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Add(context.Background(), "ghost", "c1", dto.AddAssessmentRequest{Score: 50, DueDate: due})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Add(context.Background(), "s1", "ghost", dto.AddAssessmentRequest{Score: 50, DueDate: due})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAddAssessmentValidation(t *testing.T) {
	svc := NewAssessmentService(newFakeAssessmentStore(), nil, nil, zap.NewNop())

	_, err := svc.Add(context.Background(), "s1", "c1", dto.AddAssessmentRequest{
		Score: 120, DueDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
