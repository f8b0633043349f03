package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/learn-sphere/analytics-api/internal/models"
	appErrors "github.com/learn-sphere/analytics-api/pkg/errors"
)

type enrollmentStore interface {
	FindCourseByID(ctx context.Context, id string) (*models.Course, error)
	FetchEnrollments(ctx context.Context) ([]models.Enrollment, error)
	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error
	DeleteEnrollmentsByCourse(ctx context.Context, courseID string) (int64, error)
}

// EnrollmentService manages course enrollment records.
type EnrollmentService struct {
	repo      enrollmentStore
	analytics cacheInvalidator
	logger    *zap.Logger
}

// NewEnrollmentService constructs an enrollment service.
func NewEnrollmentService(repo enrollmentStore, analytics cacheInvalidator, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, analytics: analytics, logger: logger}
}

// List returns all enrollment records.
func (s *EnrollmentService) List(ctx context.Context) ([]models.Enrollment, error) {
	enrollments, err := s.repo.FetchEnrollments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	return enrollments, nil
}

// Enroll records one enrollment into a course. The course's title, level and
// lesson count are copied onto the record at enrollment time; later edits to
// the course do not rewrite history.
func (s *EnrollmentService) Enroll(ctx context.Context, courseID string) (*models.Enrollment, error) {
	course, err := s.repo.FindCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}

	enrollment := &models.Enrollment{
		ID:        uuid.NewString(),
		CourseID:  course.ID,
		Title:     course.Title,
		Level:     course.Level,
		Lessons:   course.Lessons,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}

	s.invalidate(ctx)
	return enrollment, nil
}

// Unenroll removes every enrollment record for a course and reports how many
// were dropped.
func (s *EnrollmentService) Unenroll(ctx context.Context, courseID string) (int64, error) {
	removed, err := s.repo.DeleteEnrollmentsByCourse(ctx, courseID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove enrollments")
	}
	if removed > 0 {
		s.invalidate(ctx)
	}
	return removed, nil
}

func (s *EnrollmentService) invalidate(ctx context.Context) {
	if s.analytics == nil {
		return
	}
	if err := s.analytics.InvalidateCache(ctx); err != nil {
		s.logger.Warn("invalidate analytics cache", zap.Error(err))
	}
}
