package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/learn-sphere/analytics-api/internal/dto"
	"github.com/learn-sphere/analytics-api/internal/models"
	appErrors "github.com/learn-sphere/analytics-api/pkg/errors"
)

type assessmentStore interface {
	FindCourseByID(ctx context.Context, id string) (*models.Course, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	CreateSubmission(ctx context.Context, sub *models.Submission) error
}

// AssessmentService records graded submissions.
type AssessmentService struct {
	repo      assessmentStore
	analytics cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssessmentService constructs an assessment service.
func NewAssessmentService(repo assessmentStore, analytics cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{repo: repo, analytics: analytics, validator: validate, logger: logger}
}

// Add records one graded submission for a (student, course) pair. Both the
// student and the course must exist; submissions accumulate and are never
// overwritten.
func (s *AssessmentService) Add(ctx context.Context, studentID, courseID string, req dto.AddAssessmentRequest) (*models.Submission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}

	if _, err := s.repo.FindUserByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}
	if _, err := s.repo.FindCourseByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}

	sub := &models.Submission{
		ID:        uuid.NewString(),
		StudentID: studentID,
		CourseID:  courseID,
		Score:     req.Score,
		Completed: req.Completed,
		DueDate:   req.DueDate.UTC(),
	}
	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record submission")
	}

	s.invalidate(ctx)
	return sub, nil
}

func (s *AssessmentService) invalidate(ctx context.Context) {
	if s.analytics == nil {
		return
	}
	if err := s.analytics.InvalidateCache(ctx); err != nil {
		s.logger.Warn("invalidate analytics cache", zap.Error(err))
	}
}
