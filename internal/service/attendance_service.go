package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/learn-sphere/analytics-api/internal/dto"
	"github.com/learn-sphere/analytics-api/internal/models"
	appErrors "github.com/learn-sphere/analytics-api/pkg/errors"
)

type attendanceStore interface {
	FindLiveSession(ctx context.Context, id string) (*models.LiveSession, error)
	ListLiveSessions(ctx context.Context) ([]models.LiveSession, error)
	GetAttendance(ctx context.Context, studentID, sessionID string) (*models.AttendanceRecord, error)
	UpsertAttendance(ctx context.Context, rec *models.AttendanceRecord) error
}

// AttendanceService manages live-session enrollment and attendance marks.
type AttendanceService struct {
	repo      attendanceStore
	analytics cacheInvalidator
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs an attendance service.
func NewAttendanceService(repo attendanceStore, analytics cacheInvalidator, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, analytics: analytics, logger: logger, now: time.Now}
}

// Sessions returns the live-session catalog.
func (s *AttendanceService) Sessions(ctx context.Context) ([]models.LiveSession, error) {
	sessions, err := s.repo.ListLiveSessions(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}
	return sessions, nil
}

// EnrollInSession registers a student for a live session. Re-enrolling is a
// no-op that keeps any existing attendance mark.
func (s *AttendanceService) EnrollInSession(ctx context.Context, studentID, sessionID string) (*models.AttendanceRecord, error) {
	if _, err := s.repo.FindLiveSession(ctx, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "live session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch session")
	}

	rec, err := s.repo.GetAttendance(ctx, studentID, sessionID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}
	if rec == nil {
		rec = &models.AttendanceRecord{StudentID: studentID, SessionID: sessionID}
	}
	rec.Enrolled = true

	if err := s.repo.UpsertAttendance(ctx, rec); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}

	s.invalidate(ctx)
	return rec, nil
}

// Mark sets or clears the attended flag for an existing session enrollment.
// Marking attended without an explicit date stamps the current time; clearing
// the flag also clears the date.
func (s *AttendanceService) Mark(ctx context.Context, studentID, sessionID string, req dto.MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	rec, err := s.repo.GetAttendance(ctx, studentID, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student is not enrolled in this session")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}

	rec.Attended = req.Attended
	if req.Attended {
		if req.Date != nil {
			d := req.Date.UTC()
			rec.Date = &d
		} else if rec.Date == nil {
			d := s.now().UTC()
			rec.Date = &d
		}
	} else {
		rec.Date = nil
	}

	if err := s.repo.UpsertAttendance(ctx, rec); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save attendance")
	}

	s.invalidate(ctx)
	return rec, nil
}

func (s *AttendanceService) invalidate(ctx context.Context) {
	if s.analytics == nil {
		return
	}
	if err := s.analytics.InvalidateCache(ctx); err != nil {
		s.logger.Warn("invalidate analytics cache", zap.Error(err))
	}
}
