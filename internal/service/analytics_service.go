package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/learn-sphere/analytics-api/internal/models"
	appErrors "github.com/learn-sphere/analytics-api/pkg/errors"
)

// RecordStore is the collaborator boundary the aggregation engine reads from.
// Each Fetch returns a whole collection; there is no partial-update API. The
// engine never writes through this interface.
type RecordStore interface {
	FetchCourses(ctx context.Context) ([]models.Course, error)
	FetchEnrollments(ctx context.Context) ([]models.Enrollment, error)
	FetchSubmissions(ctx context.Context) (models.SubmissionSet, error)
	FetchAttendance(ctx context.Context) (models.AttendanceSet, error)
	FetchUsers(ctx context.Context) ([]models.User, error)
	FetchLiveSessions(ctx context.Context) ([]models.LiveSession, error)
}

// AnalyticsService runs the learning-analytics aggregations over a fresh
// record-store snapshot per invocation, with cache integration. A failed
// aggregation call delivers no partial result; callers re-invoke.
type AnalyticsService struct {
	store    RecordStore
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(store RecordStore, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{
		store:    store,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Snapshot reads all six collections once. A course-catalog failure fails the
// whole call since courses resolve every other join; the remaining reads fail
// the call too rather than degrading to partial results.
func (s *AnalyticsService) Snapshot(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	courses, err := s.store.FetchCourses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCourseFetch.Code, appErrors.ErrCourseFetch.Status, appErrors.ErrCourseFetch.Message)
	}
	enrollments, err := s.store.FetchEnrollments(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch enrollments: %w", err)
	}
	submissions, err := s.store.FetchSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch submissions: %w", err)
	}
	attendance, err := s.store.FetchAttendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch attendance: %w", err)
	}
	users, err := s.store.FetchUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	sessions, err := s.store.FetchLiveSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch live sessions: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ObserveSnapshotLoad(time.Since(start))
	}

	return &Snapshot{
		Courses:      courses,
		Enrollments:  enrollments,
		Submissions:  submissions,
		Attendance:   attendance,
		Users:        users,
		LiveSessions: sessions,
	}, nil
}

// StudentPerformance returns per-student report rows, optionally restricted
// to one course. The boolean indicates whether data originated from cache.
func (s *AnalyticsService) StudentPerformance(ctx context.Context, courseID string) ([]models.StudentReportRow, bool, error) {
	cacheKey := studentPerformanceCacheKey(courseID)
	var cached []models.StudentReportRow
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get student performance cache: %w", err)
		} else if hit {
			return cached, true, nil
		}
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, false, err
	}
	rows := snap.StudentPerformance(courseID, s.now())

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, rows, s.cacheTTL); err != nil {
			s.logger.Warn("cache student performance", zap.Error(err))
		}
	}
	return rows, false, nil
}

// CoursePerformance returns per-course report rows.
func (s *AnalyticsService) CoursePerformance(ctx context.Context) ([]models.CourseReportRow, bool, error) {
	const cacheKey = "analytics:courses"
	var cached []models.CourseReportRow
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get course performance cache: %w", err)
		} else if hit {
			return cached, true, nil
		}
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, false, err
	}
	rows := snap.CoursePerformance()

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, rows, s.cacheTTL); err != nil {
			s.logger.Warn("cache course performance", zap.Error(err))
		}
	}
	return rows, false, nil
}

// SummaryStats returns the platform-wide counters.
func (s *AnalyticsService) SummaryStats(ctx context.Context) (*models.SummaryStats, bool, error) {
	const cacheKey = "analytics:summary"
	var cached models.SummaryStats
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
			return nil, false, fmt.Errorf("get summary cache: %w", err)
		} else if hit {
			return &cached, true, nil
		}
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, false, err
	}
	stats := snap.SummaryStats()

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, stats, s.cacheTTL); err != nil {
			s.logger.Warn("cache summary stats", zap.Error(err))
		}
	}
	return &stats, false, nil
}

// InvalidateCache drops all cached analytics payloads. Roster mutators call
// this after every write so cached reports never outlive the data they were
// derived from.
func (s *AnalyticsService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, "analytics:*")
}

func studentPerformanceCacheKey(courseID string) string {
	if courseID == "" {
		return "analytics:students:all"
	}
	return "analytics:students:" + courseID
}
