package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/learn-sphere/analytics-api/internal/dto"
	"github.com/learn-sphere/analytics-api/internal/models"
	appErrors "github.com/learn-sphere/analytics-api/pkg/errors"
	"github.com/learn-sphere/analytics-api/pkg/jobs"
)

const reportJobType = "report.generate"

// ReportService owns the asynchronous report job lifecycle. Jobs live in an
// in-memory registry; results on disk outlive a restart but job metadata does
// not, so pollers of a pre-restart job see not-found.
type ReportService struct {
	export *ExportService
	queue  *jobs.Queue
	logger *zap.Logger

	mu   sync.RWMutex
	jobs map[string]*models.ReportJob
}

// NewReportService constructs the report service. Call BindQueue before
// accepting requests.
func NewReportService(export *ExportService, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		export: export,
		logger: logger,
		jobs:   make(map[string]*models.ReportJob),
	}
}

// BindQueue attaches the worker queue used to run jobs.
func (s *ReportService) BindQueue(q *jobs.Queue) {
	s.queue = q
}

// CreateJob validates the request, registers a job and enqueues it.
func (s *ReportService) CreateJob(ctx context.Context, userID string, req dto.ReportRequest) (*models.ReportJob, error) {
	if !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report type %q", req.Type))
	}
	if !req.Format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", req.Format))
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "report queue unavailable")
	}

	job := &models.ReportJob{
		ID:        uuid.NewString(),
		Type:      req.Type,
		Params:    models.ReportJobParams{CourseID: req.CourseID, Format: req.Format},
		Status:    models.ReportStatusQueued,
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: reportJobType, Payload: job.ID}); err != nil {
		s.fail(job.ID, fmt.Sprintf("enqueue failed: %v", err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue report job")
	}

	s.logger.Info("report job queued",
		zap.String("job_id", job.ID),
		zap.String("type", string(job.Type)),
		zap.String("format", string(job.Params.Format)))
	return job, nil
}

// Process is the queue handler. It renders the report and records the result.
func (s *ReportService) Process(ctx context.Context, qj jobs.Job) error {
	jobID, _ := qj.Payload.(string)
	job := s.get(jobID)
	if job == nil {
		s.logger.Warn("unknown report job", zap.String("job_id", jobID))
		return nil
	}

	s.update(jobID, func(j *models.ReportJob) {
		j.Status = models.ReportStatusProcessing
		j.Progress = 10
	})

	result, err := s.export.Generate(ctx, job)
	if err != nil {
		s.fail(jobID, err.Error())
		return fmt.Errorf("generate report %s: %w", jobID, err)
	}

	now := time.Now().UTC()
	s.update(jobID, func(j *models.ReportJob) {
		j.Status = models.ReportStatusDone
		j.Progress = 100
		j.ResultPath = result.RelativePath
		url := result.URL
		j.ResultURL = &url
		j.FinishedAt = &now
	})

	s.logger.Info("report job done",
		zap.String("job_id", jobID),
		zap.String("path", result.RelativePath))
	return nil
}

// GetStatus returns a job for its owner or any admin.
func (s *ReportService) GetStatus(_ context.Context, jobID string, actor *models.User) (*models.ReportJob, error) {
	job := s.get(jobID)
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "report job not found")
	}
	if actor == nil || (actor.Role != models.RoleAdmin && actor.ID != job.CreatedBy) {
		return nil, appErrors.ErrForbidden
	}
	return job, nil
}

// ResolveDownload validates a signed token and opens the rendered file.
func (s *ReportService) ResolveDownload(token string) (*ReportDownload, error) {
	download, jobID, err := s.export.Open(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired download link")
	}
	if job := s.get(jobID); job != nil && job.Status != models.ReportStatusDone {
		download.File.Close()
		return nil, appErrors.Clone(appErrors.ErrConflict, "report is not ready")
	}
	return download, nil
}

// CleanupExpired drops rendered files and finished job records older than ttl.
func (s *ReportService) CleanupExpired(ttl time.Duration) int {
	removed := s.export.CleanupExpired(ttl)

	cutoff := time.Now().UTC().Add(-ttl)
	s.mu.Lock()
	for id, job := range s.jobs {
		if job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
	s.mu.Unlock()
	return removed
}

func (s *ReportService) get(id string) *models.ReportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if job, ok := s.jobs[id]; ok {
		clone := *job
		return &clone
	}
	return nil
}

func (s *ReportService) update(id string, fn func(*models.ReportJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		fn(job)
	}
}

func (s *ReportService) fail(id, msg string) {
	now := time.Now().UTC()
	s.update(id, func(j *models.ReportJob) {
		j.Status = models.ReportStatusFailed
		j.ErrorMessage = &msg
		j.FinishedAt = &now
	})
}
