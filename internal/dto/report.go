package dto

import "github.com/learn-sphere/analytics-api/internal/models"

// ReportRequest asks for an asynchronous export of an analytics dataset.
type ReportRequest struct {
	Type     models.ReportType   `json:"type" validate:"required"`
	CourseID string              `json:"course_id,omitempty"`
	Format   models.ReportFormat `json:"format" validate:"required"`
}

// ReportJobResponse acknowledges job creation.
type ReportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ReportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// ReportStatusResponse exposes job progress to pollers.
type ReportStatusResponse struct {
	ID        string              `json:"id"`
	Status    models.ReportStatus `json:"status"`
	Progress  int                 `json:"progress"`
	ResultURL *string             `json:"result_url,omitempty"`
	Error     *string             `json:"error,omitempty"`
}
