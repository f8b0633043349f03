package models

import "time"

// ReportType selects which aggregate feeds the export.
type ReportType string

const (
	ReportStudentPerformance ReportType = "student_performance"
	ReportCoursePerformance  ReportType = "course_performance"
	ReportSummary            ReportType = "summary"
)

// Valid reports whether the type is supported.
func (t ReportType) Valid() bool {
	switch t {
	case ReportStudentPerformance, ReportCoursePerformance, ReportSummary:
		return true
	default:
		return false
	}
}

// ReportFormat selects the rendered output format.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// Valid reports whether the format is supported.
func (f ReportFormat) Valid() bool {
	return f == ReportFormatCSV || f == ReportFormatPDF
}

// ReportStatus tracks job lifecycle.
type ReportStatus string

const (
	ReportStatusQueued     ReportStatus = "queued"
	ReportStatusProcessing ReportStatus = "processing"
	ReportStatusDone       ReportStatus = "done"
	ReportStatusFailed     ReportStatus = "failed"
)

// ReportJobParams scope the exported dataset.
type ReportJobParams struct {
	CourseID string       `json:"course_id,omitempty"`
	Format   ReportFormat `json:"format"`
}

// ReportJob is one export request moving through the queue.
type ReportJob struct {
	ID           string          `json:"id"`
	Type         ReportType      `json:"type"`
	Params       ReportJobParams `json:"params"`
	Status       ReportStatus    `json:"status"`
	Progress     int             `json:"progress"`
	ResultURL    *string         `json:"result_url,omitempty"`
	ResultPath   string          `json:"-"`
	ErrorMessage *string         `json:"error,omitempty"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
}
