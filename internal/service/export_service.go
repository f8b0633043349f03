package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/learn-sphere/analytics-api/internal/models"
	"github.com/learn-sphere/analytics-api/pkg/export"
	"github.com/learn-sphere/analytics-api/pkg/storage"
)

type performanceProvider interface {
	StudentPerformance(ctx context.Context, courseID string) ([]models.StudentReportRow, bool, error)
	CoursePerformance(ctx context.Context) ([]models.CourseReportRow, bool, error)
	SummaryStats(ctx context.Context) (*models.SummaryStats, bool, error)
}

// ExportResult describes a rendered report file and its signed download link.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ReportFormat
	ExpiresAt    time.Time
}

// ReportDownload is a resolved download ready to stream.
type ReportDownload struct {
	File      *os.File
	Filename  string
	Format    models.ReportFormat
	ExpiresAt time.Time
}

// ExportService renders analytics datasets into downloadable files.
type ExportService struct {
	analytics performanceProvider
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	store     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	apiPrefix string
	logger    *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(analytics performanceProvider, store *storage.LocalStorage, signer *storage.SignedURLSigner, apiPrefix string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		analytics: analytics,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		store:     store,
		signer:    signer,
		apiPrefix: apiPrefix,
		logger:    logger,
	}
}

// Generate builds the dataset for a report job, renders it in the requested
// format, persists the file and returns a signed download link.
func (s *ExportService) Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error) {
	dataset, title, err := s.buildDataset(ctx, job)
	if err != nil {
		return nil, err
	}

	format := job.Params.Format
	var rendered []byte
	switch format {
	case models.ReportFormatPDF:
		rendered, err = s.pdf.Render(dataset, title)
	default:
		format = models.ReportFormatCSV
		rendered, err = s.csv.Render(dataset)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", format, err)
	}

	relPath := fmt.Sprintf("%s.%s", job.ID, format)
	if _, err := s.store.Save(relPath, rendered); err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, fmt.Errorf("sign report url: %w", err)
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/reports/download?token=%s", s.apiPrefix, token),
		Format:       format,
		ExpiresAt:    expiresAt,
	}, nil
}

// Open resolves a signed token into a readable file handle.
func (s *ExportService) Open(token string) (*ReportDownload, string, error) {
	jobID, relPath, expiresAt, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", fmt.Errorf("parse download token: %w", err)
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, "", fmt.Errorf("open report: %w", err)
	}
	format := models.ReportFormatCSV
	if len(relPath) > 4 && relPath[len(relPath)-4:] == ".pdf" {
		format = models.ReportFormatPDF
	}
	return &ReportDownload{
		File:      file,
		Filename:  relPath,
		Format:    format,
		ExpiresAt: expiresAt,
	}, jobID, nil
}

// CleanupExpired removes rendered files older than the TTL and returns how
// many were dropped.
func (s *ExportService) CleanupExpired(ttl time.Duration) int {
	removed, err := s.store.CleanupOlderThan(ttl)
	if err != nil {
		s.logger.Warn("cleanup expired reports", zap.Error(err))
	}
	return len(removed)
}

func (s *ExportService) buildDataset(ctx context.Context, job *models.ReportJob) (export.Dataset, string, error) {
	switch job.Type {
	case models.ReportStudentPerformance:
		rows, _, err := s.analytics.StudentPerformance(ctx, job.Params.CourseID)
		if err != nil {
			return export.Dataset{}, "", fmt.Errorf("load student performance: %w", err)
		}
		return studentDataset(rows), "Student Performance Report", nil
	case models.ReportCoursePerformance:
		rows, _, err := s.analytics.CoursePerformance(ctx)
		if err != nil {
			return export.Dataset{}, "", fmt.Errorf("load course performance: %w", err)
		}
		return courseDataset(rows), "Course Performance Report", nil
	case models.ReportSummary:
		stats, _, err := s.analytics.SummaryStats(ctx)
		if err != nil {
			return export.Dataset{}, "", fmt.Errorf("load summary stats: %w", err)
		}
		return summaryDataset(stats), "Platform Summary Report", nil
	default:
		return export.Dataset{}, "", fmt.Errorf("unsupported report type %q", job.Type)
	}
}

func studentDataset(rows []models.StudentReportRow) export.Dataset {
	ds := export.Dataset{
		Headers: []string{"Student ID", "Name", "Email", "Courses Enrolled", "Grade", "Score", "Status", "Compliance", "Attendance"},
	}
	for _, r := range rows {
		grade := "-"
		if r.Grade != nil {
			grade = string(*r.Grade)
		}
		score := "-"
		if r.Score != nil {
			score = strconv.FormatFloat(*r.Score, 'f', -1, 64)
		}
		ds.Rows = append(ds.Rows, []string{
			r.StudentID,
			r.StudentName,
			r.StudentEmail,
			r.CoursesEnrolled,
			grade,
			score,
			string(r.Status),
			string(r.Compliance),
			r.Attendance,
		})
	}
	return ds
}

func courseDataset(rows []models.CourseReportRow) export.Dataset {
	ds := export.Dataset{
		Headers: []string{"Course ID", "Title", "Type", "Enrolled", "Passed", "Failed", "Session Enrolled", "Session Attended", "Not Attended"},
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	for _, r := range rows {
		sessEnrolled, sessAttended, notAttended := "NA", "NA", "NA"
		if r.AttendanceStats != nil {
			sessEnrolled = strconv.Itoa(r.AttendanceStats.Enrolled)
			sessAttended = strconv.Itoa(r.AttendanceStats.Attended)
			notAttended = strconv.Itoa(r.AttendanceStats.NotAttended)
		}
		ds.Rows = append(ds.Rows, []string{
			r.ID,
			r.Title,
			string(r.Type),
			strconv.Itoa(r.Enrolled),
			strconv.Itoa(r.Passed),
			strconv.Itoa(r.Failed),
			sessEnrolled,
			sessAttended,
			notAttended,
		})
	}
	return ds
}

func summaryDataset(stats *models.SummaryStats) export.Dataset {
	return export.Dataset{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Courses", strconv.Itoa(stats.TotalCourses)},
			{"Total Enrolled", strconv.Itoa(stats.TotalEnrolled)},
			{"Total Passed", strconv.Itoa(stats.TotalPassed)},
			{"Total Failed", strconv.Itoa(stats.TotalFailed)},
			{"Total Students", strconv.Itoa(stats.TotalStudents)},
		},
	}
}
