package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learn-sphere/analytics-api/internal/models"
	"github.com/learn-sphere/analytics-api/pkg/storage"
)

type fakePerformanceProvider struct {
	students []models.StudentReportRow
	courses  []models.CourseReportRow
	summary  models.SummaryStats
}

func (f *fakePerformanceProvider) StudentPerformance(ctx context.Context, courseID string) ([]models.StudentReportRow, bool, error) {
	return f.students, false, nil
}

func (f *fakePerformanceProvider) CoursePerformance(ctx context.Context) ([]models.CourseReportRow, bool, error) {
	return f.courses, false, nil
}

func (f *fakePerformanceProvider) SummaryStats(ctx context.Context) (*models.SummaryStats, bool, error) {
	summary := f.summary
	return &summary, false, nil
}

func newTestExportService(t *testing.T, provider performanceProvider) (*ExportService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-signing-secret", time.Hour)
	return NewExportService(provider, store, signer, "/api/v1", zap.NewNop()), dir
}

func TestExportGenerateCSV(t *testing.T) {
	score := 80.0
	grade := models.GradeA
	provider := &fakePerformanceProvider{
		students: []models.StudentReportRow{
			{
				StudentID:       "s1",
				StudentName:     "Alice",
				StudentEmail:    "alice@example.com",
				CoursesEnrolled: "React Basics",
				Grade:           &grade,
				Score:           &score,
				Status:          models.StatusCompleted,
				Compliance:      models.Compliant,
				Attendance:      "2026-01-10",
			},
			{StudentID: "s2", StudentName: "Bob", Status: models.StatusEnrolled, Compliance: models.Compliant, Attendance: "NA"},
		},
	}
	svc, dir := newTestExportService(t, provider)

	job := &models.ReportJob{
		ID:     "job-1",
		Type:   models.ReportStudentPerformance,
		Params: models.ReportJobParams{Format: models.ReportFormatCSV},
	}
	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, "job-1.csv", result.RelativePath)
	assert.Equal(t, models.ReportFormatCSV, result.Format)
	assert.True(t, strings.HasPrefix(result.URL, "/api/v1/reports/download?token="))

	raw, err := os.ReadFile(filepath.Join(dir, "job-1.csv"))
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "Student ID,Name,Email")
	assert.Contains(t, content, "s1,Alice,alice@example.com,React Basics,A,80,Completed,Compliant,2026-01-10")
	assert.Contains(t, content, "s2,Bob,,,-,-,Enrolled,Compliant,NA", "nil grade and score render as dashes")
}

func TestExportGeneratePDF(t *testing.T) {
	provider := &fakePerformanceProvider{
		summary: models.SummaryStats{TotalCourses: 3, TotalEnrolled: 5, TotalPassed: 4, TotalFailed: 1, TotalStudents: 5},
	}
	svc, dir := newTestExportService(t, provider)

	job := &models.ReportJob{
		ID:     "job-2",
		Type:   models.ReportSummary,
		Params: models.ReportJobParams{Format: models.ReportFormatPDF},
	}
	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, "job-2.pdf", result.RelativePath)
	assert.Equal(t, models.ReportFormatPDF, result.Format)

	raw, err := os.ReadFile(filepath.Join(dir, "job-2.pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"), "rendered file must be a PDF document")
}

func TestExportOpenRoundtrip(t *testing.T) {
	provider := &fakePerformanceProvider{
		courses: []models.CourseReportRow{
			{
				Course:   models.Course{ID: "c2", Title: "Later", Type: models.CourseTypeSelfPaced},
				Enrolled: 1, Passed: 1,
			},
			{
				Course:   models.Course{ID: "c1", Title: "First", Type: models.CourseTypeLive},
				Enrolled: 2, Passed: 1, Failed: 1,
				AttendanceStats: &models.AttendanceStats{Enrolled: 3, Attended: 2, NotAttended: 1},
			},
		},
	}
	svc, _ := newTestExportService(t, provider)

	job := &models.ReportJob{
		ID:     "job-3",
		Type:   models.ReportCoursePerformance,
		Params: models.ReportJobParams{Format: models.ReportFormatCSV},
	}
	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)

	download, jobID, err := svc.Open(result.Token)
	require.NoError(t, err)
	defer download.File.Close()
	assert.Equal(t, "job-3", jobID)
	assert.Equal(t, models.ReportFormatCSV, download.Format)

	raw, err := io.ReadAll(download.File)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "c1,"), "course rows are sorted by id")
	assert.Contains(t, lines[1], "3,2,1")
	assert.Contains(t, lines[2], "NA,NA,NA", "self-paced courses have no attendance stats")
}

func TestExportOpenRejectsTamperedToken(t *testing.T) {
	provider := &fakePerformanceProvider{}
	svc, _ := newTestExportService(t, provider)

	job := &models.ReportJob{ID: "job-4", Type: models.ReportSummary, Params: models.ReportJobParams{Format: models.ReportFormatCSV}}
	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)

	_, _, err = svc.Open(result.Token + "x")
	assert.Error(t, err)
}

func TestExportCleanupExpired(t *testing.T) {
	provider := &fakePerformanceProvider{}
	svc, dir := newTestExportService(t, provider)

	job := &models.ReportJob{ID: "job-5", Type: models.ReportSummary, Params: models.ReportJobParams{Format: models.ReportFormatCSV}}
	_, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "job-5.csv"), stale, stale))

	assert.Equal(t, 1, svc.CleanupExpired(24*time.Hour))
	_, err = os.Stat(filepath.Join(dir, "job-5.csv"))
	assert.True(t, os.IsNotExist(err))
}
