package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/learn-sphere/analytics-api/internal/models"
)

// AttendanceRepository manages persistence for live-session attendance.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs a new attendance repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListAll returns every attendance record indexed by student then session.
func (r *AttendanceRepository) ListAll(ctx context.Context) (models.AttendanceSet, error) {
	var records []models.AttendanceRecord
	query := "SELECT student_id, session_id, enrolled, attended, date FROM attendance"
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	set := make(models.AttendanceSet)
	for _, rec := range records {
		set.Put(rec)
	}
	return set, nil
}

// Get fetches the attendance record for one (student, session) pair.
func (r *AttendanceRepository) Get(ctx context.Context, studentID, sessionID string) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	query := "SELECT student_id, session_id, enrolled, attended, date FROM attendance WHERE student_id = $1 AND session_id = $2"
	if err := r.db.GetContext(ctx, &rec, query, studentID, sessionID); err != nil {
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return &rec, nil
}

// Upsert writes an attendance record, replacing any existing row for the
// (student, session) pair.
func (r *AttendanceRepository) Upsert(ctx context.Context, rec *models.AttendanceRecord) error {
	query := `INSERT INTO attendance (student_id, session_id, enrolled, attended, date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (student_id, session_id)
		DO UPDATE SET enrolled = EXCLUDED.enrolled, attended = EXCLUDED.attended, date = EXCLUDED.date`
	if _, err := r.db.ExecContext(ctx, query,
		rec.StudentID, rec.SessionID, rec.Enrolled, rec.Attended, rec.Date); err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}
