package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/learn-sphere/analytics-api/internal/models"
)

// EnrollmentRepository manages persistence for enrollment records.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs a new enrollment repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns every enrollment record.
func (r *EnrollmentRepository) List(ctx context.Context) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	query := "SELECT id, course_id, title, level, lessons, created_at FROM enrollments ORDER BY created_at"
	if err := r.db.SelectContext(ctx, &enrollments, query); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// Create inserts an enrollment record.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `INSERT INTO enrollments (id, course_id, title, level, lessons, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query,
		enrollment.ID, enrollment.CourseID, enrollment.Title, enrollment.Level,
		enrollment.Lessons, enrollment.CreatedAt); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// DeleteByCourse removes every enrollment record for a course and reports how
// many rows were dropped.
func (r *EnrollmentRepository) DeleteByCourse(ctx context.Context, courseID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM enrollments WHERE course_id = $1", courseID)
	if err != nil {
		return 0, fmt.Errorf("delete enrollments: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted enrollments: %w", err)
	}
	return rows, nil
}
