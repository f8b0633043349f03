package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/learn-sphere/analytics-api/internal/models"
)

// SubmissionRepository manages persistence for graded submissions.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository constructs a new submission repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// ListAll returns every submission indexed by student then course. Insertion
// order within a (student, course) pair follows the id sequence so repeated
// loads index identically.
func (r *SubmissionRepository) ListAll(ctx context.Context) (models.SubmissionSet, error) {
	var subs []models.Submission
	query := "SELECT id, student_id, course_id, score, completed, due_date FROM submissions ORDER BY id"
	if err := r.db.SelectContext(ctx, &subs, query); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	set := make(models.SubmissionSet)
	for _, sub := range subs {
		set.Add(sub)
	}
	return set, nil
}

// Create inserts a submission.
func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	query := `INSERT INTO submissions (id, student_id, course_id, score, completed, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.StudentID, sub.CourseID, sub.Score, sub.Completed, sub.DueDate); err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}
