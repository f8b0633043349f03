package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/learn-sphere/analytics-api/internal/models"
)

// courseRow maps the courses table; categories live in a TEXT[] column.
type courseRow struct {
	models.Course
	CategoryList pq.StringArray `db:"categories"`
}

func (r courseRow) toModel() models.Course {
	c := r.Course
	c.Categories = []string(r.CategoryList)
	return c
}

// CourseRepository manages persistence for the course catalog.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = "id, title, slug, summary, description, categories, duration, level, lessons, price, status, created_at, updated_at"

// List returns the whole catalog ordered by id.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	var rows []courseRow
	query := fmt.Sprintf("SELECT %s FROM courses ORDER BY id", courseColumns)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	courses := make([]models.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.toModel())
	}
	return courses, nil
}

// FindByID fetches one course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	var row courseRow
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, fmt.Errorf("find course %s: %w", id, err)
	}
	course := row.toModel()
	return &course, nil
}

// FindBySlug fetches one course by its slug.
func (r *CourseRepository) FindBySlug(ctx context.Context, slug string) (*models.Course, error) {
	var row courseRow
	query := fmt.Sprintf("SELECT %s FROM courses WHERE slug = $1", courseColumns)
	if err := r.db.GetContext(ctx, &row, query, slug); err != nil {
		return nil, fmt.Errorf("find course by slug: %w", err)
	}
	course := row.toModel()
	return &course, nil
}

// Create inserts a catalog entry.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `INSERT INTO courses (id, title, slug, summary, description, categories, duration, level, lessons, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	if _, err := r.db.ExecContext(ctx, query,
		course.ID, course.Title, course.Slug, course.Summary, course.Description,
		pq.StringArray(course.Categories), course.Duration, course.Level, course.Lessons,
		course.Price, course.Status, course.CreatedAt, course.UpdatedAt); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update replaces a catalog entry.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `UPDATE courses SET title = $2, slug = $3, summary = $4, description = $5,
		categories = $6, duration = $7, level = $8, lessons = $9, price = $10,
		status = $11, updated_at = $12 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		course.ID, course.Title, course.Slug, course.Summary, course.Description,
		pq.StringArray(course.Categories), course.Duration, course.Level, course.Lessons,
		course.Price, course.Status, course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("update course %s: not found", course.ID)
	}
	return nil
}

// Delete removes a catalog entry.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}
