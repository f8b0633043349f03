package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learn-sphere/analytics-api/internal/models"
)

func TestCourseRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "slug", "summary", "description", "categories", "duration", "level", "lessons", "price", "status", "created_at", "updated_at"}).
		AddRow("c1", "React Basics", "react-basics", "", "", `{Frontend,Web}`, "6h", "beginner", 12, 49.99, "published", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, slug, summary, description, categories, duration, level, lessons, price, status, created_at, updated_at FROM courses WHERE id = $1")).
		WithArgs("c1").
		WillReturnRows(rows)

	course, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "react-basics", course.Slug)
	assert.Equal(t, []string{"Frontend", "Web"}, course.Categories, "TEXT[] column scans into Categories")
	assert.Equal(t, 12, course.Lessons)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("INSERT INTO courses").
		WithArgs("c1", "React Basics", "react-basics", "", "", sqlmock.AnyArg(), "", "beginner", 12, 0.0, models.CourseStatusDraft, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	now := time.Now().UTC()
	err := repo.Create(context.Background(), &models.Course{
		ID:         "c1",
		Title:      "React Basics",
		Slug:       "react-basics",
		Categories: []string{"Frontend"},
		Level:      "beginner",
		Lessons:    12,
		Status:     models.CourseStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryUpdateNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("UPDATE courses SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Course{ID: "missing", Title: "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("DELETE FROM courses WHERE id").
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
