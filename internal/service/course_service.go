package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/learn-sphere/analytics-api/internal/dto"
	"github.com/learn-sphere/analytics-api/internal/models"
	appErrors "github.com/learn-sphere/analytics-api/pkg/errors"
)

type courseStore interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	FindCourseByID(ctx context.Context, id string) (*models.Course, error)
	FindCourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id string) error
}

type cacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugCollapse = regexp.MustCompile(`-+`)
)

// NormalizeSlug lowercases, trims and dash-joins a slug candidate.
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugCollapse.ReplaceAllString(s, "-")
}

// CourseService manages the admin course catalog.
type CourseService struct {
	repo      courseStore
	analytics cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a course service.
func NewCourseService(repo courseStore, analytics cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, analytics: analytics, validator: validate, logger: logger}
}

// List returns catalog entries matching the filter with pagination metadata.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}

	filtered := courses[:0:0]
	for _, c := range courses {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Category != "" && !hasCategory(c.Categories, filter.Category) {
			continue
		}
		filtered = append(filtered, c)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}

	total := len(filtered)
	totalPages := (total + size - 1) / size
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	pagination := &models.Pagination{Page: page, PageSize: size, TotalItems: total, TotalPages: totalPages}
	return filtered[start:end], pagination, nil
}

// Get fetches one course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}
	return course, nil
}

// GetBySlug fetches one course by its normalized slug.
func (s *CourseService) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	course, err := s.repo.FindCourseBySlug(ctx, NormalizeSlug(slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}
	return course, nil
}

// Create inserts a new catalog entry. The slug is derived from the title when
// absent and must be unique.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	slug := NormalizeSlug(req.Slug)
	if slug == "" {
		slug = NormalizeSlug(req.Title)
	}
	if slug == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slug is required")
	}

	if err := s.ensureSlugFree(ctx, slug, ""); err != nil {
		return nil, err
	}

	status := models.CourseStatus(req.Status)
	if status == "" {
		status = models.CourseStatusDraft
	}

	now := time.Now().UTC()
	course := &models.Course{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Summary:     strings.TrimSpace(req.Summary),
		Description: req.Description,
		Categories:  req.Categories,
		Duration:    req.Duration,
		Level:       req.Level,
		Lessons:     req.Lessons,
		Price:       req.Price,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	s.invalidate(ctx)
	return course, nil
}

// Update replaces a catalog entry.
func (s *CourseService) Update(ctx context.Context, id string, req dto.UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := NormalizeSlug(req.Slug)
	if slug == "" {
		slug = NormalizeSlug(req.Title)
	}
	if slug != course.Slug {
		if err := s.ensureSlugFree(ctx, slug, course.ID); err != nil {
			return nil, err
		}
	}

	course.Title = strings.TrimSpace(req.Title)
	course.Slug = slug
	course.Summary = strings.TrimSpace(req.Summary)
	course.Description = req.Description
	course.Categories = req.Categories
	course.Duration = req.Duration
	course.Level = req.Level
	course.Lessons = req.Lessons
	course.Price = req.Price
	if req.Status != "" {
		course.Status = models.CourseStatus(req.Status)
	}
	course.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateCourse(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}

	s.invalidate(ctx)
	return course, nil
}

// Delete removes a catalog entry. Submissions referencing the deleted course
// become dangling and are skipped by the aggregation engine.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteCourse(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	s.invalidate(ctx)
	return nil
}

func (s *CourseService) ensureSlugFree(ctx context.Context, slug, excludeID string) error {
	existing, err := s.repo.FindCourseBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slug")
	}
	if existing.ID == excludeID {
		return nil
	}
	return appErrors.ErrSlugTaken
}

func (s *CourseService) invalidate(ctx context.Context) {
	if s.analytics == nil {
		return
	}
	if err := s.analytics.InvalidateCache(ctx); err != nil {
		s.logger.Warn("invalidate analytics cache", zap.Error(err))
	}
}

func hasCategory(categories []string, want string) bool {
	for _, c := range categories {
		if strings.EqualFold(c, want) {
			return true
		}
	}
	return false
}
