package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/learn-sphere/analytics-api/internal/models"
)

// Store bundles the per-entity repositories behind the qualified method
// surface the service layer consumes. The memory-backed driver implements the
// same surface, so services never know which driver is active.
type Store struct {
	users       *UserRepository
	courses     *CourseRepository
	enrollments *EnrollmentRepository
	submissions *SubmissionRepository
	attendance  *AttendanceRepository
	sessions    *SessionRepository
}

// NewStore wires all repositories onto one database handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		users:       NewUserRepository(db),
		courses:     NewCourseRepository(db),
		enrollments: NewEnrollmentRepository(db),
		submissions: NewSubmissionRepository(db),
		attendance:  NewAttendanceRepository(db),
		sessions:    NewSessionRepository(db),
	}
}

// --- snapshot reads ---

func (s *Store) FetchCourses(ctx context.Context) ([]models.Course, error) {
	return s.courses.List(ctx)
}

func (s *Store) FetchEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	return s.enrollments.List(ctx)
}

func (s *Store) FetchSubmissions(ctx context.Context) (models.SubmissionSet, error) {
	return s.submissions.ListAll(ctx)
}

func (s *Store) FetchAttendance(ctx context.Context) (models.AttendanceSet, error) {
	return s.attendance.ListAll(ctx)
}

func (s *Store) FetchUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *Store) FetchLiveSessions(ctx context.Context) ([]models.LiveSession, error) {
	return s.sessions.List(ctx)
}

// --- accounts ---

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.users.Create(ctx, user)
}

// --- catalog ---

func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.courses.List(ctx)
}

func (s *Store) FindCourseByID(ctx context.Context, id string) (*models.Course, error) {
	return s.courses.FindByID(ctx, id)
}

func (s *Store) FindCourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	return s.courses.FindBySlug(ctx, slug)
}

func (s *Store) CreateCourse(ctx context.Context, course *models.Course) error {
	return s.courses.Create(ctx, course)
}

func (s *Store) UpdateCourse(ctx context.Context, course *models.Course) error {
	return s.courses.Update(ctx, course)
}

func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	return s.courses.Delete(ctx, id)
}

// --- roster ---

func (s *Store) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	return s.enrollments.Create(ctx, enrollment)
}

func (s *Store) DeleteEnrollmentsByCourse(ctx context.Context, courseID string) (int64, error) {
	return s.enrollments.DeleteByCourse(ctx, courseID)
}

func (s *Store) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	return s.submissions.Create(ctx, sub)
}

func (s *Store) GetAttendance(ctx context.Context, studentID, sessionID string) (*models.AttendanceRecord, error) {
	return s.attendance.Get(ctx, studentID, sessionID)
}

func (s *Store) UpsertAttendance(ctx context.Context, rec *models.AttendanceRecord) error {
	return s.attendance.Upsert(ctx, rec)
}

func (s *Store) ListLiveSessions(ctx context.Context) ([]models.LiveSession, error) {
	return s.sessions.List(ctx)
}

func (s *Store) FindLiveSession(ctx context.Context, id string) (*models.LiveSession, error) {
	return s.sessions.FindByID(ctx, id)
}
