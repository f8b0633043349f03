package memstore

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/learn-sphere/analytics-api/internal/models"
)

// Store is the in-memory record-store driver. It serves the demo roster
// without external infrastructure and exposes the same method surface as the
// Postgres-backed store, so the service layer is driver-agnostic. Not-found
// lookups return sql.ErrNoRows to match the SQL driver's contract.
type Store struct {
	mu           sync.RWMutex
	fetchLatency time.Duration

	users       map[string]models.User
	courses     map[string]models.Course
	enrollments []models.Enrollment
	submissions models.SubmissionSet
	attendance  models.AttendanceSet
	sessions    map[string]models.LiveSession
}

// New constructs an empty store. A non-zero latency is slept before every
// fetch to approximate a remote collaborator.
func New(fetchLatency time.Duration) *Store {
	return &Store{
		fetchLatency: fetchLatency,
		users:        make(map[string]models.User),
		courses:      make(map[string]models.Course),
		submissions:  make(models.SubmissionSet),
		attendance:   make(models.AttendanceSet),
		sessions:     make(map[string]models.LiveSession),
	}
}

func (s *Store) wait(ctx context.Context) error {
	if s.fetchLatency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.fetchLatency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// --- snapshot reads ---

func (s *Store) FetchCourses(ctx context.Context) ([]models.Course, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	courses := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (s *Store) FetchEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Enrollment, len(s.enrollments))
	copy(out, s.enrollments)
	return out, nil
}

func (s *Store) FetchSubmissions(ctx context.Context) (models.SubmissionSet, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := make(models.SubmissionSet, len(s.submissions))
	for _, byCourse := range s.submissions {
		for _, subs := range byCourse {
			for _, sub := range subs {
				set.Add(sub)
			}
		}
	}
	return set, nil
}

func (s *Store) FetchAttendance(ctx context.Context) (models.AttendanceSet, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := make(models.AttendanceSet, len(s.attendance))
	for _, bySession := range s.attendance {
		for _, rec := range bySession {
			set.Put(rec)
		}
	}
	return set, nil
}

func (s *Store) FetchUsers(ctx context.Context) ([]models.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Store) FetchLiveSessions(ctx context.Context) ([]models.LiveSession, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]models.LiveSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	return sessions, nil
}

// --- accounts ---

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email = strings.ToLower(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.ToLower(u.Email) == email {
			user := u
			return &user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

// --- catalog ---

func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.FetchCourses(ctx)
}

func (s *Store) FindCourseByID(ctx context.Context, id string) (*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (s *Store) FindCourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.courses {
		if c.Slug == slug {
			course := c
			return &course, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *Store) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[course.ID] = *course
	return nil
}

func (s *Store) UpdateCourse(ctx context.Context, course *models.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[course.ID]; !ok {
		return sql.ErrNoRows
	}
	s.courses[course.ID] = *course
	return nil
}

func (s *Store) DeleteCourse(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.courses, id)
	return nil
}

// --- roster ---

func (s *Store) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enrollments = append(s.enrollments, *enrollment)
	return nil
}

func (s *Store) DeleteEnrollmentsByCourse(ctx context.Context, courseID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.enrollments[:0]
	var removed int64
	for _, e := range s.enrollments {
		if e.CourseID == courseID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.enrollments = kept
	return removed, nil
}

func (s *Store) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions.Add(*sub)
	return nil
}

func (s *Store) GetAttendance(ctx context.Context, studentID, sessionID string) (*models.AttendanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.attendance.ForStudent(studentID)[sessionID]; ok {
		return &rec, nil
	}
	return nil, sql.ErrNoRows
}

func (s *Store) UpsertAttendance(ctx context.Context, rec *models.AttendanceRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendance.Put(*rec)
	return nil
}

func (s *Store) ListLiveSessions(ctx context.Context) ([]models.LiveSession, error) {
	return s.FetchLiveSessions(ctx)
}

func (s *Store) FindLiveSession(ctx context.Context, id string) (*models.LiveSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[id]; ok {
		return &sess, nil
	}
	return nil, sql.ErrNoRows
}
