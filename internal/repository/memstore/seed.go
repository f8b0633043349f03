package memstore

import (
	"fmt"
	"time"

	"github.com/learn-sphere/analytics-api/internal/models"
)

// Seed loads the demo roster: fifteen students spread over three courses,
// two submissions per (student, course) pair, and live-session attendance for
// six of them. Due dates are relative to now so compliance outcomes stay
// stable: students 3, 8, 10 and 13 carry a past-due incomplete submission.
func (s *Store) Seed() {
	now := time.Now().UTC()
	day := 24 * time.Hour

	s.mu.Lock()
	defer s.mu.Unlock()

	names := []string{
		"John Doe", "Jane Smith", "Bob Johnson", "Alice Williams", "Charlie Brown",
		"Diana Prince", "Eve Davis", "Frank Miller", "Grace Lee", "Henry Wilson",
		"Ivy Chen", "Jack Taylor", "Sarah Martinez", "Michael Anderson", "Emma Thompson",
	}
	for i, name := range names {
		email := fmt.Sprintf("student%d@example.com", i+1)
		s.users[email] = models.User{
			ID:        email,
			Name:      name,
			Email:     email,
			Role:      models.RoleStudent,
			CreatedAt: now,
		}
	}

	courses := []models.Course{
		{ID: "1", Title: "React Basics", Slug: "react-basics", Level: "beginner", Lessons: 120, Status: models.CourseStatusPublished},
		{ID: "2", Title: "JavaScript Deep Dive", Slug: "javascript-deep-dive", Level: "intermediate", Lessons: 80, Status: models.CourseStatusPublished},
		{ID: "3", Title: ".NET Fundamentals", Slug: "net-fundamentals", Level: "beginner", Lessons: 45, Status: models.CourseStatusPublished},
	}
	for _, c := range courses {
		c.CreatedAt = now
		c.UpdatedAt = now
		s.courses[c.ID] = c
	}

	sessions := []models.LiveSession{
		{ID: "ls-101", Title: "Intro to DSA - Live", CourseID: "1", StartTime: time.Date(2025, 12, 20, 18, 0, 0, 0, time.UTC)},
		{ID: "ls-102", Title: "System Design: Caching & Queues", CourseID: "1", StartTime: time.Date(2025, 12, 22, 19, 30, 0, 0, time.UTC)},
		{ID: "ls-103", Title: "Frontend Deep Dive: Performance", CourseID: "2", StartTime: time.Date(2025, 12, 25, 17, 0, 0, 0, time.UTC)},
	}
	for _, sess := range sessions {
		s.sessions[sess.ID] = sess
	}

	type scored struct {
		score     float64
		completed bool
		daysAgo   int
	}
	seedSubs := func(student int, courseID string, subs ...scored) {
		studentID := fmt.Sprintf("student%d@example.com", student)
		for i, sc := range subs {
			s.submissions.Add(models.Submission{
				ID:        fmt.Sprintf("%s-%s-%d", studentID, courseID, i+1),
				StudentID: studentID,
				CourseID:  courseID,
				Score:     sc.score,
				Completed: sc.completed,
				DueDate:   now.Add(-time.Duration(sc.daysAgo) * day),
			})
		}
	}

	// Students 1-5 take one course, 6-10 two, 11-15 all three. Incomplete
	// rows with past due dates make students 3, 8, 10 and 13 non-compliant.
	seedSubs(1, "1", scored{85, true, 7}, scored{90, true, 5})
	seedSubs(2, "1", scored{65, true, 7}, scored{70, true, 5})
	seedSubs(3, "1", scored{45, true, 7}, scored{40, false, 10})
	seedSubs(4, "2", scored{88, true, 6}, scored{92, true, 4})
	seedSubs(5, "3", scored{72, true, 5}, scored{68, true, 3})
	seedSubs(6, "1", scored{82, true, 7}, scored{85, true, 5})
	seedSubs(6, "2", scored{68, true, 6}, scored{72, true, 4})
	seedSubs(7, "1", scored{75, true, 7}, scored{78, true, 5})
	seedSubs(7, "2", scored{55, true, 6}, scored{48, true, 4})
	seedSubs(8, "1", scored{42, true, 7}, scored{45, false, 8})
	seedSubs(8, "3", scored{65, true, 5}, scored{70, true, 3})
	seedSubs(9, "2", scored{90, true, 6}, scored{88, true, 4})
	seedSubs(9, "3", scored{85, true, 5}, scored{92, true, 3})
	seedSubs(10, "1", scored{48, true, 7}, scored{42, false, 9})
	seedSubs(10, "3", scored{45, true, 5}, scored{40, true, 3})
	seedSubs(11, "1", scored{88, true, 7}, scored{85, true, 5})
	seedSubs(11, "2", scored{72, true, 6}, scored{68, true, 4})
	seedSubs(11, "3", scored{52, true, 5}, scored{48, true, 3})
	seedSubs(12, "1", scored{75, true, 7}, scored{78, true, 5})
	seedSubs(12, "2", scored{82, true, 6}, scored{85, true, 4})
	seedSubs(12, "3", scored{70, true, 5}, scored{72, true, 3})
	seedSubs(13, "1", scored{45, true, 7}, scored{42, false, 9})
	seedSubs(13, "2", scored{48, true, 6}, scored{50, true, 4})
	seedSubs(13, "3", scored{40, true, 5}, scored{38, false, 8})
	seedSubs(14, "1", scored{95, true, 7}, scored{92, true, 5})
	seedSubs(14, "2", scored{88, true, 6}, scored{90, true, 4})
	seedSubs(14, "3", scored{85, true, 5}, scored{88, true, 3})
	seedSubs(15, "1", scored{70, true, 7}, scored{75, true, 5})
	seedSubs(15, "2", scored{48, true, 6}, scored{52, true, 4})
	seedSubs(15, "3", scored{85, true, 5}, scored{90, true, 3})

	attend := func(student int, sessionID string, attended bool, date string) {
		studentID := fmt.Sprintf("student%d@example.com", student)
		rec := models.AttendanceRecord{StudentID: studentID, SessionID: sessionID, Enrolled: true, Attended: attended}
		if attended && date != "" {
			d, _ := time.Parse("2006-01-02", date)
			rec.Date = &d
		}
		s.attendance.Put(rec)
	}

	attend(1, "ls-101", true, "2026-01-10")
	attend(1, "ls-102", true, "2026-01-12")
	attend(4, "ls-101", false, "")
	attend(4, "ls-102", false, "")
	attend(6, "ls-101", true, "2026-01-10")
	attend(6, "ls-102", false, "")
	attend(9, "ls-101", true, "2026-01-10")
	attend(9, "ls-102", true, "2026-01-12")
	attend(9, "ls-103", true, "2026-01-14")
	attend(11, "ls-101", false, "")
	attend(11, "ls-102", true, "2026-01-12")
	attend(14, "ls-101", true, "2026-01-10")
	attend(14, "ls-102", true, "2026-01-12")
	attend(14, "ls-103", true, "2026-01-14")

	enroll := func(courseID string, n int) {
		course := s.courses[courseID]
		for i := 0; i < n; i++ {
			s.enrollments = append(s.enrollments, models.Enrollment{
				ID:        fmt.Sprintf("enr-%s-%d", courseID, len(s.enrollments)+1),
				CourseID:  courseID,
				Title:     course.Title,
				Level:     course.Level,
				Lessons:   course.Lessons,
				CreatedAt: now,
			})
		}
	}

	enroll("1", 12)
	enroll("2", 9)
	enroll("3", 9)
}
