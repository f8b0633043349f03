package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/learn-sphere/analytics-api/internal/models"
)

// Snapshot is an immutable read of every record-store collection, taken once
// per aggregation call. The aggregators below are pure with respect to the
// snapshot and never mutate it; two calls over the same snapshot yield
// identical rows in identical order. The collections may have been read at
// slightly different instants, so no cross-collection isolation is implied.
type Snapshot struct {
	Courses      []models.Course
	Enrollments  []models.Enrollment
	Submissions  models.SubmissionSet
	Attendance   models.AttendanceSet
	Users        []models.User
	LiveSessions []models.LiveSession
}

// Students filters the user collection to student accounts (or accounts with
// no role recorded, which are treated as students).
func (s *Snapshot) Students() []models.User {
	students := make([]models.User, 0, len(s.Users))
	for _, u := range s.Users {
		if u.IsStudent() {
			students = append(students, u)
		}
	}
	return students
}

// StudentPerformance produces one summary row per student. The set of courses
// a student is in is defined by their submission records, independent of the
// enrollment collection. With a course filter, only students having that
// course are emitted; without one, every known student appears, even with
// zero courses, so roster-completeness views stay complete. A course id with
// no matching catalog record is skipped silently.
func (s *Snapshot) StudentPerformance(courseFilter string, now time.Time) []models.StudentReportRow {
	courseByID := make(map[string]models.Course, len(s.Courses))
	for _, c := range s.Courses {
		courseByID[c.ID] = c
	}
	sessionsByCourse := make(map[string][]models.LiveSession)
	for _, sess := range s.LiveSessions {
		sessionsByCourse[sess.CourseID] = append(sessionsByCourse[sess.CourseID], sess)
	}

	rows := make([]models.StudentReportRow, 0, len(s.Users))
	for _, student := range s.Students() {
		byCourse := s.Submissions.ForStudent(student.ID)
		attendance := s.Attendance.ForStudent(student.ID)

		courseIDs := make([]string, 0, len(byCourse))
		for id := range byCourse {
			courseIDs = append(courseIDs, id)
		}
		sort.Strings(courseIDs)

		var (
			courseScores    []models.CourseScore
			totalScore      float64
			scoredCourses   int
			hasNonCompliant bool
			hasLiveData     bool
			attendanceDates []string
		)
		overall := models.StatusNotEnrolled

		for _, courseID := range courseIDs {
			course, ok := courseByID[courseID]
			if !ok {
				continue
			}
			if courseFilter != "" && courseID != courseFilter {
				continue
			}

			subs := byCourse[courseID]
			var sum float64
			completed := 0
			for _, sub := range subs {
				if sub.Completed {
					sum += sub.Score
					completed++
				}
			}

			var avg *float64
			var grade *models.Grade
			if completed > 0 {
				v := math.Round(sum / float64(completed))
				g := CalculateGrade(v)
				avg, grade = &v, &g
				totalScore += v
				scoredCourses++
			}

			overall = overall.Combine(courseStatus(len(subs), completed))

			if EvaluateCompliance(student.ID, courseID, s.Submissions, now) == models.NonCompliant {
				hasNonCompliant = true
			}

			if ResolveCourseType(course, s.LiveSessions) == models.CourseTypeLive {
				for _, sess := range sessionsByCourse[courseID] {
					rec, found := attendance[sess.ID]
					if !found || !rec.Enrolled {
						continue
					}
					hasLiveData = true
					if rec.Attended && rec.Date != nil {
						attendanceDates = append(attendanceDates, rec.Date.Format("2006-01-02"))
					}
				}
			}

			courseScores = append(courseScores, models.CourseScore{
				CourseID: courseID,
				Title:    course.Title,
				Grade:    grade,
				Score:    avg,
			})
		}

		if len(courseScores) == 0 && courseFilter != "" {
			continue
		}

		var overallScore *float64
		var overallGrade *models.Grade
		if scoredCourses > 0 {
			v := math.Round(totalScore / float64(scoredCourses))
			g := CalculateGrade(v)
			overallScore, overallGrade = &v, &g
		}

		compliance := models.ComplianceNA
		if hasNonCompliant {
			compliance = models.NonCompliant
		} else if len(courseScores) > 0 {
			compliance = models.Compliant
		}

		sort.Strings(attendanceDates)
		attendanceDisplay := "NA"
		if hasLiveData {
			if len(attendanceDates) > 0 {
				attendanceDisplay = strings.Join(attendanceDates, ", ")
			} else {
				attendanceDisplay = "Not Attended"
			}
		}

		coursesEnrolled := "N/A"
		if len(courseScores) > 0 {
			titles := make([]string, len(courseScores))
			for i, cs := range courseScores {
				titles[i] = cs.Title
			}
			coursesEnrolled = strings.Join(titles, ", ")
		}

		rows = append(rows, models.StudentReportRow{
			StudentID:       student.ID,
			StudentName:     student.Name,
			StudentEmail:    student.Email,
			CoursesEnrolled: coursesEnrolled,
			Courses:         courseScores,
			Grade:           overallGrade,
			Score:           overallScore,
			Status:          overall,
			Compliance:      compliance,
			Attendance:      attendanceDisplay,
		})
	}
	return rows
}

// CoursePerformance produces one summary row per catalog course. Enrollment
// is the raw record count referencing the course, not deduplicated by
// student; students are classified pass/fail only when they have at least one
// completed submission in the course.
func (s *Snapshot) CoursePerformance() []models.CourseReportRow {
	students := s.Students()
	rows := make([]models.CourseReportRow, 0, len(s.Courses))
	for _, course := range s.Courses {
		courseType := ResolveCourseType(course, s.LiveSessions)

		enrolled := 0
		for _, e := range s.Enrollments {
			if e.CourseID == course.ID {
				enrolled++
			}
		}

		passed, failed := 0, 0
		for _, student := range students {
			var sum float64
			completed := 0
			for _, sub := range s.Submissions.For(student.ID, course.ID) {
				if sub.Completed {
					sum += sub.Score
					completed++
				}
			}
			if completed == 0 {
				continue
			}
			if CalculateGrade(math.Round(sum / float64(completed))).Passing() {
				passed++
			} else {
				failed++
			}
		}

		var stats *models.AttendanceStats
		if courseType == models.CourseTypeLive {
			st := models.AttendanceStats{}
			for _, sess := range s.LiveSessions {
				if sess.CourseID != course.ID {
					continue
				}
				for _, student := range students {
					rec, ok := s.Attendance.ForStudent(student.ID)[sess.ID]
					if !ok || !rec.Enrolled {
						continue
					}
					st.Enrolled++
					if rec.Attended {
						st.Attended++
					}
				}
			}
			st.NotAttended = st.Enrolled - st.Attended
			stats = &st
		}

		row := models.CourseReportRow{
			Course:          course,
			Enrolled:        enrolled,
			Passed:          passed,
			Failed:          failed,
			AttendanceStats: stats,
		}
		row.Course.Type = courseType
		rows = append(rows, row)
	}
	return rows
}

// SummaryStats produces the platform-wide counters. TotalEnrolled counts
// distinct course ids among enrollment records; pass/fail verdicts flatten
// each student's completed submission scores across all courses into one
// average.
func (s *Snapshot) SummaryStats() models.SummaryStats {
	distinctCourses := make(map[string]struct{})
	for _, e := range s.Enrollments {
		distinctCourses[e.CourseID] = struct{}{}
	}

	students := s.Students()
	stats := models.SummaryStats{
		TotalCourses:  len(s.Courses),
		TotalEnrolled: len(distinctCourses),
		TotalStudents: len(students),
	}

	for _, student := range students {
		var sum float64
		n := 0
		for _, subs := range s.Submissions.ForStudent(student.ID) {
			for _, sub := range subs {
				if sub.Completed {
					sum += sub.Score
					n++
				}
			}
		}
		if n == 0 {
			continue
		}
		if CalculateGrade(sum / float64(n)).Passing() {
			stats.TotalPassed++
		} else {
			stats.TotalFailed++
		}
	}
	return stats
}

func courseStatus(total, completed int) models.CompletionStatus {
	switch {
	case total > 0 && completed == total:
		return models.StatusCompleted
	case completed > 0:
		return models.StatusInProgress
	default:
		return models.StatusEnrolled
	}
}
