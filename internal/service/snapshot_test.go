package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learn-sphere/analytics-api/internal/models"
)

var testNow = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func testSnapshot() *Snapshot {
	past := testNow.Add(-72 * time.Hour)

	subs := make(models.SubmissionSet)
	// Alice: two completed courses, averages 80 (A) and 65 (B).
	subs.Add(models.Submission{ID: "a1", StudentID: "alice", CourseID: "c1", Score: 90, Completed: true, DueDate: past})
	subs.Add(models.Submission{ID: "a2", StudentID: "alice", CourseID: "c1", Score: 70, Completed: true, DueDate: past})
	subs.Add(models.Submission{ID: "a3", StudentID: "alice", CourseID: "c2", Score: 65, Completed: true, DueDate: past})
	// Bob: one course in progress with a past-due incomplete submission.
	subs.Add(models.Submission{ID: "b1", StudentID: "bob", CourseID: "c1", Score: 40, Completed: true, DueDate: past})
	subs.Add(models.Submission{ID: "b2", StudentID: "bob", CourseID: "c1", Score: 0, Completed: false, DueDate: past})
	// Carol: untouched course, plus a submission against a deleted course.
	subs.Add(models.Submission{ID: "c1", StudentID: "carol", CourseID: "c2", Score: 0, Completed: false, DueDate: testNow.Add(72 * time.Hour)})
	subs.Add(models.Submission{ID: "c2", StudentID: "carol", CourseID: "ghost", Score: 99, Completed: true, DueDate: past})

	att := make(models.AttendanceSet)
	d1 := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	att.Put(models.AttendanceRecord{StudentID: "alice", SessionID: "ls-1", Enrolled: true, Attended: true, Date: &d1})
	att.Put(models.AttendanceRecord{StudentID: "alice", SessionID: "ls-2", Enrolled: true, Attended: true, Date: &d2})
	att.Put(models.AttendanceRecord{StudentID: "bob", SessionID: "ls-1", Enrolled: true, Attended: false})

	return &Snapshot{
		Courses: []models.Course{
			{ID: "c1", Title: "Go Fundamentals"},
			{ID: "c2", Title: "Distributed Systems"},
		},
		Enrollments: []models.Enrollment{
			{ID: "e1", CourseID: "c1"},
			{ID: "e2", CourseID: "c1"},
			{ID: "e3", CourseID: "c2"},
		},
		Submissions: subs,
		Attendance:  att,
		Users: []models.User{
			{ID: "alice", Name: "Alice", Email: "alice@example.com", Role: models.RoleStudent},
			{ID: "bob", Name: "Bob", Email: "bob@example.com", Role: models.RoleStudent},
			{ID: "carol", Name: "Carol", Email: "carol@example.com"},
			{ID: "root", Name: "Root", Email: "root@example.com", Role: models.RoleAdmin},
		},
		LiveSessions: []models.LiveSession{
			{ID: "ls-1", CourseID: "c1"},
			{ID: "ls-2", CourseID: "c1"},
		},
	}
}

func rowFor(t *testing.T, rows []models.StudentReportRow, id string) models.StudentReportRow {
	t.Helper()
	for _, r := range rows {
		if r.StudentID == id {
			return r
		}
	}
	t.Fatalf("no row for student %s", id)
	return models.StudentReportRow{}
}

func TestStudentPerformanceUnfiltered(t *testing.T) {
	snap := testSnapshot()
	rows := snap.StudentPerformance("", testNow)

	// Admins are excluded, every student appears.
	require.Len(t, rows, 3)

	alice := rowFor(t, rows, "alice")
	require.NotNil(t, alice.Score)
	// Per-course averages 80 and 65 round to an overall of 73, grade B.
	assert.Equal(t, float64(73), *alice.Score)
	require.NotNil(t, alice.Grade)
	assert.Equal(t, models.GradeB, *alice.Grade)
	assert.Equal(t, models.StatusCompleted, alice.Status)
	assert.Equal(t, models.Compliant, alice.Compliance)
	assert.Equal(t, "Go Fundamentals, Distributed Systems", alice.CoursesEnrolled)
	assert.Equal(t, "2026-01-10, 2026-01-12", alice.Attendance)

	require.Len(t, alice.Courses, 2)
	assert.Equal(t, float64(80), *alice.Courses[0].Score)
	assert.Equal(t, models.GradeA, *alice.Courses[0].Grade)

	bob := rowFor(t, rows, "bob")
	assert.Equal(t, models.StatusInProgress, bob.Status)
	assert.Equal(t, models.NonCompliant, bob.Compliance)
	assert.Equal(t, "Not Attended", bob.Attendance)
	require.NotNil(t, bob.Score)
	assert.Equal(t, float64(40), *bob.Score)

	carol := rowFor(t, rows, "carol")
	// The dangling "ghost" course is skipped; only c2 remains, untouched.
	require.Len(t, carol.Courses, 1)
	assert.Equal(t, "c2", carol.Courses[0].CourseID)
	assert.Nil(t, carol.Score)
	assert.Nil(t, carol.Grade)
	assert.Equal(t, models.StatusEnrolled, carol.Status)
	assert.Equal(t, models.Compliant, carol.Compliance)
	assert.Equal(t, "NA", carol.Attendance)
}

func TestStudentPerformanceCourseFilter(t *testing.T) {
	snap := testSnapshot()
	rows := snap.StudentPerformance("c1", testNow)

	// Carol has no submissions in c1 and is dropped.
	require.Len(t, rows, 2)
	ids := []string{rows[0].StudentID, rows[1].StudentID}
	assert.ElementsMatch(t, []string{"alice", "bob"}, ids)

	alice := rowFor(t, rows, "alice")
	require.Len(t, alice.Courses, 1)
	assert.Equal(t, "c1", alice.Courses[0].CourseID)
	require.NotNil(t, alice.Score)
	assert.Equal(t, float64(80), *alice.Score)
}

func TestStudentPerformanceStatusPrecedence(t *testing.T) {
	// A fully completed course combined with an untouched one reports
	// Enrolled, not Completed.
	subs := make(models.SubmissionSet)
	subs.Add(models.Submission{ID: "1", StudentID: "s", CourseID: "c1", Score: 90, Completed: true})
	subs.Add(models.Submission{ID: "2", StudentID: "s", CourseID: "c2", Score: 0, Completed: false})

	snap := &Snapshot{
		Courses: []models.Course{
			{ID: "c1", Title: "One"},
			{ID: "c2", Title: "Two"},
		},
		Submissions: subs,
		Attendance:  make(models.AttendanceSet),
		Users:       []models.User{{ID: "s", Name: "S", Role: models.RoleStudent}},
	}

	rows := snap.StudentPerformance("", testNow)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StatusEnrolled, rows[0].Status)
}

func TestStudentPerformanceDeterministic(t *testing.T) {
	snap := testSnapshot()
	first := snap.StudentPerformance("", testNow)
	second := snap.StudentPerformance("", testNow)
	assert.Equal(t, first, second)
}

func TestCoursePerformance(t *testing.T) {
	snap := testSnapshot()
	rows := snap.CoursePerformance()
	require.Len(t, rows, 2)

	c1 := rows[0]
	require.Equal(t, "c1", c1.ID)
	assert.Equal(t, models.CourseTypeLive, c1.Type)
	// Raw record count, not distinct students.
	assert.Equal(t, 2, c1.Enrolled)
	assert.Equal(t, 1, c1.Passed)
	assert.Equal(t, 1, c1.Failed)
	require.NotNil(t, c1.AttendanceStats)
	assert.Equal(t, 3, c1.AttendanceStats.Enrolled)
	assert.Equal(t, 2, c1.AttendanceStats.Attended)
	assert.Equal(t, 1, c1.AttendanceStats.NotAttended)

	c2 := rows[1]
	require.Equal(t, "c2", c2.ID)
	assert.Equal(t, models.CourseTypeSelfPaced, c2.Type)
	assert.Nil(t, c2.AttendanceStats)
	// Carol has no completed submission in c2 and is not classified.
	assert.Equal(t, 1, c2.Passed)
	assert.Equal(t, 0, c2.Failed)
}

func TestCoursePerformancePassFailBands(t *testing.T) {
	subs := make(models.SubmissionSet)
	subs.Add(models.Submission{ID: "1", StudentID: "a", CourseID: "c", Score: 85, Completed: true})
	subs.Add(models.Submission{ID: "2", StudentID: "b", CourseID: "c", Score: 60, Completed: true})
	subs.Add(models.Submission{ID: "3", StudentID: "d", CourseID: "c", Score: 40, Completed: true})

	snap := &Snapshot{
		Courses:     []models.Course{{ID: "c", Title: "C"}},
		Submissions: subs,
		Attendance:  make(models.AttendanceSet),
		Users: []models.User{
			{ID: "a", Role: models.RoleStudent},
			{ID: "b", Role: models.RoleStudent},
			{ID: "d", Role: models.RoleStudent},
		},
	}

	rows := snap.CoursePerformance()
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Passed)
	assert.Equal(t, 1, rows[0].Failed)
}

func TestSummaryStats(t *testing.T) {
	snap := testSnapshot()
	stats := snap.SummaryStats()

	assert.Equal(t, 2, stats.TotalCourses)
	// Distinct course ids among enrollment records, not record count.
	assert.Equal(t, 2, stats.TotalEnrolled)
	assert.Equal(t, 3, stats.TotalStudents)
	// Alice flattens to (90+70+65)/3 = 75 -> pass; Bob 40 -> fail;
	// Carol's only completed score sits on the dangling course and still
	// counts here: 99 -> pass.
	assert.Equal(t, 2, stats.TotalPassed)
	assert.Equal(t, 1, stats.TotalFailed)
}

func TestSummaryStatsUnroundedBoundary(t *testing.T) {
	// 49.5 would round to 50 (a pass) but summary verdicts use the raw mean.
	subs := make(models.SubmissionSet)
	subs.Add(models.Submission{ID: "1", StudentID: "s", CourseID: "c", Score: 49, Completed: true})
	subs.Add(models.Submission{ID: "2", StudentID: "s", CourseID: "c", Score: 50, Completed: true})

	snap := &Snapshot{
		Courses:     []models.Course{{ID: "c"}},
		Submissions: subs,
		Attendance:  make(models.AttendanceSet),
		Users:       []models.User{{ID: "s", Role: models.RoleStudent}},
	}

	stats := snap.SummaryStats()
	assert.Equal(t, 0, stats.TotalPassed)
	assert.Equal(t, 1, stats.TotalFailed)
}
