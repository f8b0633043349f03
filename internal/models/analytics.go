package models

// Grade is the three-band letter classification of a numeric average.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// Passing reports whether the grade counts as a pass (A or B).
func (g Grade) Passing() bool {
	return g == GradeA || g == GradeB
}

// Compliance states whether a student has any past-due, incomplete submission.
type Compliance string

const (
	Compliant    Compliance = "Compliant"
	NonCompliant Compliance = "Non-Compliant"
	ComplianceNA Compliance = "N/A"
)

// CompletionStatus is the per-course (and aggregated) progress state. The
// aggregate across courses is a max-precedence reduction, not a simple OR:
// any In Progress course wins, then Enrolled, then Completed. A student whose
// courses are all Completed except one untouched Enrolled course therefore
// reports Enrolled.
type CompletionStatus string

const (
	StatusNotEnrolled CompletionStatus = "Not Enrolled"
	StatusCompleted   CompletionStatus = "Completed"
	StatusEnrolled    CompletionStatus = "Enrolled"
	StatusInProgress  CompletionStatus = "In Progress"
)

// Rank orders statuses by aggregation precedence.
func (s CompletionStatus) Rank() int {
	switch s {
	case StatusInProgress:
		return 3
	case StatusEnrolled:
		return 2
	case StatusCompleted:
		return 1
	default:
		return 0
	}
}

// Combine returns the higher-precedence of the two statuses.
func (s CompletionStatus) Combine(other CompletionStatus) CompletionStatus {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// CourseScore summarises one course inside a student report row. Grade and
// Score are nil when the student has no completed submission in the course.
type CourseScore struct {
	CourseID string   `json:"course_id"`
	Title    string   `json:"title"`
	Grade    *Grade   `json:"grade"`
	Score    *float64 `json:"score"`
}

// StudentReportRow is the per-student performance summary.
type StudentReportRow struct {
	StudentID       string           `json:"student_id"`
	StudentName     string           `json:"student_name"`
	StudentEmail    string           `json:"student_email"`
	CoursesEnrolled string           `json:"courses_enrolled"`
	Courses         []CourseScore    `json:"courses"`
	Grade           *Grade           `json:"grade"`
	Score           *float64         `json:"score"`
	Status          CompletionStatus `json:"status"`
	Compliance      Compliance       `json:"compliance"`
	Attendance      string           `json:"attendance"`
}

// AttendanceStats aggregates (student, session) pairs for a live course.
type AttendanceStats struct {
	Enrolled    int `json:"enrolled"`
	Attended    int `json:"attended"`
	NotAttended int `json:"not_attended"`
}

// CourseReportRow is the per-course performance summary. The embedded course
// carries the resolved Type; AttendanceStats is nil for Self-Paced courses;
// Enrolled is the raw enrollment record count.
type CourseReportRow struct {
	Course
	Enrolled        int              `json:"enrolled"`
	Passed          int              `json:"passed"`
	Failed          int              `json:"failed"`
	AttendanceStats *AttendanceStats `json:"attendance_stats"`
}

// SummaryStats holds the platform-wide counters. TotalEnrolled is the number
// of distinct course ids among enrollment records, not distinct students.
type SummaryStats struct {
	TotalCourses  int `json:"total_courses"`
	TotalEnrolled int `json:"total_enrolled"`
	TotalPassed   int `json:"total_passed"`
	TotalFailed   int `json:"total_failed"`
	TotalStudents int `json:"total_students"`
}

// Pagination describes list slicing metadata in responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
