package dto

import "time"

// AddAssessmentRequest records one graded submission for a (student, course)
// pair. DueDate governs compliance evaluation.
type AddAssessmentRequest struct {
	Score     float64   `json:"score" validate:"gte=0,lte=100"`
	Completed bool      `json:"completed"`
	DueDate   time.Time `json:"due_date" validate:"required"`
}

// MarkAttendanceRequest toggles the attended flag for a session enrollment.
type MarkAttendanceRequest struct {
	Attended bool       `json:"attended"`
	Date     *time.Time `json:"date,omitempty"`
}

// EnrollCourseRequest enrolls the acting student into a course.
type EnrollCourseRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}
