package models

import "time"

// Submission is a graded assessment result recorded for a (student, course)
// pair. Instructors append results over time; submissions are never deleted in
// the normal flow.
type Submission struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Score     float64   `db:"score" json:"score"`
	Completed bool      `db:"completed" json:"completed"`
	DueDate   time.Time `db:"due_date" json:"due_date"`
}

// SubmissionSet indexes submissions by student id then course id.
type SubmissionSet map[string]map[string][]Submission

// ForStudent returns the per-course submissions of one student. Missing
// students yield an empty map.
func (s SubmissionSet) ForStudent(studentID string) map[string][]Submission {
	if byCourse, ok := s[studentID]; ok {
		return byCourse
	}
	return map[string][]Submission{}
}

// For returns the submissions of a (student, course) pair.
func (s SubmissionSet) For(studentID, courseID string) []Submission {
	return s.ForStudent(studentID)[courseID]
}

// Add appends a submission under its (student, course) key.
func (s SubmissionSet) Add(sub Submission) {
	byCourse, ok := s[sub.StudentID]
	if !ok {
		byCourse = make(map[string][]Submission)
		s[sub.StudentID] = byCourse
	}
	byCourse[sub.CourseID] = append(byCourse[sub.CourseID], sub)
}
