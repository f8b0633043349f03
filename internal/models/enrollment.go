package models

import "time"

// Enrollment is a weak association referencing a course. It carries no student
// identifier, so rows for the same course cannot be told apart as distinct
// students versus duplicate inserts. Counts derived from this collection are
// raw record counts; that data-quality gap is preserved deliberately.
type Enrollment struct {
	ID        string    `db:"id" json:"id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	Title     string    `db:"title" json:"title"`
	Level     string    `db:"level" json:"level"`
	Lessons   int       `db:"lessons" json:"lessons"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
