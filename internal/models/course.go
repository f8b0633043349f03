package models

import "time"

// CourseType classifies delivery mode. It is derived, never stored: a course
// with scheduled live sessions is Live, everything else is Self-Paced. An
// explicit Type value on the course wins over the derived check.
type CourseType string

const (
	CourseTypeLive      CourseType = "Live"
	CourseTypeSelfPaced CourseType = "Self-Paced"
)

// CourseStatus marks publication state.
type CourseStatus string

const (
	CourseStatusPublished CourseStatus = "published"
	CourseStatusDraft     CourseStatus = "draft"
)

// Course is the catalog entry managed by the admin console.
type Course struct {
	ID          string       `db:"id" json:"id"`
	Title       string       `db:"title" json:"title"`
	Slug        string       `db:"slug" json:"slug"`
	Summary     string       `db:"summary" json:"summary"`
	Description string       `db:"description" json:"description"`
	Categories  []string     `db:"-" json:"categories"`
	Duration    string       `db:"duration" json:"duration"`
	Level       string       `db:"level" json:"level"`
	Lessons     int          `db:"lessons" json:"lessons"`
	Price       float64      `db:"price" json:"price"`
	Status      CourseStatus `db:"status" json:"status"`
	Type        CourseType   `db:"-" json:"type,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

// LiveSession is static reference data; many sessions may belong to a course.
type LiveSession struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	CourseID  string    `db:"course_id" json:"course_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
}

// CourseFilter scopes catalog listings.
type CourseFilter struct {
	Status   CourseStatus
	Category string
	Page     int
	PageSize int
}
