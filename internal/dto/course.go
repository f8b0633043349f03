package dto

// CreateCourseRequest carries the admin console course form.
type CreateCourseRequest struct {
	Title       string   `json:"title" validate:"required"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Duration    string   `json:"duration"`
	Level       string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Lessons     int      `json:"lessons" validate:"gte=0"`
	Price       float64  `json:"price" validate:"gte=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=published draft"`
}

// UpdateCourseRequest mirrors the create payload; zero values leave the
// corresponding field untouched except Title, which is required.
type UpdateCourseRequest struct {
	Title       string   `json:"title" validate:"required"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Duration    string   `json:"duration"`
	Level       string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Lessons     int      `json:"lessons" validate:"gte=0"`
	Price       float64  `json:"price" validate:"gte=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=published draft"`
}
