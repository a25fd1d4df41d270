package models

import "time"

// Course represents a catalog entry keyed by its caller-supplied CRN.
type Course struct {
	CRN          int       `db:"crn" json:"crn"`
	Title        string    `db:"title" json:"title"`
	Department   string    `db:"department" json:"department"`
	TimeSlot     string    `db:"time_slot" json:"time_slot"`
	Days         string    `db:"days" json:"days"`
	Semester     string    `db:"semester" json:"semester"`
	Year         int       `db:"year" json:"year"`
	Credits      int       `db:"credits" json:"credits"`
	InstructorID *string   `db:"instructor_id" json:"instructor_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CourseFilter narrows the catalog listing to rows whose field contains the
// value, case-insensitively. An empty field means no filtering.
type CourseFilter struct {
	Field string
	Value string
}
