package models

import "time"

// Registration is the enrollment fact linking one student account to one
// course. Existence is enrollment; there is no status field.
type Registration struct {
	StudentID    string    `db:"student_id" json:"student_id"`
	CRN          int       `db:"crn" json:"crn"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}

// ScheduleEntry is one row of a student's schedule.
type ScheduleEntry struct {
	CRN            int    `db:"crn" json:"crn"`
	Title          string `db:"title" json:"title"`
	InstructorName string `db:"instructor_name" json:"instructor_name"`
	TimeSlot       string `db:"time_slot" json:"time_slot"`
}

// RosterEntry is one student row of a course roster.
type RosterEntry struct {
	Name    string `db:"name" json:"name"`
	Surname string `db:"surname" json:"surname"`
}
