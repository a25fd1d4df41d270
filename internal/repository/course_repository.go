package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/leopardweb/registrar-api/internal/models"
)

// filterColumns maps caller-facing filter field names onto real course
// columns. Anything outside this map never reaches a query string.
var filterColumns = map[string]string{
	"crn":        "crn",
	"title":      "title",
	"department": "department",
	"time":       "time_slot",
	"days":       "days",
	"semester":   "semester",
	"year":       "year",
	"credits":    "credits",
}

// FilterColumn resolves a filter field name to its column, reporting whether
// the field is allowed.
func FilterColumn(field string) (string, bool) {
	column, ok := filterColumns[field]
	return column, ok
}

// CourseRepository handles persistence of catalog courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByCRN returns a course by its CRN.
func (r *CourseRepository) FindByCRN(ctx context.Context, crn int) (*models.Course, error) {
	const query = `SELECT crn, title, department, time_slot, days, semester, year, credits, instructor_id, created_at FROM courses WHERE crn = $1 LIMIT 1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, crn); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course by crn: %w", err)
	}
	return &course, nil
}

// List returns catalog courses ordered by CRN, optionally filtered by a single
// field/value contains match. The field must resolve through FilterColumn.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	query := `SELECT crn, title, department, time_slot, days, semester, year, credits, instructor_id, created_at FROM courses`
	var args []interface{}

	if filter.Field != "" {
		column, ok := FilterColumn(filter.Field)
		if !ok {
			return nil, fmt.Errorf("unknown filter field %q", filter.Field)
		}
		query += fmt.Sprintf(" WHERE CAST(%s AS TEXT) ILIKE $1", column)
		args = append(args, "%"+filter.Value+"%")
	}
	query += ` ORDER BY crn`

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListByInstructor returns the courses taught by an instructor account.
func (r *CourseRepository) ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	const query = `SELECT crn, title, department, time_slot, days, semester, year, credits, instructor_id, created_at FROM courses WHERE instructor_id = $1 ORDER BY crn`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, instructorID); err != nil {
		return nil, fmt.Errorf("list instructor courses: %w", err)
	}
	return courses, nil
}

// Create inserts a new course row. A duplicate CRN surfaces the underlying
// unique-constraint violation to the caller.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO courses (crn, title, department, time_slot, days, semester, year, credits, instructor_id, created_at)
        VALUES (:crn, :title, :department, :time_slot, :days, :semester, :year, :credits, :instructor_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Delete removes a course and every registration referencing it in one
// transaction. A missing CRN is a no-op.
func (r *CourseRepository) Delete(ctx context.Context, crn int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete course: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE crn = $1`, crn); err != nil {
		return fmt.Errorf("delete course registrations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE crn = $1`, crn); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete course: %w", err)
	}
	return nil
}
