package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/leopardweb/registrar-api/internal/models"
)

// RegistrationRepository handles persistence of enrollment facts.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs the repository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Register enrolls a student in a course. The course existence check and the
// insert run in one transaction so no half-registered state is ever visible.
// A missing course returns sql.ErrNoRows; a duplicate pair surfaces the
// unique-constraint violation.
func (r *RegistrationRepository) Register(ctx context.Context, studentID string, crn int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin register: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	if err := tx.GetContext(ctx, &exists, `SELECT 1 FROM courses WHERE crn = $1 LIMIT 1`, crn); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("check course exists: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO registrations (student_id, crn, registered_at) VALUES ($1, $2, $3)`, studentID, crn, time.Now().UTC()); err != nil {
		return fmt.Errorf("create registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit register: %w", err)
	}
	return nil
}

// Drop removes the registration for (student, crn) if present; absence is a
// no-op.
func (r *RegistrationRepository) Drop(ctx context.Context, studentID string, crn int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE student_id = $1 AND crn = $2`, studentID, crn); err != nil {
		return fmt.Errorf("drop registration: %w", err)
	}
	return nil
}

// Schedule returns the student's enrolled courses with instructor context,
// ordered by CRN for determinism.
func (r *RegistrationRepository) Schedule(ctx context.Context, studentID string) ([]models.ScheduleEntry, error) {
	const query = `SELECT c.crn, c.title, COALESCE(i.name || ' ' || i.surname, '') AS instructor_name, c.time_slot
        FROM registrations r
        JOIN courses c ON c.crn = r.crn
        LEFT JOIN instructor_profiles i ON i.account_id = c.instructor_id
        WHERE r.student_id = $1
        ORDER BY c.crn`
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, studentID); err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	return entries, nil
}

// Roster returns the students registered for a course, ordered by surname.
func (r *RegistrationRepository) Roster(ctx context.Context, crn int) ([]models.RosterEntry, error) {
	const query = `SELECT s.name, s.surname
        FROM student_profiles s
        JOIN registrations r ON r.student_id = s.account_id
        WHERE r.crn = $1
        ORDER BY s.surname, s.name`
	var entries []models.RosterEntry
	if err := r.db.SelectContext(ctx, &entries, query, crn); err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return entries, nil
}
